package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/storage"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset run-scoped progress",
	Long: `Clear run history, save slots, owned upgrades, and the economy
counters for a fresh start.

Tutorial graduation and the high score are profile-permanent and are NOT
cleared.

Examples:
  beachbites reset --yes`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Skip the confirmation prompt")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagResetYes {
		fmt.Print("This clears run history, saves, and upgrades. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	logger := log.New(io.Discard)
	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !store.Live() {
		fmt.Fprintln(os.Stderr, "Warning: database unreachable, nothing durable to reset")
	}

	d := dal.New(store, logger)
	if err := d.ResetProgress(dal.DefaultPlayerID); err != nil {
		fmt.Fprintf(os.Stderr, "Reset failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Progress reset. Graduation and high score were kept.")
}
