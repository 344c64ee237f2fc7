package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tropigo/beachbites/internal/storage"
)

var flagMigrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or revert schema migrations",
	Long: `Apply pending schema migrations and print the resulting version.

The game applies migrations on every launch; this command exists for
tooling and recovery. --down reverts the most recent migration using its
rollback script.

Examples:
  beachbites migrate
  beachbites migrate --down`,
	Run: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&flagMigrateDown, "down", false, "Revert the most recent migration")
}

func runMigrate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate"})

	// Open applies anything pending.
	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !store.Live() {
		fmt.Fprintln(os.Stderr, "Warning: database unreachable, changes applied to memory only")
	}

	if flagMigrateDown {
		if err := store.RevertLastMigration(); err != nil {
			fmt.Fprintf(os.Stderr, "Revert failed: %v\n", err)
			os.Exit(1)
		}
	}

	version, err := store.SchemaVersion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading schema version: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("schema version: %d\n", version)
}
