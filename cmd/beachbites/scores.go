package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/platform/tui"
	"github.com/tropigo/beachbites/internal/storage"
)

var flagPlainScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse the run leaderboard",
	Long: `Browse best and recent runs.

By default an interactive table opens; --plain prints the top ten runs to
the console and exits.

Examples:
  beachbites scores
  beachbites scores --plain`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlainScores, "plain", false, "Print to the console instead of opening the interactive view")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := log.New(io.Discard)
	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	d := dal.New(store, logger)

	if flagPlainScores {
		printScores(d)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	if err := tui.RunScoreboard(d, dal.DefaultPlayerID, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(d *dal.DAL) {
	entries, err := d.Leaderboard(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs - Beach Bites")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'beachbites play' to put the first run on the board!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-8s  %s\n", "Rank", "Score", "Earned", "Missed", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-8s  %s\n", "----", "-----", "------", "------", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-10d  $%-7d  %-8d  %s\n",
			i+1, e.Score, e.MoneyEarned, e.Missed, e.Date().Format("2006-01-02 15:04"))
	}

	if profile, err := d.GetProfile(dal.DefaultPlayerID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d (%s)\n", profile.HighScore, profile.DisplayName)
	}
}
