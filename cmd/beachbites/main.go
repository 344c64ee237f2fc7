// beachbites is a terminal top-down food-delivery arcade game.
//
// Usage:
//
//	beachbites play            - Start the game (tutorial first on a fresh profile)
//	beachbites scores          - Browse the run leaderboard and history
//	beachbites serve           - Serve the game over SSH
//	beachbites migrate         - Apply (or revert) schema migrations
//	beachbites reset           - Reset run-scoped progress for a new game
//
// Global flags:
//
//	--fps <rate>     - Tick rate (default: 30)
//	--seed <value>   - RNG seed for reproducible sessions
//	--db <path>      - Profile database path (default: ~/.beachbites/profile.db)
//	--config <path>  - Custom game config YAML
//
// Environment (loaded from .env when present):
//
//	BEACHBITES_DB        - overrides the database path
//	BEACHBITES_CONFIG    - overrides the config path
//	BEACHBITES_SSH_ADDR  - overrides the serve listen address
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("BEACHBITES_DB"); v != "" {
		flagDBPath = v
	}
	if v := os.Getenv("BEACHBITES_CONFIG"); v != "" {
		flagConfig = v
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beachbites",
	Short: "Beach Bites - deliver island food before the customers bail",
	Long: `Beach Bites is a terminal arcade game: skate the beach, serve the
right food to impatient customers, and climb the run leaderboard.

First launch drops you into the tutorial; graduate once and the title
screen takes you straight to the real thing, forever.

Examples:
  beachbites play
  beachbites play --diag
  beachbites scores
  beachbites serve --ssh :2222
  beachbites reset --yes`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beachbites/profile.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(resetCmd)
}
