package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tropigo/beachbites/internal/config"
	"github.com/tropigo/beachbites/internal/core"
	"github.com/tropigo/beachbites/internal/dal"
	"github.com/tropigo/beachbites/internal/platform/tui"
	"github.com/tropigo/beachbites/internal/storage"
)

var flagDiag bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start a Beach Bites session in the current terminal.

Migrations are applied before the title screen. If the profile database
cannot be opened the game still runs in memory, but progress will not
survive a restart (a notice is shown in-game).

Controls:
  WASD/Arrows - Move
  Space/Enter - Serve the selected food
  1-4         - Select food
  O           - Shop
  P           - Pause
  Esc         - Quit to title
  Q/Ctrl+C    - Quit

Examples:
  beachbites play
  beachbites play --diag
  beachbites play --seed 42 --config ./beach.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDiag, "diag", false, "Print persistence status and enable the in-game diagnostic overlay")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(io.Discard)
	if flagDiag {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "beachbites"})
	}

	// Open applies pending migrations; the only fatal outcome is a failed
	// migration. A missing or unwritable file degrades to memory instead.
	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing profile database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	d := dal.New(store, logger)

	if flagDiag {
		status := "live"
		if !store.Live() {
			status = "degraded (in-memory)"
		}
		version, _ := store.SchemaVersion()
		fmt.Printf("persistence: %s\nschema version: %d\n", status, version)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	runErr := tui.Run(tui.Deps{
		DAL:       d,
		Cfg:       gameCfg,
		Logger:    logger,
		AudioSink: os.Stdout,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
			DBPath:   flagDBPath,
			Diag:     flagDiag,
		},
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
