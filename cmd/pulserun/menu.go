package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/platform/tui"
	"github.com/vovakirdan/pulse-runner/internal/registry"
	"github.com/vovakirdan/pulse-runner/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Pulse Runner with the title menu",
	Long: `Start Pulse Runner in interactive menu mode.

Pick a mode with the arrow keys or j/k and Enter. Tab opens the replay
browser. Leaving a run returns to the menu.

Examples:
  pulserun menu
  pulserun menu --fps 30
  pulserun menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Fail before entering the alternate screen on a broken config file.
	if err := checkConfig(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{Store: store, Logger: logger, User: currentUser()}
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsReplays {
			if !browseReplays(store, logger, cfg) {
				return
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		back, err := tui.RunGame(game, opts, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !back {
			return
		}

		// --seed only applies to the first run.
		cfg.Seed = 0
	}
}

// browseReplays runs the browser and any replays picked from it. It
// reports false when the user quit instead of going back.
func browseReplays(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) bool {
	for {
		res, err := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		switch {
		case res.Quit:
			return false
		case res.ReplayID == "":
			return true
		}

		r, err := store.LoadReplay(res.ReplayID)
		if err != nil {
			logger.Error("cannot load replay", "id", res.ReplayID, "error", err)
			continue
		}
		back, err := tui.RunReplay(r, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		if !back {
			return false
		}
	}
}
