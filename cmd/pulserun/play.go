package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/platform/tui"
	"github.com/vovakirdan/pulse-runner/internal/registry"
	"github.com/vovakirdan/pulse-runner/internal/runner"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start a run in the given mode. Without an argument the mode is taken
from --mode (classic or contact).

Controls:
  Up/W/K       - Move one lane up
  Down/S/J     - Move one lane down
  Space/Click  - Fire the pulse (only while charged)
  P            - Pause
  R            - Restart
  Ctrl+S       - Screenshot
  Esc/B        - Leave
  Q/Ctrl+C     - Quit

Every run is recorded and can be watched later with 'pulserun replays'.

Examples:
  pulserun play
  pulserun play runner_contact
  pulserun play --mode contact --seed 7
  pulserun play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Rule preset when no mode id is given: classic, contact")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := resolveGameID(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pulserun list' to see available modes.")
		os.Exit(1)
	}

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

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	opts := tui.Options{Store: store, Logger: logger, User: currentUser()}

	_, runErr := tui.RunGame(game, opts, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveGameID picks the registry id from the argument or --mode.
func resolveGameID(args []string) (string, error) {
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return "", fmt.Errorf("unknown mode %q", args[0])
		}
		return args[0], nil
	}

	switch config.ParseMode(flagMode) {
	case config.ModeClassic:
		return runner.ClassicID, nil
	case config.ModeContact:
		return runner.ContactID, nil
	}
	return "", fmt.Errorf("unknown --mode %q (want classic or contact)", flagMode)
}
