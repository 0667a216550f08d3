// pulserun is a lane-based endless runner for the terminal.
//
// Usage:
//
//	pulserun list                    - List game modes
//	pulserun play [mode]             - Play a mode (default: runner)
//	pulserun menu                    - Start the title menu
//	pulserun replays                 - Browse recorded runs
//	pulserun replay <id> [--summary] - Watch or re-simulate a recorded run
//	pulserun serve                   - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set replay database path (default: ~/.pulserun/replays.db)
//	--config <path>     - Use a custom runner config YAML
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/runner"
	"github.com/vovakirdan/pulse-runner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pulserun",
	Short: "Pulse Runner - a lane runner for your terminal",
	Long: `Pulse Runner is an endless runner played in the terminal. Switch
between three lanes to dodge enemies and hazards, and fire the pulse while
it is charged to clear enemies from your lane.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive title menu
  replays  - Browse recorded runs
  replay   - Watch or re-simulate one recorded run
  serve    - Start SSH server for remote play

Examples:
  pulserun play
  pulserun play runner_contact --seed 42
  pulserun menu
  pulserun replay 3f2a9c1e --summary
  pulserun serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		runner.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the first run (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pulserun/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// checkConfig reports a --config file that cannot be used. Games fall back
// to the defaults on their own, so commands check before starting.
func checkConfig(path string) error {
	if path == "" {
		return nil
	}
	_, err := config.LoadRunner(path)
	return err
}

// newLogger builds the process logger. Interactive commands pass a nil
// fallback so nothing is written over the alternate screen unless
// --log-file is set. The returned closer releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pulserun",
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig builds the runtime config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the replay database. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return nil
	}
	return store
}

// currentUser names the local player in recorded runs.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
