package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pulse-runner/internal/platform/tui"
	"github.com/vovakirdan/pulse-runner/internal/replay"
	"github.com/vovakirdan/pulse-runner/internal/runner"
	"github.com/vovakirdan/pulse-runner/internal/storage"
)

var (
	flagPlain   bool
	flagLimit   int
	flagSummary bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays [mode]",
	Short: "Browse recorded runs",
	Long: `Open the replay browser. With --plain the newest runs are printed
instead, optionally filtered by mode.

Examples:
  pulserun replays
  pulserun replays --plain
  pulserun replays runner_contact --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or re-simulate a recorded run",
	Long: `Play back a recorded run. The id may be any unique prefix of the
replay id shown by 'pulserun replays'.

With --summary the run is re-simulated without a terminal UI and its
final score, distance and tick count are printed.

Playback controls:
  Space/P     - Pause
  Right/+     - Faster
  Left/-      - Slower
  Esc/Q       - Leave

Examples:
  pulserun replay 3f2a9c1e
  pulserun replay 3f2a --summary`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the list instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to print with --plain")
	replayCmd.Flags().BoolVar(&flagSummary, "summary", false, "Re-simulate and print the result")
}

func runReplays(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		logger, closeLog, err := newLogger(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()
		browseReplays(store, logger, runtimeConfig())
		return
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}
	infos, err := store.ListReplays(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing replays: %v\n", err)
		os.Exit(1)
	}

	if len(infos) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pulserun play' to record your first run!")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tPLAYER\tSEED\tTIME\tWHEN")
	for _, r := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fs\t%s\n",
			r.ID.String()[:8], r.GameID, r.User, r.Seed, r.Duration.Seconds(), humanize.Time(r.CreatedAt))
	}
	w.Flush()
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	r, err := store.LoadReplay(args[0])
	store.Close()
	if err != nil {
		if errors.Is(err, storage.ErrReplayNotFound) {
			fmt.Fprintf(os.Stderr, "No replay matches %q. Run 'pulserun replays --plain' to list them.\n", args[0])
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if flagSummary {
		printSummary(r)
		return
	}

	if _, err := tui.RunReplay(r, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(r *replay.Replay) {
	sum, err := replay.Summarize(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay %s\n\n", r.ID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Mode\t%s\n", r.GameID)
	fmt.Fprintf(w, "  Player\t%s\n", r.User)
	fmt.Fprintf(w, "  Seed\t%d\n", r.Seed)
	fmt.Fprintf(w, "  Recorded\t%s (%s)\n", r.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(r.CreatedAt))
	fmt.Fprintf(w, "  Frames\t%s\n", humanize.Comma(int64(sum.Frames)))
	fmt.Fprintf(w, "  Ticks\t%s\n", humanize.Comma(int64(sum.Ticks)))
	fmt.Fprintf(w, "  Duration\t%.1fs\n", sum.Duration.Seconds())
	fmt.Fprintf(w, "  Score\t%s\n", runner.FormatScore(sum.Score))
	fmt.Fprintf(w, "  Distance\t%s\n", runner.FormatDistance(sum.Distance))
	fmt.Fprintf(w, "  Final combo\t%s\n", runner.FormatCombo(sum.Combo))
	if sum.Over {
		fmt.Fprintf(w, "  Ended by\thazard\n")
	}
	w.Flush()
}
