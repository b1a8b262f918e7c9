package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/replay"
	"github.com/vovakirdan/bs-replay/internal/scene"
	"github.com/vovakirdan/bs-replay/internal/storage"
)

var (
	flagCheckStep  time.Duration
	flagCheckLimit time.Duration
	flagNoRecord   bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run a replay headless and print statistics",
	Long: `Load a replay and animate it to completion on a synthetic clock, without
drawing anything. Useful to validate replay files and timing settings.

Exits non-zero when the file cannot be loaded or playback does not finish
within --limit of replay time.

Examples:
  bsreplay check game.jsonl
  bsreplay check game.jsonl --mode burst
  bsreplay check game.jsonl --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().DurationVar(&flagCheckStep, "step", 16*time.Millisecond, "Synthetic tick length")
	checkCmd.Flags().DurationVar(&flagCheckLimit, "limit", time.Hour, "Give up after this much replay time")
	checkCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run in history")
}

// checkResult summarises a headless run.
type checkResult struct {
	Finished bool
	Elapsed  time.Duration
	Ticks    int
	Steps    []int
	Stats    string
}

// simulate animates game to completion or until limit replay time has passed.
func simulate(game *replay.Game, cfg config.Config, logger *log.Logger, step, limit time.Duration) checkResult {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := scene.NewEngine(game, cfg, logger)
	done := e.Start()

	for !done.Done() && e.Elapsed() < limit {
		e.Step(step)
	}

	res := checkResult{
		Finished: e.Finished(),
		Elapsed:  e.Elapsed(),
		Ticks:    e.Ticks(),
	}
	if !res.Finished {
		logger.Warn("giving up on playback", "elapsed", e.Elapsed(), "frames", e.Player().Issued(), "tweens", e.LiveTweens())
		e.Stop()
	}
	for _, s := range e.World().Snakes() {
		res.Steps = append(res.Steps, s.Steps())
	}
	st := e.Graph().Stats()
	res.Stats = fmt.Sprintf("created %d, moved %d, faded %d, removed %d, cleared %d",
		st.Created, st.Moved, st.Faded, st.Removed, st.Cleared)
	return res
}

func runCheck(cmd *cobra.Command, args []string) {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagCheckStep <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --step must be positive")
		os.Exit(1)
	}

	logger, _, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := replay.LoadFile(path)
	if err != nil {
		logger.Error("cannot load replay", "path", path, "error", err)
		os.Exit(1)
	}

	res := simulate(game, cfg, logger, flagCheckStep, flagCheckLimit)

	fmt.Printf("Replay   %s\n", path)
	fmt.Printf("Board    %dx%d\n", game.Board.Width, game.Board.Height)
	fmt.Printf("Snakes   %d\n", len(game.Snakes))
	fmt.Printf("Frames   %d (%d malformed lines skipped)\n", len(game.Frames), game.Dropped)
	fmt.Printf("Mode     %s at %gx\n", cfg.Playback.Mode, cfg.Playback.Speed)
	fmt.Printf("Duration %v over %d ticks\n", res.Elapsed, res.Ticks)
	fmt.Printf("Moves    %v\n", res.Steps)
	fmt.Printf("Scene    %s\n", res.Stats)

	if !flagNoRecord {
		recordCheck(logger, path, game, cfg, res.Finished)
	}

	if !res.Finished {
		logger.Error("playback did not finish", "limit", flagCheckLimit)
		os.Exit(1)
	}
}

// recordCheck stores the run in history. Failures are logged, never fatal.
func recordCheck(logger *log.Logger, path string, game *replay.Game, cfg config.Config, finished bool) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return
	}
	defer store.Close()

	_, err = store.SavePlay(storage.PlayRecord{
		Path:      path,
		Width:     game.Board.Width,
		Height:    game.Board.Height,
		Snakes:    len(game.Snakes),
		Frames:    len(game.Frames),
		Dropped:   game.Dropped,
		Mode:      string(cfg.Playback.Mode),
		Source:    "check",
		Completed: finished,
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
	}
}
