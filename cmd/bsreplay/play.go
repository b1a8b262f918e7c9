package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/platform/tui"
	"github.com/vovakirdan/bs-replay/internal/registry"
	"github.com/vovakirdan/bs-replay/internal/replay"
	"github.com/vovakirdan/bs-replay/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Watch a replay",
	Long: `Play back a recorded game in the terminal.

Controls:
  Space/P    - Pause
  +/Right    - Faster
  -/Left     - Slower
  R          - Restart from the first turn
  V/Tab      - Switch view
  ?          - More keys
  Q/Ctrl+C   - Quit

Examples:
  bsreplay play game.jsonl
  bsreplay play game.jsonl --view tilt
  bsreplay play game.jsonl --mode burst --speed 4
  bsreplay play game.jsonl --config ./my-replay.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !registry.Exists(cfg.Playback.View) {
		fmt.Fprintf(os.Stderr, "Error: unknown view %q\n", cfg.Playback.View)
		fmt.Fprintln(os.Stderr, "Run 'bsreplay views' to see available views.")
		os.Exit(1)
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	game, err := replay.LoadFile(path)
	if err != nil {
		logger.Error("cannot load replay", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if game.Dropped > 0 {
		logger.Warn("skipped malformed frames", "path", path, "dropped", game.Dropped)
	}

	// Get terminal size
	rc := core.DefaultConfig()
	width, height := rc.ScreenW, rc.ScreenH
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage - playback still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Game:   game,
		Path:   path,
		Source: "play",
		Config: cfg,
		Store:  store,
		Logger: logger,
		Width:  width,
		Height: height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", runErr)
		os.Exit(1)
	}
}
