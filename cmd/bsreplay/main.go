// bsreplay replays recorded multi-snake games as terminal animations.
//
// Usage:
//
//	bsreplay play <file>     - Watch a replay
//	bsreplay check <file>    - Run a replay headless and print statistics
//	bsreplay history         - Browse previously played replays
//	bsreplay views           - List available views
//	bsreplay serve <file>    - Start SSH server streaming a replay
//
// Global flags:
//
//	--config <path>     - Replay config YAML (default: search order)
//	--db <path>         - Set database path (default: ~/.bsreplay/history.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination while the TUI owns the terminal
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bs-replay/internal/config"

	// Import views to register them
	_ "github.com/vovakirdan/bs-replay/internal/views"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagFPS      int
	flagSpeed    float64
	flagView     string
	flagMode     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bsreplay",
	Short: "Replay recorded snake battles in your terminal",
	Long: `bsreplay animates recorded multi-snake games: the board rises tile by
tile, the snakes drop in, and every recorded turn plays back as a smooth move.

Replay files are line-delimited JSON: a header line with the board size and
snake colors, followed by one line per turn.

Available commands:
  play     - Watch a replay
  check    - Run a replay headless and print statistics
  history  - Browse previously played replays
  views    - List available views
  serve    - Start SSH server streaming a replay

Examples:
  bsreplay play game.jsonl
  bsreplay play game.jsonl --speed 2 --view tilt
  bsreplay check game.jsonl
  bsreplay serve game.jsonl --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to replay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bsreplay/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.bsreplay/bsreplay.log", "Log file used while the viewer is on screen")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = config)")
	rootCmd.PersistentFlags().Float64Var(&flagSpeed, "speed", 0, "Playback speed multiplier (0 = config)")
	rootCmd.PersistentFlags().StringVar(&flagView, "view", "", "View: top or tilt (empty = config)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "Playback mode: paced or burst (empty = config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the replay config and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if flagFPS > 0 {
		cfg.Playback.TickRate = flagFPS
	}
	if flagSpeed > 0 {
		cfg.Playback.Speed = flagSpeed
	}
	if flagView != "" {
		cfg.Playback.View = flagView
	}
	if flagMode != "" {
		cfg.Playback.Mode = config.PlaybackMode(flagMode)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger. When toFile is set the logger writes
// to --log-file so it does not tear the alternate screen.
func newLogger(toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if toFile {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bsreplay",
		Level:           level,
	})
	return logger, closer, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
