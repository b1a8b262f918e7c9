package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/platform/tui"
	"github.com/vovakirdan/bs-replay/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previously played replays",
	Long: `Show recently played replays. In a terminal this opens an interactive
table; when output is piped a plain listing is printed instead.

Examples:
  bsreplay history
  bsreplay history --limit 5 | cat
  bsreplay history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries for plain output")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all history")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		rc := core.DefaultConfig()
		width, height := rc.ScreenW, rc.ScreenH
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	plays, err := store.RecentPlays(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(plays) == 0 {
		fmt.Println("No replays played yet.")
		return
	}

	fmt.Printf("  %-24s  %-7s  %-6s  %-6s  %-6s  %-4s  %s\n", "Replay", "Board", "Snakes", "Frames", "Via", "Done", "Date")
	fmt.Printf("  %-24s  %-7s  %-6s  %-6s  %-6s  %-4s  %s\n", "------", "-----", "------", "------", "---", "----", "----")
	for _, p := range plays {
		done := "-"
		if p.Completed {
			done = "yes"
		}
		fmt.Printf("  %-24s  %-7s  %-6d  %-6d  %-6s  %-4s  %s\n",
			filepath.Base(p.Path),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
			p.Snakes, p.Frames, p.Source, done,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetAllReplayStats()
	if err == nil && len(stats) > 0 {
		fmt.Println()
		fmt.Printf("%d distinct replays in history\n", len(stats))
	}
}
