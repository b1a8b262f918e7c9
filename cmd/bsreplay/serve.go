package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bs-replay/internal/platform/tui"
	"github.com/vovakirdan/bs-replay/internal/registry"
	"github.com/vovakirdan/bs-replay/internal/replay"
	"github.com/vovakirdan/bs-replay/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Start an SSH server streaming a replay",
	Long: `Start an SSH server that plays the given replay to everyone who connects.

Each SSH connection gets its own playback with its own pause, speed and
restart controls. Every session is recorded in the history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bsreplay/host_key

Examples:
  bsreplay serve game.jsonl                   # Listen on :23234
  bsreplay serve game.jsonl --ssh :2222       # Listen on port 2222
  bsreplay serve game.jsonl --host-key ./key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.ExactArgs(1),
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) {
	path := args[0]

	replayCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !registry.Exists(replayCfg.Playback.View) {
		fmt.Fprintf(os.Stderr, "Error: unknown view %q\n", replayCfg.Playback.View)
		os.Exit(1)
	}

	logger, _, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.SetPrefix("bsreplay-ssh")

	game, err := replay.LoadFile(path)
	if err != nil {
		logger.Error("cannot load replay", "path", path, "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage
		store = nil
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, game, path, replayCfg, store, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serving %s over SSH on %s\n", path, cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := server.ListenAndServe(ctx)
	if store != nil {
		store.Close()
	}
	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
