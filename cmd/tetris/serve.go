package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-tetris/internal/config"
	"github.com/vovakirdan/retro-tetris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHDBPath   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the menu and scoreboard.
Scores are stored per-server (all users share the same leaderboard).

Settings are read from the environment and overridden by flags:
  ARCADE_SSH_ADDR       - listen address
  ARCADE_HOST_KEY       - host key path
  ARCADE_DB             - scores database path
  ARCADE_IDLE_TIMEOUT   - idle timeout (Go duration, e.g. 15m)

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  tetris serve                           # Listen on :23234 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --host-key ./my_host_key  # Use specific host key
  tetris serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()

	env, err := config.LoadServerEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(env)

	// Explicit flags win over the environment
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("db") {
		cfg.DBPath = flagSSHDBPath
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tetris SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
