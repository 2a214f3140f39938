package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/xr-pong/internal/platform/tui"
	"github.com/vovakirdan/xr-pong/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the xrpong SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own emulated XR session. Placements are
remembered per SSH user; match history is shared by the server.
Sessions run without audio.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.xrpong/host_key

Examples:
  xrpong serve                           # Listen on the configured address
  xrpong serve --ssh :2222               # Listen on port 2222
  xrpong serve --host-key ./my_host_key  # Use specific host key
  xrpong serve --db ./xrpong.db          # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	logger, err := newLogger(os.Stderr, "xrpong-ssh")
	if err != nil {
		fatalf("%v", err)
	}

	srvCfg := tui.SSHServerConfigFrom(cfg)
	srvCfg.TickRate = flagFPS
	srvCfg.Seed = flagSeed
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open database, sessions will not persist", "error", err)
		store = nil
	}

	server, err := tui.NewSSHServer(srvCfg, store, logger)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting xrpong SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	if store != nil {
		store.Close()
	}
	if serveErr != nil {
		fatalf("server: %v", serveErr)
	}
}
