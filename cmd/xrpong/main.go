// xrpong is a mixed-reality table tennis game played in an emulated XR
// session, either locally in the terminal or over SSH.
//
// Usage:
//
//	xrpong play                 - Play a match
//	xrpong serve                - Start SSH server for remote play
//	xrpong history              - Show recorded matches
//	xrpong reset-anchor         - Forget the persisted board placement
//	xrpong config               - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Configuration file (default: ~/.xrpong/config.yaml)
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible serves
//	--db <path>        - Set database path (default: ~/.xrpong/xrpong.db)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/xr-pong/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xrpong",
	Short: "XR Pong - table tennis on a virtual board in your room",
	Long: `XR Pong places a pong board in an emulated mixed-reality session.
The board either floats at a fixed spot in front of you or is anchored
to a surface you pick, and the anchor is remembered between sessions.

Available commands:
  play          - Start a session in this terminal
  serve         - Start SSH server for remote play
  history       - View recorded matches
  reset-anchor  - Forget the persisted board placement
  config        - Print the effective configuration

Examples:
  xrpong play
  xrpong play --variant anchor
  xrpong serve --ssh :2222
  xrpong history --limit 50`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetAnchorCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg, nil
}

// newLogger creates a logger at the configured level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
