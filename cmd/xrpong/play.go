package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/xr-pong/internal/anchor"
	"github.com/vovakirdan/xr-pong/internal/config"
	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/platform/tui"
	"github.com/vovakirdan/xr-pong/internal/storage"
)

var (
	flagVariant    string
	flagDifficulty string
	flagTwoPlayer  bool
	flagNoAudio    bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start an emulated XR session in this terminal.

Press e to enter the session. In the anchor variant, move your gaze
over the table with h/j/k/l and press space to place the board.

Controls:
  W/S        - Left paddle (right controller stick)
  Up/Down    - Right paddle (left controller stick)
  A          - Toggle one/two player
  B          - Restart after game over
  X          - Reset placement
  Q/Ctrl+C   - Quit

Difficulty options:
  easy, normal, hard - AI paddle speed in one player mode

Examples:
  xrpong play
  xrpong play --variant anchor
  xrpong play --difficulty hard
  xrpong play --two-player --no-audio`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Placement variant: fixed or anchor (overrides config)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagTwoPlayer, "two-player", false, "Start with both paddles under player control")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable feedback tones")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write session logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fatalf("%v", err)
	}
}

// play runs one local session. Everything it opens is closed before it
// returns, so callers may exit on the returned error.
func play() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagVariant != "" {
		cfg.Placement.Variant = flagVariant
	}
	if flagTwoPlayer {
		cfg.Gameplay.OnePlayer = false
	}
	cfg.Physics.AISpeed = config.AISpeedForPreset(config.DifficultyPreset(flagDifficulty), cfg.Physics.AISpeed)
	if err := cfg.Validate(); err != nil {
		return err
	}

	stderrLog, err := newLogger(os.Stderr, "xrpong")
	if err != nil {
		return err
	}

	// The terminal belongs to the game while it runs.
	logOut, closeLog, err := openLogOutput(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, _ := newLogger(logOut, "xrpong")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sc := tui.SessionConfig{
		Config:  cfg,
		Runtime: core.RuntimeConfig{TickRate: flagFPS, Seed: seed},
		Audio:   !flagNoAudio,
		Logger:  logger,
	}

	// Open storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		stderrLog.Warn("could not open database, placement and history will not persist", "error", err)
		sc.Store = anchor.NewMemoryStore()
	} else {
		defer store.Close()
		sc.Store = store
		sc.Matches = store
	}

	session := tui.NewSession(sc)
	defer session.Close()

	if err := tui.Run(session, flagFPS, width, height, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openLogOutput opens the session log. An empty path discards logs.
func openLogOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, f.Close, nil
}
