package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var (
	flagSpeed string
	flagSeed  int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game of snake",
	Long: `Start a game of snake in the terminal.

Press Enter to start. Arrow keys or WASD steer; + and - change speed.
Each crash costs a retry and the round restarts after a short pause.

Examples:
  snake play
  snake play --speed slow
  snake play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset (default from config)")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Random seed for food placement (0 uses config, then time)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(); err != nil {
		fail("%v", err)
	}
}

// play runs one game screen. The session, store and log file are closed
// before it returns.
func play() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	preset := cfg.Speed.Default
	if flagSpeed != "" {
		if preset, err = cfg.ParseSpeed(flagSpeed); err != nil {
			return err
		}
	}
	engineCfg, err := cfg.ToEngine(preset)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game, err := snake.New(engineCfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger, closeLog, err := newFileLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	sess := session.New(game, nil, logger)

	// Scores are optional; play continues without them.
	highScore := 0
	store, storeErr := openStore()
	if storeErr != nil {
		logger.Warn("could not open scores database", "error", storeErr)
	} else {
		defer store.Close()
		sess.SetResultSaver(store)
		if hs, hsErr := store.HighScore(); hsErr == nil {
			highScore = hs
		}
	}

	sub := sess.Subscribe(64)
	defer sub.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		if err := sess.Run(ctx); err != nil {
			logger.Error("session stopped", "error", err)
		}
	}()

	logger.Info("starting game", "speed", preset, "seed", seed, "width", width, "height", height)

	uiErr := tui.Run(sess, sub, tui.Options{
		Config:    cfg,
		Speed:     preset,
		HighScore: highScore,
		Logger:    logger,
		ScreenW:   width,
		ScreenH:   height,
	})

	// Stop the session before the store closes so an unfinished run is saved.
	cancel()
	<-sess.Done()

	if uiErr != nil {
		logger.Error("game screen failed", "error", uiErr)
		return fmt.Errorf("running game: %w", uiErr)
	}
	return nil
}
