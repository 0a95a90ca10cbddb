package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake/internal/config"
	"github.com/vovakirdan/snake/internal/games/snake"
	"github.com/vovakirdan/snake/internal/platform/tui"
	"github.com/vovakirdan/snake/internal/platform/window"
	"github.com/vovakirdan/snake/internal/storage"
)

var flagReplayWindow bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded run",
	Long: `Re-simulate a recorded run from its seed and steering. The id may be
shortened to any unique prefix of at least four characters.

Examples:
  snake replay 1a2b3c4d
  snake replay 1a2b3c4d --window`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		return replayRun(store, cfg, args[0], flagReplayWindow)
	},
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayWindow, "window", false, "Replay in a window instead of the terminal")
}

// replayRun loads a run and plays it back. Directional input is ignored.
// The run's own board and food settings are used when it recorded them.
func replayRun(store *storage.Store, cfg config.SnakeConfig, id string, inWindow bool) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(!inWindow)
	if err != nil {
		return err
	}
	defer closeLog()

	live, err := createSnake(run.GameID)
	if err != nil {
		return err
	}
	rec := run.Recording()
	if !rec.HasBoard() {
		logger.Warn("run has no stored board; replaying with the current config", "id", run.ShortID())
	}
	game, err := snake.NewReplay(live.Options(), rec)
	if err != nil {
		return fmt.Errorf("cannot replay run %s: %w", run.ShortID(), err)
	}

	if inWindow {
		logger.Info("replaying run", "id", run.ShortID(), "length", run.Length, "moves", run.Ticks)
		return window.Run(game, runtimeConfig(cfg, 0, 0), window.Options{
			Scale:   flagScale,
			Palette: cfg.Palette,
			Logger:  logger,
		})
	}

	width, height := terminalSize()
	return tui.Run(game, runtimeConfig(cfg, width, height), tui.Options{Logger: logger})
}
