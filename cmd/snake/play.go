package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal. Without a game id a board picker
is shown first.

Controls:
  Arrows/WASD  - Steer
  P/Space      - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot to ~/.snake/screenshots
  Esc/Q        - Quit

Examples:
  snake play
  snake play snake_large
  snake play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := terminalSize()
	rc := runtimeConfig(cfg, width, height)

	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
	} else {
		gameID, err = tui.RunPicker(rc)
		if err != nil {
			return err
		}
		// User quit the picker
		if gameID == "" {
			return nil
		}
	}

	game, err := createSnake(gameID)
	if err != nil {
		return err
	}

	opts := tui.Options{Logger: logger}
	store := openStore(logger)
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	return tui.Run(game, rc, opts)
}
