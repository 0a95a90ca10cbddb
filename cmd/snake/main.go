// snake is a classic snake game for the desktop and the terminal.
//
// Usage:
//
//	snake                    - Play in a window (default board)
//	snake play [game]        - Play in the terminal
//	snake list               - List available boards
//	snake runs               - Browse recorded runs
//	snake replay <id>        - Replay a recorded run
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config, 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set run journal path (default: ~/.snake/runs.db)
//	--config <path>      - Use a custom snake.yaml
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake/internal/games/snake"
	"github.com/vovakirdan/snake/internal/platform/window"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// Root flags
	flagGame  string
	flagScale int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - eat, grow, don't bite yourself",
	Long: `Snake opens a window with the classic game: steer the snake to the
food, grow one segment per bite, and avoid the walls and your own tail.

Controls:
  Arrows/WASD  - Steer
  P            - Pause
  R            - Restart (after game over)
  Esc/Q        - Quit

Examples:
  snake
  snake --game snake_large --scale 2
  snake play
  snake runs
  snake replay 1a2b3c4d`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWindow,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to the run journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().IntVar(&flagScale, "scale", 1, "Window scale factor")

	rootCmd.Flags().StringVar(&flagGame, "game", snake.IDClassic, "Board to play (see 'snake list')")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := createSnake(flagGame)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := window.Options{
		Scale:   flagScale,
		Palette: cfg.Palette,
		Logger:  logger,
	}
	if store != nil {
		opts.Store = store
	}

	logger.Debug("opening window", "game", game.ID(), "board", fmt.Sprintf("%dx%d", game.Board().Width, game.Board().Height))
	return window.Run(game, runtimeConfig(cfg, 0, 0), opts)
}
