package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/snake/internal/config"
	"github.com/vovakirdan/snake/internal/core"
	"github.com/vovakirdan/snake/internal/games/snake"
	"github.com/vovakirdan/snake/internal/registry"
	"github.com/vovakirdan/snake/internal/storage"
)

// loadConfig loads snake.yaml and hands it to the registered game factories.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	snake.SetConfig(cfg)
	return cfg, nil
}

// newLogger builds the command logger. Terminal frontends own the screen,
// so they log nowhere unless --log-file is given.
func newLogger(terminalUI bool) (*log.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if terminalUI {
		w = io.Discard
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the run journal. Games still play without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// createSnake creates a registered game and checks it is a snake board.
func createSnake(id string) (*snake.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown game %q (run 'snake list' to see available games)", id)
	}
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	sg, ok := g.(*snake.Game)
	if !ok {
		return nil, fmt.Errorf("game %q is not a snake board", id)
	}
	return sg, nil
}

// runtimeConfig merges flags over the loaded config. A zero seed becomes
// time-based.
func runtimeConfig(cfg config.SnakeConfig, width, height int) core.RuntimeConfig {
	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = cfg.Timing.TickRate
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     seed,
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
