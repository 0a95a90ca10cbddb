// Package config provides YAML-based configuration loading for the snake
// game: board presets, timing, food placement and the window palette.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownBoard is returned when a board preset name is not configured.
var ErrUnknownBoard = errors.New("config: unknown board")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Boards  map[string]BoardConfig `yaml:"boards"`
	Timing  TimingConfig           `yaml:"timing"`
	Food    FoodConfig             `yaml:"food"`
	Palette PaletteConfig          `yaml:"palette"`
}

// BoardConfig defines a play area in pixels. Tile must divide both sides.
type BoardConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Tile   int    `yaml:"tile"`
}

// TimingConfig defines the frame rate and the snake's move cadence.
type TimingConfig struct {
	TickRate       int `yaml:"tick_rate"`        // Frames per second
	MoveIntervalMS int `yaml:"move_interval_ms"` // Milliseconds between snake moves
}

// FoodConfig defines food placement parameters.
type FoodConfig struct {
	MaxRetries int `yaml:"max_retries"` // Rejection-sampling draws before falling back to the free-tile list
}

// PaletteConfig defines window colors as hex strings ("#rrggbb").
type PaletteConfig struct {
	Background string `yaml:"background"`
	Snake      string `yaml:"snake"`
	Head       string `yaml:"head"`
	Food       string `yaml:"food"`
	Text       string `yaml:"text"`
}

// Validate checks the invariants the game relies on for exact grid arithmetic.
func (c SnakeConfig) Validate() error {
	if len(c.Boards) == 0 {
		return errors.New("config: no boards defined")
	}
	for _, name := range c.BoardNames() {
		if err := c.Boards[name].Validate(); err != nil {
			return fmt.Errorf("config: board %q: %w", name, err)
		}
	}
	if c.Timing.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Timing.TickRate)
	}
	if c.Timing.MoveIntervalMS <= 0 {
		return fmt.Errorf("config: move_interval_ms must be positive, got %d", c.Timing.MoveIntervalMS)
	}
	if c.Food.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries must not be negative, got %d", c.Food.MaxRetries)
	}
	if _, err := c.Palette.Colors(); err != nil {
		return err
	}
	return nil
}

// Validate checks that the board is non-empty and tile-aligned.
func (b BoardConfig) Validate() error {
	if b.Width <= 0 || b.Height <= 0 || b.Tile <= 0 {
		return fmt.Errorf("dimensions must be positive (width=%d height=%d tile=%d)", b.Width, b.Height, b.Tile)
	}
	if b.Width%b.Tile != 0 || b.Height%b.Tile != 0 {
		return fmt.Errorf("tile %d must divide %dx%d evenly", b.Tile, b.Width, b.Height)
	}
	return nil
}

// Board returns the named board preset.
func (c SnakeConfig) Board(name string) (BoardConfig, error) {
	b, ok := c.Boards[name]
	if !ok {
		return BoardConfig{}, fmt.Errorf("%w %q", ErrUnknownBoard, name)
	}
	return b, nil
}

// BoardNames returns the configured preset names, sorted.
func (c SnakeConfig) BoardNames() []string {
	names := make([]string, 0, len(c.Boards))
	for name := range c.Boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MoveInterval returns the time between snake moves.
func (c SnakeConfig) MoveInterval() time.Duration {
	return time.Duration(c.Timing.MoveIntervalMS) * time.Millisecond
}

// MoveEveryTicks converts the move interval into whole frames at the given
// tick rate, never less than one.
func (c SnakeConfig) MoveEveryTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = c.Timing.TickRate
	}
	frames := int((c.MoveInterval()*time.Duration(tickRate) + time.Second/2) / time.Second)
	return max(1, frames)
}
