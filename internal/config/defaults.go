package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Board preset names shipped with the game.
const (
	BoardClassic = "classic"
	BoardLarge   = "large"
)

// DefaultSnakeConfig returns the built-in configuration. It mirrors the
// embedded defaults/snake.yaml and is used when that file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Boards: map[string]BoardConfig{
			BoardClassic: {Title: "Snake", Width: 400, Height: 400, Tile: 20},
			BoardLarge:   {Title: "Snake (Large)", Width: 800, Height: 600, Tile: 20},
		},
		Timing: TimingConfig{
			TickRate:       60,
			MoveIntervalMS: 100,
		},
		Food: FoodConfig{
			MaxRetries: 64,
		},
		Palette: PaletteConfig{
			Background: "#000000",
			Snake:      "#00ff00",
			Head:       "#7cff7c",
			Food:       "#ff0000",
			Text:       "#ffffff",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
