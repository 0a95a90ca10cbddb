package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a PaletteConfig resolved to drawable colors.
type Palette struct {
	Background color.Color
	Snake      color.Color
	Head       color.Color
	Food       color.Color
	Text       color.Color
}

// Colors parses every hex entry. Empty entries fall back to the defaults.
func (p PaletteConfig) Colors() (Palette, error) {
	def := DefaultSnakeConfig().Palette

	parse := func(name, value, fallback string) (color.Color, error) {
		if value == "" {
			value = fallback
		}
		c, err := colorful.Hex(value)
		if err != nil {
			return nil, fmt.Errorf("config: palette %s: %w", name, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	var (
		out Palette
		err error
	)
	if out.Background, err = parse("background", p.Background, def.Background); err != nil {
		return Palette{}, err
	}
	if out.Snake, err = parse("snake", p.Snake, def.Snake); err != nil {
		return Palette{}, err
	}
	if out.Head, err = parse("head", p.Head, def.Head); err != nil {
		return Palette{}, err
	}
	if out.Food, err = parse("food", p.Food, def.Food); err != nil {
		return Palette{}, err
	}
	if out.Text, err = parse("text", p.Text, def.Text); err != nil {
		return Palette{}, err
	}
	return out, nil
}
