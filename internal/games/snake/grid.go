package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snake/internal/core"
)

// ErrInvalidBoard is returned when board dimensions break tile alignment.
var ErrInvalidBoard = errors.New("snake: invalid board")

// Point is a pixel position. On a valid board it is a multiple of the tile size.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board is the play area in pixels, quantized to square tiles.
type Board struct {
	Width  int
	Height int
	Tile   int
}

// Validate checks that the board is non-empty and that Tile divides both sides.
func (b Board) Validate() error {
	if b.Width <= 0 || b.Height <= 0 || b.Tile <= 0 {
		return fmt.Errorf("%w: %dx%d tile %d", ErrInvalidBoard, b.Width, b.Height, b.Tile)
	}
	if b.Width%b.Tile != 0 || b.Height%b.Tile != 0 {
		return fmt.Errorf("%w: tile %d does not divide %dx%d", ErrInvalidBoard, b.Tile, b.Width, b.Height)
	}
	return nil
}

// Cols returns the number of tile columns.
func (b Board) Cols() int { return b.Width / b.Tile }

// Rows returns the number of tile rows.
func (b Board) Rows() int { return b.Height / b.Tile }

// Tiles returns the total number of tiles.
func (b Board) Tiles() int { return b.Cols() * b.Rows() }

// Bounds returns the board rectangle [0, Width) x [0, Height).
func (b Board) Bounds() core.Rect {
	return core.NewRect(0, 0, b.Width, b.Height)
}

// Contains reports whether p lies inside the board.
func (b Board) Contains(p Point) bool {
	return b.Bounds().Contains(p.X, p.Y)
}

// TileAt returns the pixel position of the tile at (col, row).
func (b Board) TileAt(col, row int) Point {
	return Point{X: col * b.Tile, Y: row * b.Tile}
}

// Cell returns the (col, row) of the tile containing p.
func (b Board) Cell(p Point) (col, row int) {
	return floorDiv(p.X, b.Tile), floorDiv(p.Y, b.Tile)
}

// Center returns the tile-aligned center of the board.
func (b Board) Center() Point {
	cx, cy := b.Bounds().Center()
	return Point{X: cx - cx%b.Tile, Y: cy - cy%b.Tile}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
