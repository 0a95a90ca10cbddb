package snake

import (
	"fmt"

	"github.com/vovakirdan/snake/internal/core"
)

// Terminal glyphs. Each tile is two columns wide so tiles look square.
const (
	glyphBody = "██"
	glyphHead = "▓▓"
	glyphFood = "<>"
	cellW     = 2
	hudHeight = 1
)

// Render draws the game to the screen. It only reads game state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	f := g.Frame()

	g.renderHUD(dst, f)

	board := f.Board
	boxW := board.Cols()*cellW + 2
	boxH := board.Rows() + 2
	if dst.Width() < boxW || dst.Height() < boxH+hudHeight {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boxW, boxH+hudHeight))
		return
	}

	originX := (dst.Width() - boxW) / 2
	originY := hudHeight
	dst.DrawBox(core.NewRect(originX, originY, boxW, boxH), core.ColorGray)

	plot := func(p Point, glyph string, c core.Color) {
		if !board.Contains(p) {
			return
		}
		col, row := board.Cell(p)
		dst.DrawTextColored(originX+1+col*cellW, originY+1+row, glyph, c)
	}

	if f.HasFood {
		plot(f.Food, glyphFood, core.ColorBrightRed)
	}
	for i := len(f.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			plot(f.Snake[i], glyphHead, core.ColorBrightGreen)
		} else {
			plot(f.Snake[i], glyphBody, core.ColorGreen)
		}
	}

	switch {
	case f.Phase == PhaseBoardFull:
		renderOverlay(dst, "Board full - you win!", fmt.Sprintf("Length %d. Press R to restart", f.Length()))
	case f.Phase == PhaseGameOver:
		renderOverlay(dst, "Game Over!", "Press R to restart")
	case f.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen, f Frame) {
	hud := fmt.Sprintf(" %s - Length: %d  Board: %dx%d", g.opts.Title, f.Length(), f.Board.Cols(), f.Board.Rows())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
