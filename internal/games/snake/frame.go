package snake

// Frame is a read-only copy of everything a renderer needs.
type Frame struct {
	Board   Board
	Snake   []Point // Head at index 0
	Food    Point
	HasFood bool
	Phase   Phase
	Paused  bool
}

// Frame returns a snapshot of the drawable state. Mutating it does not
// affect the game.
func (g *Game) Frame() Frame {
	body := make([]Point, len(g.snake))
	copy(body, g.snake)
	return Frame{
		Board:   g.opts.Board,
		Snake:   body,
		Food:    g.food,
		HasFood: g.hasFood,
		Phase:   g.phase,
		Paused:  g.paused,
	}
}

// Length returns the number of segments.
func (f Frame) Length() int {
	return len(f.Snake)
}

// Message returns the overlay text for the frame, or "" while playing.
func (f Frame) Message() string {
	switch {
	case f.Phase == PhaseBoardFull:
		return "Board full - you win! Press R to restart."
	case f.Phase == PhaseGameOver:
		return "Game Over! Press R to restart."
	case f.Paused:
		return "Paused - press P to continue."
	}
	return ""
}
