package snake

import (
	"fmt"
	"strings"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Moves    uint64
	Seed     int64
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	Phase    Phase
	Paused   bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Tick:     g.tick,
		Moves:    g.moves,
		Seed:     g.seed,
		SnakeLen: len(g.snake),
		HeadX:    headX,
		HeadY:    headY,
		Dir:      g.direction,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		Phase:    g.phase,
		Paused:   g.paused,
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	s := g.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Moves: %d, Seed: %d\n", s.Tick, s.Moves, s.Seed)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", s.SnakeLen, s.Dir)
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", s.HeadX, s.HeadY, s.FoodX, s.FoodY)
	fmt.Fprintf(&b, "Phase: %s, Paused: %v\n", s.Phase, s.Paused)
	return b.String()
}
