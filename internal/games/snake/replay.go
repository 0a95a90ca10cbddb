package snake

import (
	"github.com/vovakirdan/snake/internal/core"
)

// Move is a direction change applied before the move with index Tick.
type Move struct {
	Tick uint64    `json:"tick"`
	Dir  Direction `json:"dir"`
}

// Recording is everything needed to re-simulate a finished session:
// the seed drives food placement, the moves drive steering, and the board
// and retry budget fix how many random draws each placement takes.
type Recording struct {
	GameID      string
	Seed        int64
	Moves       []Move
	Ticks       uint64 // Number of snake moves played
	Length      int
	Phase       Phase
	Board       Board // Zero for runs journaled without their board
	FoodRetries int
}

// HasBoard reports whether the recording carries its own board and food
// settings. Without them a replay falls back to the caller's options.
func (r Recording) HasBoard() bool {
	return r.Board.Tile != 0
}

// ReplayOptions returns base with the recorded board and food settings
// applied.
func (r Recording) ReplayOptions(base Options) Options {
	if r.HasBoard() {
		base.Board = r.Board
		base.FoodRetries = r.FoodRetries
	}
	return base
}

// Recording returns the journal of the current session. The second value
// is false for replays, which should not be recorded again.
func (g *Game) Recording() (Recording, bool) {
	moves := make([]Move, len(g.journal))
	copy(moves, g.journal)
	return Recording{
		GameID:      g.opts.ID,
		Seed:        g.seed,
		Moves:       moves,
		Ticks:       g.moves,
		Length:      len(g.snake),
		Phase:       g.phase,
		Board:       g.opts.Board,
		FoodRetries: g.opts.FoodRetries,
	}, g.script == nil
}

// NewReplay creates a game that replays rec, ignoring directional input.
// It plays at normal speed through Step and always resets to the recorded
// seed; restart replays from the start. The recorded board and food
// settings take precedence over opts.
func NewReplay(opts Options, rec Recording) (*Game, error) {
	g, err := New(rec.ReplayOptions(opts))
	if err != nil {
		return nil, err
	}
	g.script = make([]Move, len(rec.Moves))
	copy(g.script, rec.Moves)
	g.scriptSeed = rec.Seed
	return g, nil
}

// Replay re-simulates rec without frame pacing and returns the final game.
func Replay(opts Options, rec Recording) (*Game, error) {
	g, err := NewReplay(opts, rec)
	if err != nil {
		return nil, err
	}
	g.Reset(core.RuntimeConfig{Seed: rec.Seed})
	for g.moves < rec.Ticks && g.Advance() {
	}
	return g, nil
}

// applyScript offers the scripted direction for the upcoming move.
func (g *Game) applyScript() {
	for _, m := range g.script {
		if m.Tick == g.moves {
			g.steering.Offer(m.Dir)
			return
		}
		if m.Tick > g.moves {
			return
		}
	}
}
