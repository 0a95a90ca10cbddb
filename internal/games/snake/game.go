package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/snake/internal/config"
	"github.com/vovakirdan/snake/internal/core"
	"github.com/vovakirdan/snake/internal/registry"
)

// Game identifiers registered with the game registry.
const (
	IDClassic = "snake"
	IDLarge   = "snake_large"
)

// Phase is the game's state machine: Playing -> GameOver | BoardFull -> Playing (on restart).
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseBoardFull
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// ParsePhase converts a phase name back to a Phase.
func ParsePhase(s string) (Phase, error) {
	for _, p := range []Phase{PhasePlaying, PhaseGameOver, PhaseBoardFull} {
		if p.String() == s {
			return p, nil
		}
	}
	return PhasePlaying, fmt.Errorf("snake: unknown phase %q", s)
}

// Terminal reports whether the phase ends the session until restart.
func (p Phase) Terminal() bool {
	return p != PhasePlaying
}

// Options configures a Game.
type Options struct {
	ID           string
	Title        string
	Board        Board
	MoveInterval time.Duration // Wall time between snake moves
	FoodRetries  int
}

// DefaultOptions returns the classic 400x400 board with 20px tiles moving every 100ms.
func DefaultOptions() Options {
	return Options{
		ID:           IDClassic,
		Title:        "Snake",
		Board:        Board{Width: 400, Height: 400, Tile: 20},
		MoveInterval: 100 * time.Millisecond,
		FoodRetries:  DefaultFoodRetries,
	}
}

// OptionsFromConfig builds options for a board preset.
func OptionsFromConfig(cfg config.SnakeConfig, id, preset string) (Options, error) {
	bc, err := cfg.Board(preset)
	if err != nil {
		return Options{}, err
	}
	board := Board{Width: bc.Width, Height: bc.Height, Tile: bc.Tile}
	if err := board.Validate(); err != nil {
		return Options{}, err
	}
	title := bc.Title
	if title == "" {
		title = "Snake"
	}
	return Options{
		ID:           id,
		Title:        title,
		Board:        board,
		MoveInterval: cfg.MoveInterval(),
		FoodRetries:  cfg.Food.MaxRetries,
	}, nil
}

// Game implements the snake game.
type Game struct {
	opts     Options
	rng      *rand.Rand
	seed     int64
	placer   *FoodPlacer
	steering *Steering

	tickRate       int
	tick           uint64 // Frames stepped since reset
	moves          uint64 // Snake moves since reset
	moveEveryTicks int
	moveTicker     int // Counts frames until next move

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	food      Point
	hasFood   bool

	phase  Phase
	paused bool

	journal    []Move // Direction changes applied, by move index
	script     []Move // Replay input; nil for live games
	scriptSeed int64
}

// Package-level config used by registry factories. Set by the CLI after loading.
var activeConfig = config.DefaultSnakeConfig()

// SetConfig replaces the configuration used by registered factories.
func SetConfig(cfg config.SnakeConfig) {
	activeConfig = cfg
}

// presetGame builds a game for a preset, falling back to the classic board
// if the preset is missing from the active config.
func presetGame(id, preset string) *Game {
	opts, err := OptionsFromConfig(activeConfig, id, preset)
	if err != nil {
		opts = DefaultOptions()
		opts.ID = id
	}
	g, err := New(opts)
	if err != nil {
		g, _ = New(DefaultOptions())
	}
	return g
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return presetGame(IDClassic, config.BoardClassic)
	})
	registry.Register(IDLarge, func() registry.Game {
		return presetGame(IDLarge, config.BoardLarge)
	})
}

// New creates a game. The board must be tile-aligned; the game is not
// playable until Reset is called.
func New(opts Options) (*Game, error) {
	if err := opts.Board.Validate(); err != nil {
		return nil, err
	}
	if opts.ID == "" {
		opts.ID = IDClassic
	}
	if opts.Title == "" {
		opts.Title = "Snake"
	}
	if opts.MoveInterval <= 0 {
		opts.MoveInterval = DefaultOptions().MoveInterval
	}
	return &Game{
		opts:     opts,
		steering: NewSteering(),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.opts.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.opts.Title
}

// Options returns the options the game was created with.
func (g *Game) Options() Options {
	return g.opts
}

// Board returns the play area.
func (g *Game) Board() Board {
	return g.opts.Board
}

// Seed returns the RNG seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// Reset initializes/restarts the game: one segment at the board center
// heading right, with food placed off the snake.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	g.seed = cfg.Seed
	if g.script != nil {
		g.seed = g.scriptSeed
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	g.placer = NewFoodPlacer(g.rng, g.opts.FoodRetries)
	g.steering.Drain()

	g.tickRate = tickRate
	g.tick = 0
	g.moves = 0
	g.moveTicker = 0
	g.moveEveryTicks = max(1, int((g.opts.MoveInterval*time.Duration(tickRate)+time.Second/2)/time.Second))

	g.snake = []Point{g.opts.Board.Center()}
	g.direction = DirRight
	g.phase = PhasePlaying
	g.paused = false
	g.journal = nil

	g.spawnFood()
}

// Step advances the game by one frame, moving the snake every
// moveEveryTicks frames.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Restart is only honored in a terminal phase
	if input.Has(core.ActionRestart) && g.phase.Terminal() {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}

	if g.phase.Terminal() || g.paused {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	moved := false
	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		moved = g.Advance()
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// restart begins a new session with a seed drawn from the current one.
// Replays always restart from the recorded seed.
func (g *Game) restart() {
	g.Reset(core.RuntimeConfig{
		Seed:     g.rng.Int63(),
		TickRate: g.tickRate,
	})
}

// processInput forwards the last directional action of the frame.
func (g *Game) processInput(input core.InputFrame) {
	if g.script != nil {
		return
	}
	switch input.LastDirection {
	case core.ActionUp:
		g.Steer(DirUp)
	case core.ActionDown:
		g.Steer(DirDown)
	case core.ActionLeft:
		g.Steer(DirLeft)
	case core.ActionRight:
		g.Steer(DirRight)
	}
}

// Steer requests a direction for the next move. A request that reverses the
// current direction is ignored and leaves any pending request in place.
func (g *Game) Steer(d Direction) bool {
	if g.phase.Terminal() || d == g.direction.Opposite() {
		return false
	}
	g.steering.Offer(d)
	return true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    len(g.snake),
		GameOver: g.phase.Terminal(),
		Paused:   g.paused,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Direction returns the direction of the last move.
func (g *Game) Direction() Direction {
	return g.direction
}

// Length returns the number of snake segments.
func (g *Game) Length() int {
	return len(g.snake)
}
