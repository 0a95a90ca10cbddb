package snake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New(DefaultOptions())
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{Seed: seed, TickRate: 60})
	return g
}

// setState puts the game into an exact position for rule checks.
func setState(g *Game, body []Point, dir Direction, food Point) {
	g.snake = append([]Point(nil), body...)
	g.direction = dir
	g.food = food
	g.hasFood = true
	g.phase = PhasePlaying
	g.steering.Drain()
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(t, 1)

	require.Equal(t, PhasePlaying, g.Phase())
	require.Equal(t, DirRight, g.Direction())
	require.Equal(t, []Point{{200, 200}}, g.Frame().Snake)

	f := g.Frame()
	require.True(t, f.HasFood)
	require.NotEqual(t, Point{200, 200}, f.Food)
	require.True(t, f.Board.Contains(f.Food))
	require.Zero(t, f.Food.X%20)
	require.Zero(t, f.Food.Y%20)
}

func TestNewRejectsMisalignedBoard(t *testing.T) {
	opts := DefaultOptions()
	opts.Board = Board{Width: 410, Height: 400, Tile: 20}
	_, err := New(opts)
	require.ErrorIs(t, err, ErrInvalidBoard)
}

func TestEatFoodGrows(t *testing.T) {
	g := newTestGame(t, 7)
	setState(g, []Point{{200, 200}}, DirRight, Point{220, 200})

	require.True(t, g.Advance())

	require.Equal(t, []Point{{220, 200}, {200, 200}}, g.Frame().Snake)
	require.Equal(t, PhasePlaying, g.Phase())

	f := g.Frame()
	require.True(t, f.HasFood)
	require.NotContains(t, f.Snake, f.Food)
}

func TestMoveWithoutFoodKeepsLength(t *testing.T) {
	g := newTestGame(t, 7)
	setState(g, []Point{{200, 200}, {180, 200}, {160, 200}}, DirRight, Point{0, 0})

	g.Advance()

	require.Equal(t, []Point{{220, 200}, {200, 200}, {180, 200}}, g.Frame().Snake)
}

func TestHeadMovesOneTile(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Point
	}{
		{DirUp, Point{200, 180}},
		{DirDown, Point{200, 220}},
		{DirLeft, Point{180, 200}},
		{DirRight, Point{220, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			g := newTestGame(t, 3)
			setState(g, []Point{{200, 200}}, tt.dir, Point{0, 0})
			g.Advance()
			require.Equal(t, tt.want, g.Frame().Snake[0])
		})
	}
}

func TestWallCollision(t *testing.T) {
	g := newTestGame(t, 7)
	setState(g, []Point{{0, 200}, {0, 180}}, DirLeft, Point{300, 300})

	require.True(t, g.Advance())

	require.Equal(t, PhaseGameOver, g.Phase())
	require.True(t, g.State().GameOver)
	require.Equal(t, "Game Over! Press R to restart.", g.Frame().Message())
}

func TestWallCollisionEveryEdge(t *testing.T) {
	tests := []struct {
		name string
		head Point
		dir  Direction
	}{
		{"top", Point{200, 0}, DirUp},
		{"bottom", Point{200, 380}, DirDown},
		{"left", Point{0, 200}, DirLeft},
		{"right", Point{380, 200}, DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 3)
			setState(g, []Point{tt.head}, tt.dir, Point{100, 100})
			g.Advance()
			require.Equal(t, PhaseGameOver, g.Phase())
		})
	}
}

func TestEdgeTileIsInBounds(t *testing.T) {
	g := newTestGame(t, 3)
	setState(g, []Point{{360, 200}}, DirRight, Point{100, 100})

	g.Advance()

	require.Equal(t, PhasePlaying, g.Phase())
	require.Equal(t, Point{380, 200}, g.Frame().Snake[0])
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, 3)
	// Head moving left along the top of a hook; turning down hits the body.
	setState(g, []Point{{100, 100}, {120, 100}, {120, 120}, {100, 120}, {80, 120}}, DirLeft, Point{0, 0})

	require.True(t, g.Steer(DirDown))
	g.Advance()

	require.Equal(t, PhaseGameOver, g.Phase())
}

func TestFollowingTailIsNotCollision(t *testing.T) {
	g := newTestGame(t, 3)
	// The head moves onto the tile the tail leaves in the same move.
	setState(g, []Point{{100, 100}, {120, 100}, {120, 120}, {100, 120}}, DirLeft, Point{0, 0})

	require.True(t, g.Steer(DirDown))
	g.Advance()

	require.Equal(t, PhasePlaying, g.Phase())
	require.Equal(t, []Point{{100, 120}, {100, 100}, {120, 100}, {120, 120}}, g.Frame().Snake)
}

func TestSingleSegmentNeverSelfCollides(t *testing.T) {
	g := newTestGame(t, 3)
	setState(g, []Point{{0, 0}}, DirRight, Point{0, 380})

	for range 19 {
		require.True(t, g.Advance())
		require.Equal(t, PhasePlaying, g.Phase())
	}
	require.Equal(t, Point{380, 0}, g.Frame().Snake[0])
	require.Equal(t, 1, g.Length())
}

func TestReversalRejected(t *testing.T) {
	g := newTestGame(t, 3)
	setState(g, []Point{{200, 200}, {180, 200}}, DirRight, Point{0, 0})

	require.False(t, g.Steer(DirLeft))
	g.Advance()

	require.Equal(t, DirRight, g.Direction())
	require.Equal(t, Point{220, 200}, g.Frame().Snake[0])
}

func TestReversalRejectedOnTake(t *testing.T) {
	g := newTestGame(t, 3)
	setState(g, []Point{{200, 200}, {180, 200}}, DirRight, Point{0, 0})

	// Bypass Steer: the move step must still refuse to reverse.
	g.steering.Offer(DirLeft)
	g.Advance()

	require.Equal(t, DirRight, g.Direction())
	require.Equal(t, PhasePlaying, g.Phase())
}

func TestSteeringLastWriteWins(t *testing.T) {
	g := newTestGame(t, 3)
	setState(g, []Point{{200, 200}}, DirRight, Point{0, 0})

	require.True(t, g.Steer(DirUp))
	require.True(t, g.Steer(DirDown))
	g.Advance()

	require.Equal(t, DirDown, g.Direction())
	require.Equal(t, Point{200, 220}, g.Frame().Snake[0])
}

func TestSteerOncePerMove(t *testing.T) {
	g := newTestGame(t, 3)
	setState(g, []Point{{200, 200}}, DirRight, Point{0, 0})

	g.Steer(DirUp)
	g.Advance()
	g.Advance()

	require.Equal(t, []Point{{200, 160}}, g.Frame().Snake)
}

func TestBoardFullWins(t *testing.T) {
	opts := DefaultOptions()
	opts.Board = Board{Width: 40, Height: 20, Tile: 20}
	g, err := New(opts)
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{Seed: 1})

	// Two tiles: the snake starts on one, food must be on the other.
	f := g.Frame()
	require.Equal(t, []Point{{20, 0}}, f.Snake)
	require.Equal(t, Point{0, 0}, f.Food)

	g.direction = DirLeft
	require.True(t, g.Advance())

	require.Equal(t, PhaseBoardFull, g.Phase())
	require.Equal(t, 2, g.Length())
	require.False(t, g.Frame().HasFood)
	require.True(t, g.State().GameOver)
	require.Contains(t, g.Frame().Message(), "you win")
}

func TestAdvanceIsNoopWhenOver(t *testing.T) {
	g := newTestGame(t, 7)
	setState(g, []Point{{0, 200}}, DirLeft, Point{300, 300})
	g.Advance()
	require.Equal(t, PhaseGameOver, g.Phase())

	before := g.Frame()
	require.False(t, g.Advance())
	require.False(t, g.Steer(DirUp))
	require.Equal(t, before, g.Frame())
}

func TestStepMovesEveryInterval(t *testing.T) {
	g := newTestGame(t, 5)
	input := core.NewInputFrame()

	// 100ms at 60 frames per second is six frames per move.
	for i := range 5 {
		res := g.Step(input)
		require.False(t, res.Moved, "frame %d", i)
	}
	res := g.Step(input)
	require.True(t, res.Moved)
	require.Equal(t, Point{220, 200}, g.Frame().Snake[0])
}

func TestStepAppliesLastDirection(t *testing.T) {
	g := newTestGame(t, 5)
	input := core.NewInputFrame()
	input.Set(core.ActionUp)
	input.Set(core.ActionDown)

	for range 6 {
		g.Step(input)
	}

	require.Equal(t, DirDown, g.Direction())
}

func TestRestartOnlyWhenOver(t *testing.T) {
	g := newTestGame(t, 5)
	setState(g, []Point{{200, 200}, {180, 200}}, DirRight, Point{0, 0})

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)

	g.Step(restart)
	require.Equal(t, 2, g.Length())

	setState(g, []Point{{380, 200}, {360, 200}}, DirRight, Point{0, 0})
	g.Advance()
	require.Equal(t, PhaseGameOver, g.Phase())

	g.Step(restart)
	require.Equal(t, PhasePlaying, g.Phase())
	require.Equal(t, []Point{{200, 200}}, g.Frame().Snake)
	require.Equal(t, DirRight, g.Direction())
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, 5)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	idle := core.NewInputFrame()

	g.Step(pause)
	require.True(t, g.State().Paused)

	for range 20 {
		require.False(t, g.Step(idle).Moved)
	}
	require.Equal(t, []Point{{200, 200}}, g.Frame().Snake)

	g.Step(pause)
	require.False(t, g.State().Paused)
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	input := core.NewInputFrame()
	for i := range 600 {
		input.Clear()
		switch i % 90 {
		case 20:
			input.Set(core.ActionDown)
		case 45:
			input.Set(core.ActionLeft)
		case 70:
			input.Set(core.ActionUp)
		case 85:
			input.Set(core.ActionRight)
		}
		g1.Step(input)
		g2.Step(input)
	}

	require.Equal(t, g1.Snapshot(), g2.Snapshot())
	require.Equal(t, g1.Frame(), g2.Frame())
}

func TestFoodDiffersAcrossSeeds(t *testing.T) {
	foods := make(map[Point]bool)
	for seed := range int64(20) {
		foods[newTestGame(t, seed).Frame().Food] = true
	}
	require.Greater(t, len(foods), 1)
}

func TestFrameIsACopy(t *testing.T) {
	g := newTestGame(t, 5)
	f := g.Frame()
	f.Snake[0] = Point{-20, -20}

	require.Equal(t, Point{200, 200}, g.Frame().Snake[0])
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 5)
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()
	require.Contains(t, out, "Length: 1")
	require.Contains(t, out, glyphHead)
	require.Contains(t, out, glyphFood)

	setState(g, []Point{{0, 200}}, DirLeft, Point{100, 100})
	g.Advance()
	g.Render(scr)
	require.Contains(t, scr.String(), "Game Over!")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 5)
	scr := core.NewScreen(30, 12)

	g.Render(scr)
	require.True(t, strings.Contains(scr.String(), "Window too small"))
}

func TestRegisteredPresets(t *testing.T) {
	opts, err := OptionsFromConfig(activeConfig, IDLarge, "large")
	require.NoError(t, err)
	require.Equal(t, Board{Width: 800, Height: 600, Tile: 20}, opts.Board)

	g := presetGame(IDClassic, "missing")
	require.Equal(t, IDClassic, g.ID())
	require.Equal(t, DefaultOptions().Board, g.Board())
}
