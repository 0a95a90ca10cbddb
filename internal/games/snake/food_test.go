package snake

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoodNeverOnSnake(t *testing.T) {
	board := Board{Width: 100, Height: 100, Tile: 20}

	for seed := range int64(50) {
		rng := rand.New(rand.NewSource(seed))
		placer := NewFoodPlacer(rng, DefaultFoodRetries)

		// Cover a random share of the 25 tiles.
		var body []Point
		for i := range rng.Intn(board.Tiles()) {
			body = append(body, board.TileAt(i%board.Cols(), i/board.Cols()))
		}

		p, ok := placer.Place(board, body)
		require.True(t, ok, "seed %d", seed)
		require.NotContains(t, body, p, "seed %d", seed)
		require.True(t, board.Contains(p))
	}
}

func TestFoodFallsBackToFreeList(t *testing.T) {
	board := Board{Width: 60, Height: 60, Tile: 20}
	var body []Point
	for row := range 3 {
		for col := range 3 {
			if col == 2 && row == 1 {
				continue
			}
			body = append(body, board.TileAt(col, row))
		}
	}

	// No retries forces the complement path.
	placer := NewFoodPlacer(rand.New(rand.NewSource(1)), 0)
	p, ok := placer.Place(board, body)
	require.True(t, ok)
	require.Equal(t, Point{40, 20}, p)
}

func TestFoodBoardFull(t *testing.T) {
	board := Board{Width: 40, Height: 40, Tile: 20}
	body := []Point{{0, 0}, {20, 0}, {20, 20}, {0, 20}}

	placer := NewFoodPlacer(rand.New(rand.NewSource(1)), DefaultFoodRetries)
	_, ok := placer.Place(board, body)
	require.False(t, ok)
}

func TestFoodUniform(t *testing.T) {
	board := Board{Width: 60, Height: 20, Tile: 20}
	body := []Point{{20, 0}}
	placer := NewFoodPlacer(rand.New(rand.NewSource(99)), DefaultFoodRetries)

	counts := make(map[Point]int)
	for range 2000 {
		p, ok := placer.Place(board, body)
		require.True(t, ok)
		counts[p]++
	}

	require.Len(t, counts, 2)
	require.InDelta(t, 1000, counts[Point{0, 0}], 150)
	require.InDelta(t, 1000, counts[Point{40, 0}], 150)
}

func TestNewFoodPlacerNegativeRetries(t *testing.T) {
	placer := NewFoodPlacer(rand.New(rand.NewSource(1)), -1)
	require.Equal(t, DefaultFoodRetries, placer.maxRetries)
}
