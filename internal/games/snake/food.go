package snake

import "math/rand"

// DefaultFoodRetries is the rejection-sampling budget used when none is configured.
const DefaultFoodRetries = 64

// FoodPlacer picks food tiles uniformly among those not covered by the snake.
//
// It first draws random tiles and rejects occupied ones. After maxRetries
// rejections it samples from the explicit list of free tiles instead, which
// also detects a full board.
type FoodPlacer struct {
	rng        *rand.Rand
	maxRetries int
}

// NewFoodPlacer creates a placer drawing from rng.
func NewFoodPlacer(rng *rand.Rand, maxRetries int) *FoodPlacer {
	if maxRetries < 0 {
		maxRetries = DefaultFoodRetries
	}
	return &FoodPlacer{rng: rng, maxRetries: maxRetries}
}

// Place returns a free tile, or false when the snake covers every tile.
func (f *FoodPlacer) Place(b Board, body []Point) (Point, bool) {
	occupied := make(map[Point]struct{}, len(body))
	for _, seg := range body {
		occupied[seg] = struct{}{}
	}

	cols, rows := b.Cols(), b.Rows()
	if len(occupied) < b.Tiles() {
		for range f.maxRetries {
			p := b.TileAt(f.rng.Intn(cols), f.rng.Intn(rows))
			if _, taken := occupied[p]; !taken {
				return p, true
			}
		}
	}

	free := make([]Point, 0, max(b.Tiles()-len(occupied), 0))
	for row := range rows {
		for col := range cols {
			p := b.TileAt(col, row)
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Point{}, false
	}
	return free[f.rng.Intn(len(free))], true
}
