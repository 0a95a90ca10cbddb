package snake

// Advance performs one move: apply the pending direction, prepend the new
// head, grow on food or trim the tail, then check for collisions.
// It returns false and changes nothing once the game has ended.
func (g *Game) Advance() bool {
	if g.phase.Terminal() || len(g.snake) == 0 {
		return false
	}

	g.applyScript()
	if d, ok := g.steering.Take(); ok && d != g.direction.Opposite() {
		if d != g.direction {
			g.journal = append(g.journal, Move{Tick: g.moves, Dir: d})
		}
		g.direction = d
	}
	g.moves++

	newHead := g.snake[0].Add(g.direction.Delta(g.opts.Board.Tile))
	g.snake = append([]Point{newHead}, g.snake...)

	ate := g.hasFood && newHead == g.food
	if !ate {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if g.collides(newHead) {
		g.phase = PhaseGameOver
		return true
	}

	if ate {
		g.spawnFood()
	}
	return true
}

// collides reports a wall hit or the head overlapping any non-head segment.
func (g *Game) collides(head Point) bool {
	if !g.opts.Board.Contains(head) {
		return true
	}
	for _, seg := range g.snake[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// spawnFood places food at a random free tile. When none is left the
// snake fills the board and the session ends as a win.
func (g *Game) spawnFood() {
	p, ok := g.placer.Place(g.opts.Board, g.snake)
	if !ok {
		g.hasFood = false
		g.phase = PhaseBoardFull
		return
	}
	g.food = p
	g.hasFood = true
}
