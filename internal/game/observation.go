package game

import (
	"math"

	"github.com/vovakirdan/hedgeheart/internal/core"
)

// Grid quantizes world positions for the remote controller.
type Grid struct {
	Cols, Rows int
	CellW      float64
	CellH      float64
}

// NewGrid sizes the cells as floor(world / count).
func NewGrid(worldW, worldH float64, cols, rows int) Grid {
	return Grid{
		Cols:  cols,
		Rows:  rows,
		CellW: math.Max(1, math.Floor(worldW/float64(cols))),
		CellH: math.Max(1, math.Floor(worldH/float64(rows))),
	}
}

// Cell returns the column and row of a position and whether it is on the grid.
func (g Grid) Cell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / g.CellW))
	row = int(math.Floor(y / g.CellH))
	ok = col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
	return col, row, ok
}

// Marker is the grid value of an obstacle; faster kinds get larger markers.
func Marker(a Archetype) int {
	return int(math.Floor(a.SpeedFactor)) + 1
}

// Rewarder turns score changes between observations into rewards.
type Rewarder struct {
	baseline int
	primed   bool
}

// Reset forgets the baseline; the next observation primes it.
func (r *Rewarder) Reset() {
	r.primed = false
}

// Reward returns how many seconds the score dropped since the previous
// observation.
func (r *Rewarder) Reward(score int) int {
	if !r.primed {
		r.baseline = score
		r.primed = true
		return 0
	}
	reward := r.baseline - score
	r.baseline = score
	return reward
}

// Observe builds the grid: 1 for the player, Marker for each obstacle not yet
// passed. Later obstacles overwrite earlier ones in a shared cell.
func Observe(g Grid, player [2]float64, obstacles []*Obstacle, position func(core.EntityID) (float64, float64)) [][]int {
	state := make([][]int, g.Rows)
	for r := range state {
		state[r] = make([]int, g.Cols)
	}
	if c, r, ok := g.Cell(player[0], player[1]); ok {
		state[r][c] = core.CellPlayer
	}
	for _, o := range obstacles {
		if o.Passed {
			continue
		}
		x, y := position(o.ID)
		if c, r, ok := g.Cell(x, y); ok {
			state[r][c] = Marker(o.Archetype)
		}
	}
	return state
}
