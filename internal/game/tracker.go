package game

import "github.com/vovakirdan/hedgeheart/internal/core"

// Pass is the first moment the player got ahead of an obstacle.
type Pass struct {
	Obstacle *Obstacle
	X, Y     float64 // obstacle position when passed
}

// Track marks obstacles the player has moved past and returns them. Each
// obstacle is reported at most once.
func Track(playerX float64, obstacles []*Obstacle, position func(core.EntityID) (float64, float64)) []Pass {
	var passes []Pass
	for _, o := range obstacles {
		if o.Passed {
			continue
		}
		x, y := position(o.ID)
		if playerX > x {
			o.Passed = true
			passes = append(passes, Pass{Obstacle: o, X: x, Y: y})
		}
	}
	return passes
}
