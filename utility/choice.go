package utility

import (
	"fmt"
	"math"

	"github.com/nstehr/anion/space"
)

// Choice holds the scores of the five actions open to one cell. An
// infeasible move scores negative infinity.
type Choice struct {
	Stay  float64
	Moves [4]float64 // indexed by space.Dir
}

// NewChoice returns a choice where only staying is feasible.
func NewChoice(stay float64) Choice {
	inf := math.Inf(-1)
	return Choice{Stay: stay, Moves: [4]float64{inf, inf, inf, inf}}
}

// Best picks the highest score. Staying is the incumbent and each direction
// in N, E, S, W order replaces the current best only when strictly greater.
// It reports false for a stay.
func (c Choice) Best() (space.Dir, bool) {
	if math.IsNaN(c.Stay) || math.IsInf(c.Stay, 0) {
		panic(fmt.Sprintf("utility: non-finite stay score %v", c.Stay))
	}
	best, dir, move := c.Stay, space.North, false
	for _, d := range space.Dirs {
		if c.Moves[d] > best {
			best, dir, move = c.Moves[d], d, true
		}
	}
	return dir, move
}
