package brain

import (
	"math"
	"math/rand"

	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

func init() {
	Register("probe", func(s Settings) (Brain, error) {
		return &probeBrain{rng: rand.New(rand.NewSource(s.Seed))}, nil
	})
}

const (
	probeAlpha = 1000.0
	probeBeta  = 0.125
)

// probeBrain measures how much work a turn may take before the game
// times the bot out. Each turn burns exponentially more random draws and
// emits a harmless stay whose position depends on the result.
type probeBrain struct {
	rng  *rand.Rand
	iter int
}

func (b *probeBrain) Name() string { return "Probe" }

func (b *probeBrain) Tick(*model.State) []model.Action {
	b.iter++
	work := int(probeAlpha * math.Exp(float64(b.iter)*probeBeta))
	var path uint64
	for range work {
		path += b.rng.Uint64()
	}
	if path&1 == 0 {
		return []model.Action{model.Stay(space.Coord{X: 0, Y: 0})}
	}
	return []model.Action{model.Stay(space.Coord{X: 1, Y: 0})}
}
