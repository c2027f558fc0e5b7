package utility

import (
	"github.com/nstehr/anion/econ"
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// Fields are the potential fields the move scores are built from. They are
// recomputed once per turn into reused buffers.
type Fields struct {
	// Density is the discounted local mass of own strength, normalised to [0,1].
	Density *space.Grid[float64]
	// Ownership is the discounted value of every cell not yet owned.
	Ownership *space.Grid[float64]
	// Blood is the discounted proximity to enemy cells.
	Blood *space.Grid[float64]

	decay []float64 // decay by L1 distance
}

// NewFields allocates zeroed fields for s.
func NewFields(s *space.Space) *Fields {
	return &Fields{
		Density:   space.NewGrid[float64](s),
		Ownership: space.NewGrid[float64](s),
		Blood:     space.NewGrid[float64](s),
	}
}

// Compute refreshes every field for the given turn.
func (f *Fields) Compute(p Params, env *model.Environment, st *model.State) {
	view := viewOf(env, st)
	s := env.Space
	g := p.DiscountFactor
	maxDist := s.Width()/2 + s.Height()/2
	if need := max(maxDist, p.DensityRadius) + 1; len(f.decay) < need {
		f.decay = make([]float64, need)
	}
	for d := range f.decay {
		f.decay[d] = econ.Decay(g, float64(d))
	}
	f.density(p.DensityRadius, env, view)
	f.potentials(g, env, view)
}

// density averages own strength over the radius disc around each cell. On
// small spaces the disc may fold onto itself; wrapped cells count once per
// offset in both sums.
func (f *Fields) density(radius int, env *model.Environment, st *state) {
	s := env.Space
	var norm float64
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if d := abs(dx) + abs(dy); d <= radius {
				norm += f.decay[d]
			}
		}
	}
	for c := range s.Points() {
		at := c.Coord()
		var mass float64
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				d := abs(dx) + abs(dy)
				if d > radius {
					continue
				}
				o := st.occ[s.Index(space.Coord{X: at.X + dx, Y: at.Y + dy})]
				if o.Tag == st.me {
					mass += float64(o.Strength) / float64(model.MaxStrength) * f.decay[d]
				}
			}
		}
		f.Density.Set(c.Ix(), mass/norm)
	}
}

// potentials fills ownership and blood. Both exclude the cell's own term.
func (f *Fields) potentials(g float64, env *model.Environment, st *state) {
	s := env.Space
	perp := econ.Perpetuity(g)
	prod := env.Production.Cells()
	var foreign, enemies []int
	for ix, o := range st.occ {
		if o.Tag == st.me {
			continue
		}
		foreign = append(foreign, ix)
		if o.Tag != model.Neutral {
			enemies = append(enemies, ix)
		}
	}
	for c := 0; c < s.Len(); c++ {
		var own, blood float64
		for _, z := range foreign {
			if z == c {
				continue
			}
			own += float64(prod[z]) * f.decay[s.L1Distance(c, z)] * perp
		}
		for _, z := range enemies {
			if z == c {
				continue
			}
			blood += f.decay[s.L1Distance(c, z)]
		}
		f.Ownership.Set(c, own)
		f.Blood.Set(c, blood)
	}
}

// state is the per-turn view the fields and scores read.
type state struct {
	me  model.Tag
	occ []model.Occupation
}

func viewOf(env *model.Environment, st *model.State) *state {
	return &state{me: env.MyTag, occ: st.Occupation.Cells()}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
