package brain

import (
	"math"

	"github.com/nstehr/anion/econ"
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
	"github.com/nstehr/anion/utility"
)

func init() {
	Register("wave", func(s Settings) (Brain, error) {
		if err := s.Params.Validate(); err != nil {
			return nil, err
		}
		return &waveBrain{env: s.Env, params: s.Params}, nil
	})
}

// waveBrain plans conquests along the rim of the body. Every rim cell is
// valued by the territory it opens up; the owned strength needed to take it
// is pulled in along a wave from the target. Cells behind the saturating
// front hold still and grow, cells of that front step towards the target.
type waveBrain struct {
	env    *model.Environment
	params utility.Params
}

func (b *waveBrain) Name() string { return "Wave" }

func (b *waveBrain) Tick(st *model.State) []model.Action {
	env := b.env
	g := b.params.DiscountFactor
	body := st.Owned(env)
	choices := make(map[int]*utility.Choice)
	choice := func(ix int) *utility.Choice {
		c, ok := choices[ix]
		if !ok {
			nc := utility.NewChoice(0)
			c = &nc
			choices[ix] = c
		}
		return c
	}

	for _, rim := range utility.RimValues(env, st, body, b.params, env.TurnsLeft(st.Turn)) {
		t, w, ok := utility.CaptureTiming(env, st, body, rim.At)
		if !ok {
			continue
		}
		u := rim.Value * econ.Discount(g, t)
		for k := 1; k < t; k++ {
			front, _ := w.Front(k)
			for z := range front.All() {
				c := choice(z.Ix())
				c.Stay = math.Max(c.Stay, u)
			}
		}
		last, _ := w.Front(t)
		for z := range last.All() {
			// step onto the neighbour one level closer to the target
			want := w.Level(z.Ix()) - 1
			for _, d := range space.Dirs {
				if w.Level(z.Adjacent(d).Ix()) == want {
					c := choice(z.Ix())
					c.Moves[d] = math.Max(c.Moves[d], u)
					break
				}
			}
		}
	}

	var actions []model.Action
	for p := range env.Space.Points() {
		c, ok := choices[p.Ix()]
		if !ok {
			continue
		}
		if d, move := c.Best(); move {
			actions = append(actions, model.Go(p.Coord(), d))
		}
	}
	return actions
}
