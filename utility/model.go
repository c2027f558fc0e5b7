// Package utility scores the five actions open to every owned cell and picks
// the best, using discounted economic value over spatial potential fields.
package utility

import (
	"math"

	"github.com/nstehr/anion/econ"
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// Model is the utility brain for one game. Its field buffers are reused from
// turn to turn; a Model must not be shared between goroutines.
type Model struct {
	params Params
	env    *model.Environment
	fields *Fields
}

// NewModel validates p and allocates the per-game buffers.
func NewModel(p Params, env *model.Environment) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: p, env: env, fields: NewFields(env.Space)}, nil
}

func (m *Model) Params() Params { return m.params }

// Fields exposes the fields of the last computed turn.
func (m *Model) Fields() *Fields { return m.fields }

// Turn computes one action per owned cell, stays included, in index order.
func (m *Model) Turn(st *model.State) []model.Action {
	m.fields.Compute(m.params, m.env, st)
	view := viewOf(m.env, st)
	var actions []model.Action
	for p := range m.env.Space.Points() {
		if view.occ[p.Ix()].Tag != view.me {
			continue
		}
		if d, move := m.score(view, p).Best(); move {
			actions = append(actions, model.Go(p.Coord(), d))
		} else {
			actions = append(actions, model.Stay(p.Coord()))
		}
	}
	return actions
}

// Score returns the choice for the owned cell p against the fields of the
// last computed turn.
func (m *Model) Score(st *model.State, p space.Point) Choice {
	return m.score(viewOf(m.env, st), p)
}

func (m *Model) score(view *state, p space.Point) Choice {
	prm := m.params
	f := m.fields
	src := view.occ[p.Ix()]
	s := float64(src.Strength)
	headroom := (float64(model.MaxStrength) - s) / float64(model.MaxStrength)
	c := NewChoice(float64(m.env.Production.On(p)) * math.Pow(headroom, 4))

	g := prm.DiscountFactor
	for _, d := range space.Dirs {
		q := p.Adjacent(d)
		dst := view.occ[q.Ix()]
		ts := float64(dst.Strength)
		deltas := prm.ExpansionWeight*(f.Ownership.On(q)-f.Ownership.On(p)) +
			prm.DensityWeight*(math.Pow(f.Density.On(p), 4)-math.Pow(f.Density.On(q), 4)) +
			prm.AggressionWeight*(f.Blood.On(q)-f.Blood.On(p))

		if dst.Tag == view.me {
			if src.Strength < model.Strength(prm.MinimumMovableStrength) || dst.Strength >= model.MaxStrength {
				continue
			}
			overflow := max(0, ts+s-float64(model.MaxStrength))
			c.Moves[d] = deltas - overflow
			continue
		}

		if dst.Strength >= src.Strength {
			continue
		}
		acquire := float64(m.env.Production.On(q))*g*econ.Perpetuity(g) - 0.5*(s-ts)
		u := acquire + prm.ExpansionWeight + deltas
		if dst.Tag != model.Neutral {
			u += prm.AggressionWeight
		}
		c.Moves[d] = u
	}
	return c
}

// ComputeTurn is the pure per-turn entry point: it builds a fresh model,
// computes the fields and returns one action per owned cell. It panics on
// parameters Validate rejects.
func ComputeTurn(p Params, env *model.Environment, st *model.State) []model.Action {
	m, err := NewModel(p, env)
	if err != nil {
		panic("utility: " + err.Error())
	}
	return m.Turn(st)
}
