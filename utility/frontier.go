package utility

import (
	"math"

	"github.com/nstehr/anion/econ"
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// RimValue is the outward value of conquering one rim cell.
type RimValue struct {
	At    space.Point
	Value float64
}

// RimValues scores every cell of the rim around body: the discounted
// production reachable by pushing outward from it, with distance measured in
// the strength that has to be overcome along the way.
func RimValues(env *model.Environment, st *model.State, body *space.Mask, p Params, turnsLeft int) []RimValue {
	rim, ok := space.WaveFrom(body).Front(1)
	if !ok {
		return nil
	}
	out := make([]RimValue, 0, rim.Len())
	for z := range rim.All() {
		out = append(out, RimValue{At: z, Value: outwardValue(env, st, z, p, turnsLeft)})
	}
	return out
}

func outwardValue(env *model.Environment, st *model.State, from space.Point, p Params, turnsLeft int) float64 {
	g := p.DiscountFactor
	gDist := econ.Decay(g, 1/p.ProductionPerTurn)
	cost := func(z space.Point) (int, bool) {
		o := st.At(z)
		if o.Tag == env.MyTag {
			return 0, false
		}
		return int(o.Strength), true
	}
	var sum float64
	for dist, z := range from.DijkstraScan(cost).All() {
		turns := int(math.Ceil(float64(dist) / p.ProductionPerTurn))
		if turns >= turnsLeft {
			// costs only grow from here, so every later annuity is empty
			break
		}
		output := econ.Annuity(g, turnsLeft-turns) * float64(env.Production.On(z))
		sum += econ.Discount(gDist, dist) * output
	}
	return sum
}

// CaptureTiming reports how many turns of pulling owned strength towards
// target it takes to overcome the target's strength. The wave runs from the
// target through owned cells only; at each front the strength gathered so
// far grows by the production of the cells already pulled in, then by the
// strength of the new front. It reports false when the whole connected body
// is not enough.
func CaptureTiming(env *model.Environment, st *model.State, body *space.Mask, target space.Point) (int, *space.Wave, bool) {
	w := space.WaveBetween(space.Singleton(target), body.Complement())
	r := st.At(target).Strength
	var s model.Strength
	var p model.Production
	for t := 1; ; t++ {
		front, ok := w.Front(t)
		if !ok {
			return 0, w, false
		}
		s += model.Strength(p)
		for z := range front.All() {
			s += st.At(z).Strength
			p += env.Production.On(z)
		}
		if s > r {
			return t, w, true
		}
	}
}
