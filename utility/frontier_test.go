package utility

import (
	"math"
	"testing"

	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

func TestCaptureTiming(t *testing.T) {
	// 5x5, two owned cells west of a neutral target on the middle row
	tags := fill[model.Tag](25, model.Neutral)
	str := fill[model.Strength](25, 0)
	tags[11], str[11] = 1, 10 // (1,2)
	tags[10], str[10] = 1, 10 // (0,2)
	str[12] = 15              // target (2,2)
	env, st := world(t, 1, 5, 5, fill[model.Production](25, 1), tags, str)
	body := st.Owned(env)
	target := env.Space.PointAt(space.Coord{X: 2, Y: 2})

	// front 1 brings 10; front 2 adds a turn of production and 10 more
	turns, w, ok := CaptureTiming(env, st, body, target)
	if !ok || turns != 2 {
		t.Fatalf("CaptureTiming = %d, %v; want 2, true", turns, ok)
	}
	if lv := w.Level(env.Space.Index(space.Coord{X: 2, Y: 1})); lv != space.Barrier {
		t.Errorf("non-owned cell level %d, want Barrier", lv)
	}

	st.Occupation.Set(12, model.Occupation{Strength: 100})
	if _, _, ok := CaptureTiming(env, st, body, target); ok {
		t.Error("the whole body cannot overcome 100")
	}
}

func TestRimValues(t *testing.T) {
	// one owned cell on a ring of five; the rim is its two neighbours
	env, st := world(t, 1, 5, 1,
		[]model.Production{0, 3, 5, 5, 3},
		[]model.Tag{1, 0, 0, 0, 0},
		[]model.Strength{50, 8, 8, 8, 8})
	body := st.Owned(env)
	p := Defaults()

	rim := RimValues(env, st, body, p, 20)
	if len(rim) != 2 {
		t.Fatalf("rim has %d cells, want 2", len(rim))
	}
	got := map[int]float64{}
	for _, r := range rim {
		got[r.At.Ix()] = r.Value
	}
	if got[1] <= 0 || math.Abs(got[1]-got[4]) > 1e-9 {
		t.Errorf("mirror rim cells differ: %v", got)
	}

	// From cell 1 the scan meets cells 1..4 at cumulative strength 8, 16,
	// 24, 32, i.e. 1, 1, 2, 2 turns at 16 per turn, each discounted by
	// 0.5^(dist/16) and paying 3, 5, 5, 3 for the remaining turns.
	want := math.Sqrt(0.5)*(1-math.Pow(0.5, 19))*3 +
		0.5*(1-math.Pow(0.5, 19))*5 +
		math.Pow(0.5, 1.5)*(1-math.Pow(0.5, 18))*5 +
		0.25*(1-math.Pow(0.5, 18))*3
	if math.Abs(got[1]-want) > 1e-9 || math.Abs(want-7.139068877538262) > 1e-12 {
		t.Errorf("rim value = %v, want %v", got[1], want)
	}

	for _, r := range RimValues(env, st, body, p, 0) {
		if r.Value != 0 {
			t.Errorf("no turns left but %v valued %v", r.At, r.Value)
		}
	}

	everything := space.MaskOf(env.Space, func(space.Point) bool { return true })
	if rim := RimValues(env, st, everything, p, 20); rim != nil {
		t.Errorf("a body covering the space has rim %v", rim)
	}
}
