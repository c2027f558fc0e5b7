package rules

import (
	"errors"
	"slices"
	"testing"

	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// board builds a me=1 world where every cell not listed is neutral with
// strength 200.
func board(t *testing.T, w, h int, cells map[space.Coord]model.Occupation) (*model.Environment, *model.State) {
	t.Helper()
	env, err := model.NewEnvironment(1, w, h, make([]model.Production, w*h))
	if err != nil {
		t.Fatal(err)
	}
	tags := make([]model.Tag, w*h)
	str := make([]model.Strength, w*h)
	for i := range str {
		str[i] = 200
	}
	for c, o := range cells {
		ix := env.Space.Index(c)
		tags[ix], str[ix] = o.Tag, o.Strength
	}
	st := model.NewState(env)
	if err := st.Reset(tags, str); err != nil {
		t.Fatal(err)
	}
	return env, st
}

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		t.Fatalf("NewEngine(DefaultRules()) failed: %v", err)
	}
	rules := engine.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	for i := 1; i < len(rules); i++ {
		if rules[i].Priority > rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				rules[i].Name, rules[i].Priority, rules[i-1].Name, rules[i-1].Priority)
		}
	}
}

func TestDecideCaptureBeforeReinforce(t *testing.T) {
	env, st := board(t, 3, 3, map[space.Coord]model.Occupation{
		{X: 1, Y: 1}: {Tag: 1, Strength: 50},
		{X: 1, Y: 0}: {Tag: 1, Strength: 10}, // weak friend to the north
		{X: 2, Y: 1}: {Tag: 2, Strength: 60}, // stronger enemy to the east
		{X: 1, Y: 2}: {Tag: 0, Strength: 40}, // weaker neutral to the south
		{X: 0, Y: 1}: {Tag: 1, Strength: 30},
	})
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	got := engine.Decide(env, st)
	want := []model.Action{model.Go(space.Coord{X: 1, Y: 1}, space.South)}
	if !slices.Equal(got, want) {
		t.Errorf("Decide = %v, want %v", got, want)
	}
}

func TestDecideReinforce(t *testing.T) {
	env, st := board(t, 4, 4, map[space.Coord]model.Occupation{
		{X: 1, Y: 1}: {Tag: 1, Strength: 100},
		{X: 2, Y: 1}: {Tag: 1, Strength: 40},
	})
	engine, _ := NewEngine(DefaultRules())
	got := engine.Decide(env, st)
	want := []model.Action{model.Go(space.Coord{X: 1, Y: 1}, space.East)}
	if !slices.Equal(got, want) {
		t.Errorf("Decide = %v, want %v", got, want)
	}
}

func TestHoldRuleClaimsCell(t *testing.T) {
	d := DefaultDoctrine()
	d.Patience = 1
	rules := CompileDoctrine(d)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules with patience, got %d", len(rules))
	}
	engine, err := NewEngine(rules)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	env, st := board(t, 3, 3, map[space.Coord]model.Occupation{
		{X: 1, Y: 1}: {Tag: 1, Strength: 30},
		{X: 2, Y: 1}: {Tag: 0, Strength: 5},
	})
	st.Turn = 3
	if got := engine.Decide(env, st); len(got) != 0 {
		t.Errorf("young weak cell moved: %v", got)
	}
	st.Turn = 30
	want := []model.Action{model.Go(space.Coord{X: 1, Y: 1}, space.East)}
	if got := engine.Decide(env, st); !slices.Equal(got, want) {
		t.Errorf("Decide after the opening = %v, want %v", got, want)
	}
}

func TestSwapKeepsOldRulesOnError(t *testing.T) {
	engine, _ := NewEngine(DefaultRules())
	err := engine.Swap([]*Rule{{Name: "broken", ConditionSrc: `Strength >`}})
	if err == nil {
		t.Fatal("Swap accepted an invalid condition")
	}
	if len(engine.Rules()) != 2 {
		t.Errorf("rules replaced despite error: %d", len(engine.Rules()))
	}
	if err := engine.Swap([]*Rule{{Name: "always", ConditionSrc: `CanCapture()`}}); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if r := engine.Rules(); len(r) != 1 || r[0].Action == nil {
		t.Errorf("swapped rules = %+v", r)
	}
}

func TestCompileRejects(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"non-boolean condition", Rule{Name: "n", ConditionSrc: `Strength + 1`}},
		{"unknown field", Rule{Name: "u", ConditionSrc: `Gold > 3`}},
		{"unknown action", Rule{Name: "a", ConditionSrc: `true`, ActionName: "teleport"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.rule
			if _, err := NewEngine([]*Rule{&r}); !errors.Is(err, ErrInvalidRule) {
				t.Errorf("NewEngine error = %v, want ErrInvalidRule", err)
			}
		})
	}
}
