package rules

import "fmt"

// CompileDoctrine generates a rule set from a doctrine's knobs. All
// conditions are built via fmt.Sprintf with interpolated values, so the
// compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	if d.Patience > 0 {
		// Weak cells hold still through the opening; window and threshold
		// scale with patience.
		rules = append(rules, &Rule{
			Name:         "hold-while-young",
			Priority:     1000,
			ConditionSrc: fmt.Sprintf(`Turn < %d && Strength < %d`, lerp(0, 20, d.Patience), lerp(0, 60, d.Patience)),
			ActionName:   "hold",
		})
	}

	rules = append(rules, &Rule{
		Name:         "capture-weaker",
		Priority:     900,
		ConditionSrc: fmt.Sprintf(`!TargetFriendly && TargetStrength + %d < Strength`, d.CaptureMargin),
		ActionName:   "move",
	})

	rules = append(rules, &Rule{
		Name:         "reinforce-weak-friend",
		Priority:     800,
		ConditionSrc: fmt.Sprintf(`TargetFriendly && Strength >= %d && %g * TargetStrength < Strength`, d.MinMovable, d.ReinforceRatio),
		ActionName:   "move",
	})

	return rules
}

// DefaultRules is the reference policy: take any weaker foreign neighbour,
// else feed a friend holding less than half the strength.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}
