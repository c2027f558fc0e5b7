package rules

import "math"

// Doctrine is the small set of knobs the reference policy is compiled from.
type Doctrine struct {
	Name string `yaml:"name"`
	// CaptureMargin is the strength a cell must hold above a foreign
	// target before it attacks.
	CaptureMargin int `yaml:"capture_margin"`
	// ReinforceRatio: a cell reinforces a friend once its strength exceeds
	// the friend's times this ratio.
	ReinforceRatio float64 `yaml:"reinforce_ratio"`
	// MinMovable is the strength below which a cell never reinforces.
	MinMovable int `yaml:"min_movable"`
	// Patience (0-1) holds cells still for their first turns so they grow
	// before moving; 0 disables the hold rule.
	Patience float64 `yaml:"patience"`
}

// DefaultDoctrine captures any weaker neighbour and reinforces any friend
// with less than half the strength.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:           "Simple",
		CaptureMargin:  0,
		ReinforceRatio: 2,
		MinMovable:     0,
	}
}

// Validate clamps all knobs to their valid ranges.
func (d *Doctrine) Validate() {
	d.CaptureMargin = clampInt(d.CaptureMargin, 0, 255)
	d.ReinforceRatio = clamp(d.ReinforceRatio, 1, 8)
	d.MinMovable = clampInt(d.MinMovable, 0, 255)
	d.Patience = clamp(d.Patience, 0, 1)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
