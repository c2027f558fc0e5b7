package rules

import "testing"

func TestMoveEnvHelpers(t *testing.T) {
	tests := []struct {
		name     string
		env      MoveEnv
		capture  bool
		overflow int
	}{
		{"weaker neutral", MoveEnv{Strength: 10, TargetStrength: 9, TargetNeutral: true}, true, 0},
		{"equal enemy", MoveEnv{Strength: 10, TargetStrength: 10, TargetEnemy: true}, false, 0},
		{"friend", MoveEnv{Strength: 200, TargetStrength: 100, TargetFriendly: true}, false, 45},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.env.CanCapture(); got != tc.capture {
				t.Errorf("CanCapture() = %v, want %v", got, tc.capture)
			}
			if got := tc.env.Overflow(); got != tc.overflow {
				t.Errorf("Overflow() = %d, want %d", got, tc.overflow)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		min, max int
		t        float64
		want     int
	}{
		{0, 20, 0.0, 0},
		{0, 20, 1.0, 20},
		{0, 60, 0.5, 30},
		{5, 20, 0.7, 16}, // 5 + round(10.5)
	}
	for _, tc := range tests {
		if got := lerp(tc.min, tc.max, tc.t); got != tc.want {
			t.Errorf("lerp(%d, %d, %.1f) = %d, want %d", tc.min, tc.max, tc.t, got, tc.want)
		}
	}
}

func TestDoctrineValidate(t *testing.T) {
	d := Doctrine{CaptureMargin: -4, ReinforceRatio: 0.2, MinMovable: 900, Patience: 3}
	d.Validate()
	if d.CaptureMargin != 0 || d.ReinforceRatio != 1 || d.MinMovable != 255 || d.Patience != 1 {
		t.Errorf("Validate() = %+v", d)
	}
	if DefaultDoctrine().Name != "Simple" {
		t.Errorf("DefaultDoctrine().Name = %q", DefaultDoctrine().Name)
	}
}
