package utility

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/nstehr/anion/econ"
	"github.com/nstehr/anion/model"
)

var (
	// ErrUnknownParam is returned by Set for a key no parameter answers to.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrInvalidParam is returned when a parameter value is out of range.
	ErrInvalidParam = errors.New("invalid parameter")
)

// Params are the tunable weights of the utility model.
type Params struct {
	AggressionWeight       float64 `yaml:"aggression_weight" json:"aggression_weight"`
	DensityWeight          float64 `yaml:"density_weight" json:"density_weight"`
	DiscountFactor         float64 `yaml:"discount_factor" json:"discount_factor"`
	ExpansionWeight        float64 `yaml:"expansion_weight" json:"expansion_weight"`
	MinimumMovableStrength int     `yaml:"minimum_movable_strength" json:"minimum_movable_strength"`
	// DensityRadius bounds the disc the density field is averaged over.
	DensityRadius int `yaml:"density_radius" json:"density_radius"`
	// ProductionPerTurn converts strength-distance into turns for frontier
	// planning.
	ProductionPerTurn float64 `yaml:"production_per_turn" json:"production_per_turn"`
}

// Defaults returns the baseline tuning.
func Defaults() Params {
	return Params{
		AggressionWeight:       1,
		DensityWeight:          1,
		DiscountFactor:         0.5,
		ExpansionWeight:        1,
		MinimumMovableStrength: 20,
		DensityRadius:          3,
		ProductionPerTurn:      16,
	}
}

type setter struct {
	set      func(p *Params, v float64)
	integral bool
}

// setters maps the external parameter names to their fields.
var setters = map[string]setter{
	"aggression_weight":        {set: func(p *Params, v float64) { p.AggressionWeight = v }},
	"density_weight":           {set: func(p *Params, v float64) { p.DensityWeight = v }},
	"discount_factor":          {set: func(p *Params, v float64) { p.DiscountFactor = v }},
	"expansion_weight":         {set: func(p *Params, v float64) { p.ExpansionWeight = v }},
	"minimum_movable_strength": {set: func(p *Params, v float64) { p.MinimumMovableStrength = int(v) }, integral: true},
	"density_radius":           {set: func(p *Params, v float64) { p.DensityRadius = int(v) }, integral: true},
	"production_per_turn":      {set: func(p *Params, v float64) { p.ProductionPerTurn = v }},
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Keys lists the accepted parameter names in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a named parameter from its textual value.
func (p *Params) Set(key, value string) error {
	st, ok := setters[key]
	if !ok {
		return fmt.Errorf("%q: %w", key, ErrUnknownParam)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || !finite(v) || (st.integral && v != math.Trunc(v)) {
		return fmt.Errorf("%s=%q: %w", key, value, ErrInvalidParam)
	}
	st.set(p, v)
	return nil
}

// Validate rejects parameter sets the model cannot evaluate.
func (p Params) Validate() error {
	for _, w := range []struct {
		key string
		v   float64
	}{
		{"aggression_weight", p.AggressionWeight},
		{"density_weight", p.DensityWeight},
		{"expansion_weight", p.ExpansionWeight},
		{"production_per_turn", p.ProductionPerTurn},
	} {
		if !finite(w.v) {
			return fmt.Errorf("%s %v: %w", w.key, w.v, ErrInvalidParam)
		}
	}
	if err := econ.CheckFactor(p.DiscountFactor); err != nil {
		return fmt.Errorf("discount_factor: %w", err)
	}
	if p.MinimumMovableStrength < 0 || p.MinimumMovableStrength > int(model.MaxStrength) {
		return fmt.Errorf("minimum_movable_strength %d: %w", p.MinimumMovableStrength, ErrInvalidParam)
	}
	if p.DensityRadius < 0 {
		return fmt.Errorf("density_radius %d: %w", p.DensityRadius, ErrInvalidParam)
	}
	if p.ProductionPerTurn <= 0 {
		return fmt.Errorf("production_per_turn %v: %w", p.ProductionPerTurn, ErrInvalidParam)
	}
	return nil
}
