// Package econ holds the discounted-series arithmetic the utility model is
// built on. A factor g in [0,1) weights the value of one turn later.
package econ

import (
	"errors"
	"fmt"
	"math"
)

// ErrFactorRange is returned when a discount factor lies outside [0,1).
var ErrFactorRange = errors.New("discount factor out of range")

// CheckFactor reports whether g is a usable discount factor.
func CheckFactor(g float64) error {
	if math.IsNaN(g) || g < 0 || g >= 1 {
		return fmt.Errorf("factor %v: %w", g, ErrFactorRange)
	}
	return nil
}

// Perpetuity is the present value of one unit per turn forever, starting
// next turn. It panics for g outside [0,1).
func Perpetuity(g float64) float64 {
	if err := CheckFactor(g); err != nil {
		panic("econ: perpetuity: " + err.Error())
	}
	return g / (1 - g)
}

// Discount is g^n. Discount(g, 0) is 1.
func Discount(g float64, n int) float64 {
	return math.Pow(g, float64(n))
}

// Annuity is the present value of one unit per turn for n turns, starting
// next turn. Non-positive n yields 0.
func Annuity(g float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return Perpetuity(g) * (1 - Discount(g, n))
}

// DiscountOf converts an interest rate into a discount factor.
func DiscountOf(r float64) float64 {
	if r == -1 {
		panic("econ: discount of rate -1")
	}
	return 1 / (1 + r)
}

// Decay is the continuous discount g^d used for spatial falloff.
func Decay(g, d float64) float64 {
	switch g {
	case 0:
		if d == 0 {
			return 1
		}
		return 0
	case 1:
		return 1
	}
	return math.Exp(math.Log(g) * d)
}
