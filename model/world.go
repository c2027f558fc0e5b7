// Package model holds the game-world data a brain reasons over: the fixed
// environment of one game and the mutable per-turn state.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/nstehr/anion/space"
)

// Tag identifies a player. Neutral cells carry tag 0.
type Tag uint8

const Neutral Tag = 0

type (
	Strength   int
	Production int
)

// MaxStrength is the cap a cell's strength saturates at.
const MaxStrength Strength = 255

// ErrSize is returned when a per-cell slice does not cover the space.
var ErrSize = errors.New("size mismatch")

// Occupation is the owner and strength of one cell.
type Occupation struct {
	Tag      Tag      `json:"tag"`
	Strength Strength `json:"strength"`
}

// Environment is fixed for the whole game.
type Environment struct {
	MyTag      Tag
	Space      *space.Space
	Production *space.Grid[Production]
	TotalTurns int
}

// NewEnvironment validates the dimensions and production slice.
func NewEnvironment(tag Tag, width, height int, production []Production) (*Environment, error) {
	s, err := space.New(width, height)
	if err != nil {
		return nil, err
	}
	prod, err := space.GridOf(s, production)
	if err != nil {
		return nil, fmt.Errorf("production: %w", err)
	}
	return &Environment{
		MyTag:      tag,
		Space:      s,
		Production: prod,
		TotalTurns: int(10 * math.Sqrt(float64(width*height))),
	}, nil
}

// TurnsLeft is the number of turns after turn, never negative.
func (e *Environment) TurnsLeft(turn int) int {
	return max(0, e.TotalTurns-turn)
}

// State is the board as seen at the start of a turn.
type State struct {
	Turn       int
	Occupation *space.Grid[Occupation]
}

// NewState returns an all-neutral state for env.
func NewState(env *Environment) *State {
	return &State{Occupation: space.NewGrid[Occupation](env.Space)}
}

// Reset overwrites the occupation wholesale from a decoded frame.
func (st *State) Reset(tags []Tag, strengths []Strength) error {
	cells := st.Occupation.Cells()
	if len(tags) != len(cells) || len(strengths) != len(cells) {
		return fmt.Errorf("frame of %d tags, %d strengths for %d cells: %w",
			len(tags), len(strengths), len(cells), ErrSize)
	}
	for i := range cells {
		cells[i] = Occupation{Tag: tags[i], Strength: strengths[i]}
	}
	return nil
}

// At returns the occupation of p.
func (st *State) At(p space.Point) Occupation { return st.Occupation.On(p) }

// Owned returns the mask of cells carrying env's tag.
func (st *State) Owned(env *Environment) *space.Mask {
	return space.MaskOf(env.Space, func(p space.Point) bool {
		return st.Occupation.On(p).Tag == env.MyTag
	})
}

// Count returns the cells owned by tag and their summed strength.
func (st *State) Count(tag Tag) (cells int, strength Strength) {
	for _, o := range st.Occupation.Cells() {
		if o.Tag == tag {
			cells++
			strength += o.Strength
		}
	}
	return cells, strength
}
