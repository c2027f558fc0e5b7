package model

import (
	"fmt"

	"github.com/nstehr/anion/space"
)

// Action is the decision for one owned cell: stay, or move one step.
type Action struct {
	At   space.Coord `json:"at"`
	Dir  space.Dir   `json:"dir"`
	Move bool        `json:"move"`
}

func Stay(at space.Coord) Action { return Action{At: at} }

func Go(at space.Coord, d space.Dir) Action { return Action{At: at, Dir: d, Move: true} }

// Code is the wire code: 0 for stay, 1..4 for N, E, S, W.
func (a Action) Code() int {
	if !a.Move {
		return 0
	}
	return a.Dir.Code()
}

func (a Action) String() string {
	if !a.Move {
		return fmt.Sprintf("%s stay", a.At)
	}
	return fmt.Sprintf("%s %s", a.At, a.Dir)
}
