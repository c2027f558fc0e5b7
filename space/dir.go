package space

import "fmt"

// Dir is one of the four cardinal directions. There is no "still" value: a
// cell that stays put has no direction.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// Dirs is the fixed expansion order used by every search and wave. Tie
// breaks downstream depend on it.
var Dirs = [4]Dir{North, East, South, West}

func (d Dir) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// Opposite returns the direction pointing back.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Code is the wire code of the direction (1..4); 0 is reserved for staying.
func (d Dir) Code() int { return int(d) + 1 }

// DirFromCode decodes a wire code. Code 0 (stay) and unknown codes report false.
func DirFromCode(code int) (Dir, bool) {
	if code < 1 || code > 4 {
		return 0, false
	}
	return Dir(code - 1), true
}
