package space

import "fmt"

// Coord is a raw grid coordinate. It may be out of range; Space.Normalize
// wraps it.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Neighbor returns the unwrapped coordinate one step in direction d.
func (c Coord) Neighbor(d Dir) Coord {
	switch d {
	case North:
		return Coord{X: c.X, Y: c.Y - 1}
	case East:
		return Coord{X: c.X + 1, Y: c.Y}
	case South:
		return Coord{X: c.X, Y: c.Y + 1}
	default:
		return Coord{X: c.X - 1, Y: c.Y}
	}
}

// Neighbors returns the four unwrapped neighbours in Dirs order.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for i, d := range Dirs {
		out[i] = c.Neighbor(d)
	}
	return out
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }
