package space

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidDimension is returned when a space is requested with a
// non-positive width or height.
var ErrInvalidDimension = errors.New("invalid dimension")

// Space is the toroidal grid every position, map and search is defined on.
// Cells are addressed by a canonical row-major index; the grid has no edges.
// Two structures belong to the same space only if they share the same *Space.
type Space struct {
	w, h int
}

// New creates a width x height space.
func New(width, height int) (*Space, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("space %dx%d: %w", width, height, ErrInvalidDimension)
	}
	return &Space{w: width, h: height}, nil
}

// MustNew is New for fixed, known-good dimensions.
func MustNew(width, height int) *Space {
	s, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Space) Width() int  { return s.w }
func (s *Space) Height() int { return s.h }

// Len is the number of cells.
func (s *Space) Len() int { return s.w * s.h }

// Normalize wraps both coordinates into range.
func (s *Space) Normalize(c Coord) Coord {
	return Coord{X: modulo(c.X, s.w), Y: modulo(c.Y, s.h)}
}

// Index returns the canonical index of c after wrapping.
func (s *Space) Index(c Coord) int {
	return modulo(c.X, s.w) + modulo(c.Y, s.h)*s.w
}

// CoordOf is the inverse of Index.
func (s *Space) CoordOf(ix int) Coord {
	s.check(ix)
	y := ix / s.w
	return Coord{X: ix - y*s.w, Y: y}
}

// Adjacent returns the index of the neighbour of ix in direction d.
func (s *Space) Adjacent(ix int, d Dir) int {
	s.check(ix)
	n := s.Len()
	switch d {
	case North:
		if ix < s.w {
			return ix + n - s.w
		}
		return ix - s.w
	case East:
		if (ix+1)%s.w == 0 {
			return ix + 1 - s.w
		}
		return ix + 1
	case South:
		if adj := ix + s.w; adj < n {
			return adj
		}
		return ix + s.w - n
	case West:
		if ix%s.w == 0 {
			return ix + s.w - 1
		}
		return ix - 1
	}
	panic(fmt.Sprintf("space: invalid direction %d", d))
}

// L1Distance is the toroidal Manhattan distance between two cells.
func (s *Space) L1Distance(a, b int) int {
	ca, cb := s.CoordOf(a), s.CoordOf(b)
	return ringDist(ca.X, cb.X, s.w) + ringDist(ca.Y, cb.Y, s.h)
}

// ShortestDirection picks the first step from source towards target. The
// horizontal axis wins only when its shortest difference is strictly larger.
func (s *Space) ShortestDirection(source, target Coord) Dir {
	dx := shortestDiff(source.X, target.X, s.w)
	dy := shortestDiff(source.Y, target.Y, s.h)
	if abs(dx) > abs(dy) {
		if dx < 0 {
			return West
		}
		return East
	}
	if dy < 0 {
		return North
	}
	return South
}

// Point returns the handle for index ix.
func (s *Space) Point(ix int) Point {
	s.check(ix)
	return Point{space: s, ix: ix}
}

// PointAt returns the handle for c after wrapping.
func (s *Space) PointAt(c Coord) Point {
	return Point{space: s, ix: s.Index(c)}
}

// Points yields every cell in index order.
func (s *Space) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for ix := 0; ix < s.Len(); ix++ {
			if !yield(Point{space: s, ix: ix}) {
				return
			}
		}
	}
}

func (s *Space) String() string { return fmt.Sprintf("%dx%d", s.w, s.h) }

func (s *Space) check(ix int) {
	if ix < 0 || ix >= s.Len() {
		panic(fmt.Sprintf("space: index %d out of range for %s", ix, s))
	}
}

// sameSpace panics when two structures come from different spaces; mixing
// them is always a caller bug.
func sameSpace(a, b *Space) {
	if a != b {
		panic(fmt.Sprintf("space: mismatched spaces %s and %s", a, b))
	}
}

func modulo(n, m int) int {
	return ((n % m) + m) % m
}

func ringDist(a, b, m int) int {
	d := abs(a - b)
	if m-d < d {
		return m - d
	}
	return d
}

func shortestDiff(a, b, m int) int {
	d := modulo(b, m) - modulo(a, m)
	switch {
	case d < -m/2:
		return d + m
	case d > m/2:
		return d - m
	}
	return d
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
