package space

import "fmt"

// Grid is a dense per-cell container over a space, indexed by canonical
// cell index. It backs production, occupation and the scratch utility fields.
type Grid[T any] struct {
	space *Space
	cells []T
}

// NewGrid allocates a zero-valued grid for s.
func NewGrid[T any](s *Space) *Grid[T] {
	return &Grid[T]{space: s, cells: make([]T, s.Len())}
}

// GridOf wraps cells, which must hold exactly one value per cell of s.
// The grid takes ownership of the slice.
func GridOf[T any](s *Space, cells []T) (*Grid[T], error) {
	if len(cells) != s.Len() {
		return nil, fmt.Errorf("grid for %s: got %d cells, want %d", s, len(cells), s.Len())
	}
	return &Grid[T]{space: s, cells: cells}, nil
}

func (g *Grid[T]) Space() *Space { return g.space }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.cells }

func (g *Grid[T]) At(ix int) T { return g.cells[ix] }

func (g *Grid[T]) Set(ix int, v T) { g.cells[ix] = v }

// On returns the value under p; p must belong to the grid's space.
func (g *Grid[T]) On(p Point) T {
	sameSpace(g.space, p.space)
	return g.cells[p.ix]
}

// Ref returns a pointer to the value under p for in-place updates.
func (g *Grid[T]) Ref(p Point) *T {
	sameSpace(g.space, p.space)
	return &g.cells[p.ix]
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Clone returns an independent copy.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return &Grid[T]{space: g.space, cells: cells}
}
