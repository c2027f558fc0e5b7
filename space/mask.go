package space

// Mask is a membership set over every cell of a space.
type Mask struct {
	Grid[bool]
}

// NewMask returns an empty mask.
func NewMask(s *Space) *Mask {
	return &Mask{Grid: *NewGrid[bool](s)}
}

// Singleton returns a mask containing only p.
func Singleton(p Point) *Mask {
	m := NewMask(p.space)
	m.cells[p.ix] = true
	return m
}

// MaskOf builds a mask from a predicate evaluated once per cell.
func MaskOf(s *Space, pred func(Point) bool) *Mask {
	m := NewMask(s)
	for ix := range m.cells {
		m.cells[ix] = pred(Point{space: s, ix: ix})
	}
	return m
}

func (m *Mask) Contains(ix int) bool { return m.cells[ix] }

func (m *Mask) Add(ix int) { m.cells[ix] = true }

// Count returns the number of member cells.
func (m *Mask) Count() int {
	n := 0
	for _, in := range m.cells {
		if in {
			n++
		}
	}
	return n
}

// Complement returns a new mask holding every cell m does not.
func (m *Mask) Complement() *Mask {
	out := NewMask(m.space)
	for ix, in := range m.cells {
		out.cells[ix] = !in
	}
	return out
}
