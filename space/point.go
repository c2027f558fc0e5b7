package space

// Point is a cell handle: a space plus a canonical index. Coordinates are
// derived on demand.
type Point struct {
	space *Space
	ix    int
}

func (p Point) Space() *Space { return p.space }
func (p Point) Ix() int       { return p.ix }

func (p Point) Coord() Coord { return p.space.CoordOf(p.ix) }

// Adjacent returns the neighbouring cell in direction d.
func (p Point) Adjacent(d Dir) Point {
	return Point{space: p.space, ix: p.space.Adjacent(p.ix, d)}
}

// L1Distance is the toroidal Manhattan distance to q.
func (p Point) L1Distance(q Point) int {
	sameSpace(p.space, q.space)
	return p.space.L1Distance(p.ix, q.ix)
}

// Less orders points by index.
func (p Point) Less(q Point) bool {
	sameSpace(p.space, q.space)
	return p.ix < q.ix
}

func (p Point) String() string { return p.Coord().String() }
