package space

import "iter"

// Barrier is the level given to sink cells; the wave never expands past them.
const Barrier uint8 = 255

// Wave is a multi-source breadth-first flood fill split into fronts of equal
// distance. Its buffers are sized once for the space and reused by every
// Ripple, so a single Wave can serve many propagations in one turn.
type Wave struct {
	space *Space
	// level per cell: 0 unreached, 1 seed, k+1 discovered at step k, Barrier
	level []uint8
	// discovered cell indices, grouped by front
	ixs []int
	// stops[k] is the end offset of front k in ixs
	stops []int
}

// NewWave allocates an empty wave for s.
func NewWave(s *Space) *Wave {
	return &Wave{
		space: s,
		level: make([]uint8, s.Len()),
		ixs:   make([]int, s.Len()),
		stops: make([]int, 0, s.w+s.h),
	}
}

// WaveFrom ripples a fresh wave out of source.
func WaveFrom(source *Mask) *Wave {
	w := NewWave(source.space)
	w.Ripple(source, nil)
	return w
}

// WaveBetween ripples a fresh wave out of source, blocked by sink.
func WaveBetween(source, sink *Mask) *Wave {
	w := NewWave(source.space)
	w.Ripple(source, sink)
	return w
}

func (w *Wave) Space() *Space { return w.space }

// Ripple recomputes the wave from the source cells. Sink cells that are not
// also sources become barriers. A nil sink means no barriers.
func (w *Wave) Ripple(source, sink *Mask) {
	sameSpace(w.space, source.space)
	if sink != nil {
		sameSpace(w.space, sink.space)
	}
	w.stops = w.stops[:0]
	s := 0
	for ix := range w.level {
		switch {
		case source.cells[ix]:
			w.level[ix] = 1
			w.ixs[s] = ix
			s++
		case sink != nil && sink.cells[ix]:
			w.level[ix] = Barrier
		default:
			w.level[ix] = 0
		}
	}
	w.stops = append(w.stops, s)

	start := 0
	for t := 2; ; t++ {
		end := s
		for i := start; i < end; i++ {
			ix := w.ixs[i]
			for _, d := range Dirs {
				adj := w.space.Adjacent(ix, d)
				if w.level[adj] == 0 {
					// levels saturate just below Barrier on huge spaces
					w.level[adj] = uint8(min(t, int(Barrier)-1))
					w.ixs[s] = adj
					s++
				}
			}
		}
		if s == end {
			return
		}
		w.stops = append(w.stops, s)
		start = end
	}
}

// Level returns the per-cell level: 0 unreached, 1 for seeds, k+1 for cells
// of front k, Barrier for sink cells.
func (w *Wave) Level(ix int) uint8 { return w.level[ix] }

// Fronts is the number of computed fronts including the seed front.
func (w *Wave) Fronts() int { return len(w.stops) }

// Front returns the cells discovered by expansion step k; front 0 is the seed
// set. It reports false when the wave stopped before step k.
func (w *Wave) Front(k int) (Front, bool) {
	if k < 0 || k >= len(w.stops) {
		return Front{}, false
	}
	start := 0
	if k > 0 {
		start = w.stops[k-1]
	}
	return Front{wave: w, start: start, stop: w.stops[k]}, true
}

// Front is a restartable view over one wave front. It stays valid until the
// wave is rippled again.
type Front struct {
	wave        *Wave
	start, stop int
}

func (f Front) Len() int { return f.stop - f.start }

// At returns the i-th cell of the front in discovery order.
func (f Front) At(i int) Point {
	return Point{space: f.wave.space, ix: f.wave.ixs[f.start+i]}
}

// All yields the cells of the front in discovery order.
func (f Front) All() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := f.start; i < f.stop; i++ {
			if !yield(Point{space: f.wave.space, ix: f.wave.ixs[i]}) {
				return
			}
		}
	}
}
