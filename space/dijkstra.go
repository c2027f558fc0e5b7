package space

import (
	"container/heap"
	"iter"
)

// CostFunc prices entering a cell. Returning false marks the cell
// impassable: it is never visited nor yielded.
type CostFunc func(Point) (int, bool)

// Scan is a uniform-cost (Dijkstra) enumeration of the cells reachable from
// an origin, in non-decreasing cumulative cost. It is consumed by Next and
// cannot be restarted.
type Scan struct {
	space   *Space
	cost    CostFunc
	visited []bool
	queue   scanQueue
}

// NewScan starts a scan at origin. The origin is included iff cost defines it,
// and its own cost counts towards every cumulative cost.
func NewScan(origin Point, cost CostFunc) *Scan {
	n := origin.space.Len()
	sc := &Scan{
		space:   origin.space,
		cost:    cost,
		visited: make([]bool, n),
		// each visited cell adds at most three new branches while consuming
		// one, so 2n bounds the queue
		queue: make(scanQueue, 0, 2*n),
	}
	if c, ok := cost(origin); ok {
		heap.Push(&sc.queue, scanItem{cost: c, ix: origin.ix})
	}
	return sc
}

// DijkstraScan starts a uniform-cost scan at p.
func (p Point) DijkstraScan(cost CostFunc) *Scan {
	return NewScan(p, cost)
}

// Next returns the next cheapest unvisited cell and its cumulative cost.
// It reports false once the reachable region is exhausted.
func (sc *Scan) Next() (int, Point, bool) {
	for sc.queue.Len() > 0 {
		it := heap.Pop(&sc.queue).(scanItem)
		if sc.visited[it.ix] {
			continue
		}
		sc.visited[it.ix] = true
		for _, d := range Dirs {
			adj := sc.space.Adjacent(it.ix, d)
			if sc.visited[adj] {
				continue
			}
			if step, ok := sc.cost(Point{space: sc.space, ix: adj}); ok {
				heap.Push(&sc.queue, scanItem{cost: it.cost + step, ix: adj})
			}
		}
		return it.cost, Point{space: sc.space, ix: it.ix}, true
	}
	return 0, Point{}, false
}

// All drains the scan as (cost, cell) pairs.
func (sc *Scan) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for {
			c, p, ok := sc.Next()
			if !ok || !yield(c, p) {
				return
			}
		}
	}
}

type scanItem struct {
	cost int
	ix   int
}

// scanQueue implements container/heap. Cheaper entries come first; among
// equal costs the higher index wins.
type scanQueue []scanItem

func (q scanQueue) Len() int { return len(q) }

func (q scanQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].ix > q[j].ix
}

func (q scanQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *scanQueue) Push(x any) { *q = append(*q, x.(scanItem)) }

func (q *scanQueue) Pop() any {
	old := *q
	last := len(old) - 1
	it := old[last]
	*q = old[:last]
	return it
}
