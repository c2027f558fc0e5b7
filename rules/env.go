package rules

import (
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// MoveEnv describes one owned cell and one of its four neighbours. Its
// fields and methods are what rule conditions can reference.
type MoveEnv struct {
	At               space.Coord
	Dir              space.Dir
	Turn             int
	Strength         int
	Production       int
	TargetStrength   int
	TargetProduction int
	TargetFriendly   bool
	TargetNeutral    bool
	TargetEnemy      bool
}

func newMoveEnv(env *model.Environment, st *model.State, p space.Point, d space.Dir) MoveEnv {
	src := st.At(p)
	q := p.Adjacent(d)
	dst := st.At(q)
	return MoveEnv{
		At:               p.Coord(),
		Dir:              d,
		Turn:             st.Turn,
		Strength:         int(src.Strength),
		Production:       int(env.Production.On(p)),
		TargetStrength:   int(dst.Strength),
		TargetProduction: int(env.Production.On(q)),
		TargetFriendly:   dst.Tag == env.MyTag,
		TargetNeutral:    dst.Tag != env.MyTag && dst.Tag == model.Neutral,
		TargetEnemy:      dst.Tag != env.MyTag && dst.Tag != model.Neutral,
	}
}

// Direction is the candidate direction as "north", "east", "south" or "west".
func (e MoveEnv) Direction() string { return e.Dir.String() }

// CanCapture reports whether the move takes a foreign cell this turn.
func (e MoveEnv) CanCapture() bool {
	return !e.TargetFriendly && e.TargetStrength < e.Strength
}

// Merged is the strength the target would hold after a friendly move,
// before the cap.
func (e MoveEnv) Merged() int { return e.Strength + e.TargetStrength }

// Overflow is the strength a friendly move would waste to the cap.
func (e MoveEnv) Overflow() int {
	return max(0, e.Merged()-int(model.MaxStrength))
}

func (e MoveEnv) MaxStrength() int { return int(model.MaxStrength) }
