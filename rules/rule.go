package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/anion/model"
)

// ActionFunc turns a matched rule into the cell's action.
type ActionFunc func(env MoveEnv) model.Action

// Rule is the atomic unit of the policy: a condition over one candidate
// move and the action taken when it holds. The engine tries rules by
// priority and, within a rule, directions in N, E, S, W order; the first
// match decides the cell.
type Rule struct {
	Name         string      `yaml:"name"`
	Priority     int         `yaml:"priority"`  // higher = evaluated first
	ConditionSrc string      `yaml:"condition"` // expr source
	ActionName   string      `yaml:"action"`    // key into Actions; empty means move
	program      *vm.Program // compiled bytecode
	Action       ActionFunc  `yaml:"-"`
}
