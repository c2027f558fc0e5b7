package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// Engine runs compiled rules against every owned cell each turn. For a
// cell, rules fire in priority order and the first rule whose condition
// holds for some direction decides the cell's action.
type Engine struct {
	mu    sync.RWMutex
	rules []*Rule

	lastDiagTurn int
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, lastDiagTurn: -diagEvery}, nil
}

// Rules returns the active rule set in evaluation order.
func (e *Engine) Rules() []*Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules
}

// Decide returns the actions the rules choose for the turn. Cells no rule
// claims stay put and are omitted.
func (e *Engine) Decide(env *model.Environment, st *model.State) []model.Action {
	rules := e.Rules()

	fired := make(map[string]int)
	var actions []model.Action
	for p := range env.Space.Points() {
		if st.At(p).Tag != env.MyTag {
			continue
		}
		a, rule, ok := decideCell(rules, env, st, p)
		if !ok {
			continue
		}
		fired[rule]++
		if a.Move {
			actions = append(actions, a)
		}
	}
	e.logDiagnostics(st.Turn, fired, len(actions))
	return actions
}

func decideCell(rules []*Rule, env *model.Environment, st *model.State, p space.Point) (model.Action, string, bool) {
	for _, r := range rules {
		for _, d := range space.Dirs {
			menv := newMoveEnv(env, st, p, d)
			result, err := vm.Run(r.program, menv)
			if err != nil {
				slog.Warn("rule condition error", "rule", r.Name, "at", menv.At, "error", err)
				break
			}
			if match, ok := result.(bool); ok && match {
				return r.Action(menv), r.Name, true
			}
		}
	}
	return model.Action{}, "", false
}

// Swap atomically replaces the rule set. Compiles first; if compilation
// fails the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()
	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

const diagEvery = 50

// logDiagnostics dumps rule activity every diagEvery turns so a quiet bot
// can be told apart from a stuck one.
func (e *Engine) logDiagnostics(turn int, fired map[string]int, moves int) {
	if turn-e.lastDiagTurn < diagEvery {
		return
	}
	e.lastDiagTurn = turn
	attrs := []any{"turn", turn, "moves", moves}
	for name, n := range fired {
		attrs = append(attrs, name, n)
	}
	slog.Debug("rule diagnostics", attrs...)
}

// compileRules works on copies so one configured rule set can back the
// engines of many sessions.
func compileRules(src []*Rule) ([]*Rule, error) {
	rules := make([]*Rule, len(src))
	for i, orig := range src {
		r := *orig
		rules[i] = &r
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(MoveEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w: %w", r.Name, ErrInvalidRule, err)
		}
		r.program = prog
		if err := resolveAction(&r); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
