package rules

import (
	"errors"
	"fmt"

	"github.com/nstehr/anion/model"
)

// ErrInvalidRule is returned for a rule that does not compile or names an
// unknown action.
var ErrInvalidRule = errors.New("invalid rule")

// ActionMove sends the cell's whole strength towards the candidate.
func ActionMove(env MoveEnv) model.Action {
	return model.Go(env.At, env.Dir)
}

// ActionHold keeps the cell where it is. A matching hold rule still claims
// the cell, so lower-priority rules cannot move it.
func ActionHold(env MoveEnv) model.Action {
	return model.Stay(env.At)
}

// Actions maps the action names usable from configuration.
var Actions = map[string]ActionFunc{
	"move": ActionMove,
	"hold": ActionHold,
}

// resolveAction fills r.Action from r.ActionName when it was loaded from data.
func resolveAction(r *Rule) error {
	if r.Action != nil {
		return nil
	}
	name := r.ActionName
	if name == "" {
		name = "move"
	}
	fn, ok := Actions[name]
	if !ok {
		return fmt.Errorf("rule %q: unknown action %q: %w", r.Name, r.ActionName, ErrInvalidRule)
	}
	r.Action = fn
	return nil
}
