// Package brain defines the decision-making strategies a session can run
// and the registry they are looked up in by name.
package brain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/rules"
	"github.com/nstehr/anion/utility"
)

// ErrUnknownBrain is returned by Lookup for an unregistered name.
var ErrUnknownBrain = errors.New("unknown brain")

// Brain decides the actions of one player for a whole game.
type Brain interface {
	Name() string
	Tick(st *model.State) []model.Action
}

// Settings carry everything a factory may need to build a brain.
type Settings struct {
	Env    *model.Environment
	Params utility.Params
	// Rules replace the reference policy of the rules brain when non-empty.
	Rules []*rules.Rule
	// Seed feeds brains that draw random numbers.
	Seed int64
}

// Factory constructs a brain for one game.
type Factory func(s Settings) (Brain, error)

var brains = map[string]Factory{}

// Register adds a brain factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	brains[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := brains[name]
	if !ok {
		return nil, fmt.Errorf("%q (have %v): %w", name, Names(), ErrUnknownBrain)
	}
	return f, nil
}

// Names lists the registered brains in sorted order.
func Names() []string {
	names := make([]string, 0, len(brains))
	for n := range brains {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New looks up and builds the named brain.
func New(name string, s Settings) (Brain, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(s)
}

// ReadyName is the bot name announced at the end of the handshake.
func ReadyName(b Brain) string { return "UA_" + b.Name() }

// moving drops stays; the wire protocol only carries moves.
func moving(actions []model.Action) []model.Action {
	out := actions[:0]
	for _, a := range actions {
		if a.Move {
			out = append(out, a)
		}
	}
	return out
}
