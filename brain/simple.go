package brain

import (
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/rules"
)

func init() {
	Register("simple", func(s Settings) (Brain, error) {
		rs := s.Rules
		if len(rs) == 0 {
			rs = rules.DefaultRules()
		}
		engine, err := rules.NewEngine(rs)
		if err != nil {
			return nil, err
		}
		return &simpleBrain{env: s.Env, engine: engine}, nil
	})
}

// simpleBrain plays a fixed rule policy; with the default rules it takes
// any weaker neighbour, else feeds a much weaker friend.
type simpleBrain struct {
	env    *model.Environment
	engine *rules.Engine
}

func (b *simpleBrain) Name() string { return "Simple" }

func (b *simpleBrain) Tick(st *model.State) []model.Action {
	return b.engine.Decide(b.env, st)
}
