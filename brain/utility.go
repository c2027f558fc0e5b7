package brain

import (
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/utility"
)

func init() {
	Register("utility", func(s Settings) (Brain, error) {
		m, err := utility.NewModel(s.Params, s.Env)
		if err != nil {
			return nil, err
		}
		return &utilityBrain{model: m}, nil
	})
}

// utilityBrain runs the tuned utility model.
type utilityBrain struct {
	model *utility.Model
}

func (b *utilityBrain) Name() string { return "Utility" }

func (b *utilityBrain) Tick(st *model.State) []model.Action {
	return moving(b.model.Turn(st))
}
