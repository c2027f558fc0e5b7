// Package agent runs one brain for one game and connects it to a transport.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nstehr/anion/brain"
	"github.com/nstehr/anion/ipc"
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/rules"
	"github.com/nstehr/anion/utility"
)

// ErrNotStarted is returned when a frame arrives before the environment.
var ErrNotStarted = errors.New("agent not started")

// Options select and configure the brain of a session.
type Options struct {
	Brain  string
	Params utility.Params
	Rules  []*rules.Rule
	Seed   int64
}

// Agent owns the decision-making for a single player session.
type Agent struct {
	opts  Options
	log   *slog.Logger
	env   *model.Environment
	state *model.State
	brain brain.Brain
	prev  *snapshot
	last  []Event
}

func New(opts Options, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{opts: opts, log: logger}
}

// Start builds the board and the brain for a new game.
func (a *Agent) Start(env *model.Environment) error {
	b, err := brain.New(a.opts.Brain, brain.Settings{
		Env:    env,
		Params: a.opts.Params,
		Rules:  a.opts.Rules,
		Seed:   a.opts.Seed,
	})
	if err != nil {
		return fmt.Errorf("start %s brain: %w", a.opts.Brain, err)
	}
	a.env, a.state, a.brain, a.prev, a.last = env, model.NewState(env), b, nil, nil
	a.log.Info("game started",
		"brain", b.Name(),
		"tag", env.MyTag,
		"size", env.Space.String(),
		"turns", env.TotalTurns,
	)
	return nil
}

// State is the board the next Step decides on. Transports overwrite it
// with each frame.
func (a *Agent) State() *model.State { return a.state }

// ReadyName is the name announced to the game server.
func (a *Agent) ReadyName() string { return brain.ReadyName(a.brain) }

// Events returns the events detected by the last Step.
func (a *Agent) Events() []Event { return a.last }

// Step decides the actions for the current state.
func (a *Agent) Step() ([]model.Action, error) {
	if a.brain == nil {
		return nil, ErrNotStarted
	}
	start := time.Now()
	actions := a.brain.Tick(a.state)
	elapsed := time.Since(start)

	snap, events := detectEvents(a.env, a.state, a.prev)
	a.prev, a.last = &snap, events
	if len(events) > 0 {
		a.log.Info("turn events", "turn", a.state.Turn, "events", formatEvents(events))
	}
	a.log.Debug("turn decided",
		"turn", a.state.Turn,
		"cells", snap.cells,
		"strength", snap.strength,
		"actions", len(actions),
		"elapsed", elapsed,
	)
	return actions, nil
}

// RunHalite plays one game over the line protocol. It returns nil when the
// server closes the stream after the game.
func RunHalite(ctx context.Context, h *ipc.Halite, a *Agent) error {
	env, err := h.ReadEnvironment()
	if err != nil {
		return err
	}
	if err := a.Start(env); err != nil {
		return err
	}
	// the server sends the opening board before waiting for the ready line
	if err := h.ReadFrame(a.state); err != nil {
		return err
	}
	if err := h.SendReady(a.ReadyName(), env.MyTag); err != nil {
		return fmt.Errorf("send ready: %w", err)
	}

	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.ReadFrame(a.state); err != nil {
			if errors.Is(err, io.EOF) {
				a.log.Info("game over", "turns", turn-1)
				return nil
			}
			return err
		}
		a.state.Turn = turn
		actions, err := a.Step()
		if err != nil {
			return err
		}
		if err := h.SendMoves(actions); err != nil {
			return fmt.Errorf("send moves: %w", err)
		}
	}
}

// HandleInit starts the game and replies with the ready name.
func (a *Agent) HandleInit() ipc.Handler {
	return func(env ipc.Envelope) (*ipc.Envelope, error) {
		var msg ipc.InitMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, fmt.Errorf("unmarshal init: %w", err)
		}
		genv, err := msg.Environment()
		if err != nil {
			return nil, err
		}
		if err := a.Start(genv); err != nil {
			return nil, err
		}
		ready, err := ipc.NewEnvelope(ipc.TypeReady, ipc.ReadyMessage{
			Name: fmt.Sprintf("%s_%d", a.ReadyName(), genv.MyTag),
		})
		if err != nil {
			return nil, err
		}
		return &ready, nil
	}
}

// HandleFrame applies a frame and replies with the turn's moves.
func (a *Agent) HandleFrame() ipc.Handler {
	return func(env ipc.Envelope) (*ipc.Envelope, error) {
		if a.state == nil {
			return nil, ErrNotStarted
		}
		var msg ipc.FrameMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, fmt.Errorf("unmarshal frame: %w", err)
		}
		if err := msg.Apply(a.state); err != nil {
			return nil, err
		}
		actions, err := a.Step()
		if err != nil {
			return nil, err
		}
		moves, err := ipc.NewEnvelope(ipc.TypeMoves, ipc.MovesOf(msg.Turn, actions))
		if err != nil {
			return nil, err
		}
		return &moves, nil
	}
}

// HandleEnd logs the final standing and acknowledges the end of the game.
func (a *Agent) HandleEnd() ipc.Handler {
	return func(ipc.Envelope) (*ipc.Envelope, error) {
		if a.state != nil {
			cells, strength := a.state.Count(a.env.MyTag)
			a.log.Info("game over", "turn", a.state.Turn, "cells", cells, "strength", strength)
		}
		ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
		if err != nil {
			return nil, err
		}
		return &ack, nil
	}
}
