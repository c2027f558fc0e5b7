package ipc

import (
	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// Envelope types of the framed transports.
const (
	TypeInit  = "init"
	TypeFrame = "frame"
	TypeReady = "ready"
	TypeMoves = "moves"
	TypeAck   = "ack"
	TypeEnd   = "end"
)

// InitMessage opens a game: the player's tag, the map size and the
// row-major production of every cell.
type InitMessage struct {
	Tag        int   `json:"tag"`
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	Production []int `json:"production"`
}

// Environment validates the message into a game environment.
func (m InitMessage) Environment() (*model.Environment, error) {
	if m.Tag < 0 || m.Tag > 255 {
		return nil, &ParseError{Msg: "bad player tag", Input: itoa(m.Tag)}
	}
	prod := make([]model.Production, len(m.Production))
	for i, p := range m.Production {
		prod[i] = model.Production(p)
	}
	return model.NewEnvironment(model.Tag(m.Tag), m.Width, m.Height, prod)
}

// FrameMessage is the board at the start of a turn, row-major.
type FrameMessage struct {
	Turn      int   `json:"turn"`
	Owners    []int `json:"owners"`
	Strengths []int `json:"strengths"`
}

// Apply overwrites st with the frame.
func (m FrameMessage) Apply(st *model.State) error {
	tags := make([]model.Tag, len(m.Owners))
	for i, o := range m.Owners {
		if o < 0 || o > 255 {
			return &ParseError{Msg: "bad player tag", Input: itoa(o)}
		}
		tags[i] = model.Tag(o)
	}
	strengths := make([]model.Strength, len(m.Strengths))
	for i, s := range m.Strengths {
		if s < 0 || s > int(model.MaxStrength) {
			return &ParseError{Msg: "bad strength level", Input: itoa(s)}
		}
		strengths[i] = model.Strength(s)
	}
	if err := st.Reset(tags, strengths); err != nil {
		return err
	}
	st.Turn = m.Turn
	return nil
}

type ReadyMessage struct {
	Name string `json:"name"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// Move is one action on the wire; Dir is the action code (0 stay, 1..4 N, E, S, W).
type Move struct {
	X   int `json:"x"`
	Y   int `json:"y"`
	Dir int `json:"dir"`
}

type MovesMessage struct {
	Turn  int    `json:"turn"`
	Moves []Move `json:"moves"`
}

// MovesOf encodes actions for the wire.
func MovesOf(turn int, actions []model.Action) MovesMessage {
	moves := make([]Move, len(actions))
	for i, a := range actions {
		moves[i] = Move{X: a.At.X, Y: a.At.Y, Dir: a.Code()}
	}
	return MovesMessage{Turn: turn, Moves: moves}
}

// Actions decodes the moves back into actions.
func (m MovesMessage) Actions() ([]model.Action, error) {
	out := make([]model.Action, len(m.Moves))
	for i, mv := range m.Moves {
		at := space.Coord{X: mv.X, Y: mv.Y}
		if mv.Dir == 0 {
			out[i] = model.Stay(at)
			continue
		}
		d, ok := space.DirFromCode(mv.Dir)
		if !ok {
			return nil, &ParseError{Msg: "bad action code", Input: itoa(mv.Dir)}
		}
		out[i] = model.Go(at, d)
	}
	return out, nil
}
