package ipc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

const haliteInit = "2\n3 2\n1 2 3 4 5 6\n"

func TestHaliteReadEnvironmentAndFrame(t *testing.T) {
	in := strings.NewReader(haliteInit + "2 0 3 2 1 1\n0 1 2 3 4 255\n")
	h := NewHalite(in, io.Discard)
	env, err := h.ReadEnvironment()
	if err != nil {
		t.Fatalf("ReadEnvironment: %v", err)
	}
	if env.MyTag != 2 || env.Space.Width() != 3 || env.Space.Height() != 2 {
		t.Fatalf("env = tag %d, %s", env.MyTag, env.Space)
	}
	if got := env.Production.At(4); got != 5 {
		t.Errorf("production[4] = %d, want 5", got)
	}

	st := model.NewState(env)
	if err := h.ReadFrame(st); err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	wantTags := []model.Tag{0, 0, 2, 2, 2, 1}
	for i, o := range st.Occupation.Cells() {
		if o.Tag != wantTags[i] || o.Strength != model.Strength([]int{0, 1, 2, 3, 4, 255}[i]) {
			t.Errorf("cell %d = %+v", i, o)
		}
	}
	if err := h.ReadFrame(st); !errors.Is(err, io.EOF) {
		t.Errorf("ReadFrame at end of input = %v, want EOF", err)
	}
}

func TestHaliteFrameErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		msg   string
	}{
		{"residual run", "7 1 0 0 0 0 0 0", "non-zero (1) residual run-length"},
		{"short runs", "4 1 0 0 0 0 0 0", "missing run-length"},
		{"missing tag", "6", "missing player tag"},
		{"bad run", "x 1", "bad run-length"},
		{"bad tag", "6 300", "bad player tag"},
		{"missing strength", "6 1 0 0 0", "missing strength level"},
		{"strength above cap", "6 1 0 0 0 0 0 256", "bad strength level"},
		{"trailing token", "6 1 0 0 0 0 0 0 9", "unconsumed input after frame"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHalite(strings.NewReader(haliteInit+tc.frame+"\n"), io.Discard)
			env, err := h.ReadEnvironment()
			if err != nil {
				t.Fatal(err)
			}
			err = h.ReadFrame(model.NewState(env))
			var pe *ParseError
			if !errors.As(err, &pe) || !errors.Is(err, ErrProtocol) {
				t.Fatalf("ReadFrame = %v, want ParseError", err)
			}
			if pe.Msg != tc.msg {
				t.Errorf("Msg = %q, want %q", pe.Msg, tc.msg)
			}
		})
	}
}

func TestHaliteEnvironmentErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"bad tag", "x\n3 2\n1 1 1 1 1 1\n", "bad player tag"},
		{"missing height", "1\n3\n1 1 1\n", "missing map height"},
		{"extra size token", "1\n3 2 1\n1 1 1 1 1 1\n", "unconsumed input after map size"},
		{"bad width", "1\nw 2\n1 1\n", "bad map width"},
		{"short production", "1\n3 2\n1 1 1\n", "production map size mismatches expected size"},
		{"bad production", "1\n1 1\n-3\n", "bad production level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewHalite(strings.NewReader(tc.in), io.Discard).ReadEnvironment()
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Msg != tc.msg {
				t.Errorf("ReadEnvironment = %v, want %q", err, tc.msg)
			}
		})
	}
	_, err := NewHalite(strings.NewReader("1\n0 2\n\n"), io.Discard).ReadEnvironment()
	if !errors.Is(err, space.ErrInvalidDimension) {
		t.Errorf("zero width = %v, want ErrInvalidDimension", err)
	}
}

func TestHaliteSend(t *testing.T) {
	var out bytes.Buffer
	h := NewHalite(strings.NewReader(""), &out)
	if err := h.SendReady("UA_Utility", 3); err != nil {
		t.Fatal(err)
	}
	actions := []model.Action{
		model.Go(space.Coord{X: 1, Y: 0}, space.North),
		model.Stay(space.Coord{X: 2, Y: 4}),
		model.Go(space.Coord{X: 0, Y: 3}, space.West),
	}
	if err := h.SendMoves(actions); err != nil {
		t.Fatal(err)
	}
	if err := h.SendMoves(nil); err != nil {
		t.Fatal(err)
	}
	want := "UA_Utility_3\n1 0 1 2 4 0 0 3 4\n\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
