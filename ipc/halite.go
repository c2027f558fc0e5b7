package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nstehr/anion/model"
)

// ErrProtocol marks malformed input from the game server.
var ErrProtocol = errors.New("protocol error")

// ParseError describes a malformed message and the input it was found in.
type ParseError struct {
	Msg   string
	Input string
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: %q", e.Msg, e.Input) }

func (e *ParseError) Unwrap() error { return ErrProtocol }

func itoa(n int) string { return strconv.Itoa(n) }

// Halite speaks the line-oriented game protocol: the server sends the
// environment and one frame per turn, the bot answers with a ready line and
// one line of moves per turn.
type Halite struct {
	r    *bufio.Reader
	w    *bufio.Writer
	line string
}

func NewHalite(r io.Reader, w io.Writer) *Halite {
	return &Halite{r: bufio.NewReader(r), w: bufio.NewWriter(w)}
}

func (h *Halite) readLine() error {
	line, err := h.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return err
	}
	h.line = strings.TrimRight(line, "\r\n")
	return nil
}

func (h *Halite) parseErr(msg string) error {
	return &ParseError{Msg: msg, Input: h.line}
}

// ReadEnvironment reads the player tag, the map size and the production map.
func (h *Halite) ReadEnvironment() (*model.Environment, error) {
	if err := h.readLine(); err != nil {
		return nil, fmt.Errorf("read tag: %w", err)
	}
	tag, err := strconv.ParseUint(strings.TrimSpace(h.line), 10, 8)
	if err != nil {
		return nil, h.parseErr("bad player tag")
	}

	if err := h.readLine(); err != nil {
		return nil, fmt.Errorf("read map size: %w", err)
	}
	dims := strings.Fields(h.line)
	switch {
	case len(dims) < 1:
		return nil, h.parseErr("missing map width")
	case len(dims) < 2:
		return nil, h.parseErr("missing map height")
	case len(dims) > 2:
		return nil, h.parseErr("unconsumed input after map size")
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, h.parseErr("bad map width")
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, h.parseErr("bad map height")
	}

	if err := h.readLine(); err != nil {
		return nil, fmt.Errorf("read production: %w", err)
	}
	fields := strings.Fields(h.line)
	prod := make([]model.Production, len(fields))
	for i, f := range fields {
		p, err := strconv.Atoi(f)
		if err != nil || p < 0 {
			return nil, h.parseErr("bad production level")
		}
		prod[i] = model.Production(p)
	}
	if width > 0 && height > 0 && len(prod) != width*height {
		return nil, h.parseErr("production map size mismatches expected size")
	}
	return model.NewEnvironment(model.Tag(tag), width, height, prod)
}

// ReadFrame reads one run-length encoded owner map followed by one strength
// per cell, overwriting st. The turn counter is left to the caller.
func (h *Halite) ReadFrame(st *model.State) error {
	if err := h.readLine(); err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	parts := strings.Fields(h.line)
	next := func() (string, bool) {
		if len(parts) == 0 {
			return "", false
		}
		p := parts[0]
		parts = parts[1:]
		return p, true
	}

	n := st.Occupation.Space().Len()
	tags := make([]model.Tag, n)
	strengths := make([]model.Strength, n)

	run, tag := uint64(0), uint64(0)
	for i := range tags {
		for run == 0 {
			f, ok := next()
			if !ok {
				return h.parseErr("missing run-length")
			}
			var err error
			if run, err = strconv.ParseUint(f, 10, 16); err != nil {
				return h.parseErr("bad run-length")
			}
			if f, ok = next(); !ok {
				return h.parseErr("missing player tag")
			}
			if tag, err = strconv.ParseUint(f, 10, 8); err != nil {
				return h.parseErr("bad player tag")
			}
		}
		tags[i] = model.Tag(tag)
		run--
	}
	if run != 0 {
		return h.parseErr(fmt.Sprintf("non-zero (%d) residual run-length", run))
	}

	for i := range strengths {
		f, ok := next()
		if !ok {
			return h.parseErr("missing strength level")
		}
		s, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return h.parseErr("bad strength level")
		}
		strengths[i] = model.Strength(s)
	}
	if len(parts) != 0 {
		return h.parseErr("unconsumed input after frame")
	}
	return st.Reset(tags, strengths)
}

// SendReady announces the bot as name_tag.
func (h *Halite) SendReady(name string, tag model.Tag) error {
	fmt.Fprintf(h.w, "%s_%d\n", name, tag)
	return h.w.Flush()
}

// SendMoves writes the actions as "x y code" triples on one line. An empty
// slice still produces the line terminator.
func (h *Halite) SendMoves(actions []model.Action) error {
	for i, a := range actions {
		if i > 0 {
			h.w.WriteByte(' ')
		}
		fmt.Fprintf(h.w, "%d %d %d", a.At.X, a.At.Y, a.Code())
	}
	h.w.WriteByte('\n')
	return h.w.Flush()
}
