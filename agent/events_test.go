package agent

import (
	"strings"
	"testing"

	"github.com/nstehr/anion/model"
)

// board builds a 4x4 game for tag 1 with 100 total turns from a row-major
// owner map; every cell has strength 10.
func board(t *testing.T, turn int, owners []model.Tag) (*model.Environment, *model.State) {
	t.Helper()
	env, err := model.NewEnvironment(1, 4, 4, make([]model.Production, 16))
	if err != nil {
		t.Fatal(err)
	}
	env.TotalTurns = 100
	st := model.NewState(env)
	redraw(t, st, turn, owners)
	return env, st
}

func redraw(t *testing.T, st *model.State, turn int, owners []model.Tag) {
	t.Helper()
	str := make([]model.Strength, len(owners))
	for i := range str {
		str[i] = 10
	}
	if err := st.Reset(owners, str); err != nil {
		t.Fatal(err)
	}
	st.Turn = turn
}

var opening = []model.Tag{
	1, 1, 0, 0,
	1, 1, 0, 0,
	0, 0, 0, 2,
	0, 0, 2, 2,
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestDetectEvents_NoEvents(t *testing.T) {
	env, st := board(t, 10, opening)
	prev := takeSnapshot(env, st)
	st.Turn = 11
	if _, events := detectEvents(env, st, &prev); len(events) != 0 {
		t.Errorf("expected 0 events, got %+v", events)
	}
}

func TestDetectEvents_NilPrev(t *testing.T) {
	env, st := board(t, 10, opening)
	snap, events := detectEvents(env, st, nil)
	if events != nil {
		t.Errorf("expected nil events for nil prev, got %+v", events)
	}
	if snap.cells != 4 || snap.strength != 40 || snap.players[2] != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestDetectEvents(t *testing.T) {
	tests := []struct {
		name string
		prev []model.Tag
		cur  []model.Tag
		turn int
		want []EventKind
	}{
		{
			name: "first contact",
			prev: opening,
			cur: []model.Tag{
				1, 1, 0, 0,
				1, 1, 2, 0,
				0, 0, 0, 2,
				0, 0, 2, 2,
			},
			want: []EventKind{EventFirstContact},
		},
		{
			name: "territory lost",
			prev: []model.Tag{
				1, 1, 1, 1,
				1, 1, 1, 1,
				1, 1, 1, 1,
				1, 1, 1, 1,
			},
			cur: []model.Tag{
				1, 1, 1, 1,
				1, 1, 1, 1,
				1, 1, 0, 0,
				0, 0, 0, 0,
			},
			want: []EventKind{EventTerritoryLost},
		},
		{
			name: "small loss is attrition",
			prev: opening,
			cur: []model.Tag{
				1, 1, 0, 0,
				1, 0, 0, 0,
				0, 0, 0, 2,
				0, 0, 2, 2,
			},
		},
		{
			name: "player eliminated",
			prev: opening,
			cur: []model.Tag{
				1, 1, 0, 0,
				1, 1, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
			},
			want: []EventKind{EventPlayerEliminated},
		},
		{
			name: "eliminated",
			prev: opening,
			cur: []model.Tag{
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 2,
				0, 0, 2, 2,
			},
			want: []EventKind{EventEliminated},
		},
		{
			name: "midgame begins",
			prev: opening,
			cur:  opening,
			turn: 20,
			want: []EventKind{EventPhaseTransition},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turn := tc.turn
			if turn == 0 {
				turn = 10
			}
			env, st := board(t, turn-1, tc.prev)
			prev := takeSnapshot(env, st)
			redraw(t, st, turn, tc.cur)
			_, events := detectEvents(env, st, &prev)
			got := kinds(events)
			if len(got) != len(tc.want) {
				t.Fatalf("events = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("events = %v, want %v", got, tc.want)
				}
				if events[i].Turn != turn {
					t.Errorf("event turn = %d, want %d", events[i].Turn, turn)
				}
			}
		})
	}
}

func TestGamePhase(t *testing.T) {
	env, _ := board(t, 0, opening)
	tests := []struct {
		turn int
		want string
	}{
		{0, "opening"},
		{19, "opening"},
		{20, "midgame"},
		{79, "midgame"},
		{80, "endgame"},
		{150, "endgame"},
	}
	for _, tc := range tests {
		if got := gamePhase(env, tc.turn); got != tc.want {
			t.Errorf("gamePhase(%d) = %q, want %q", tc.turn, got, tc.want)
		}
	}
}

func TestFormatEvents(t *testing.T) {
	if got := formatEvents(nil); got != "" {
		t.Errorf("formatEvents(nil) = %q", got)
	}
	got := formatEvents([]Event{
		{Kind: EventFirstContact, Detail: "enemy cells border the body"},
		{Kind: EventPhaseTransition, Detail: "opening -> midgame"},
	})
	if !strings.Contains(got, "[first_contact]") || !strings.Contains(got, "; [phase_transition] opening -> midgame") {
		t.Errorf("formatEvents = %q", got)
	}
}
