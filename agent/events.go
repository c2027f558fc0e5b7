package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/anion/model"
	"github.com/nstehr/anion/space"
)

// EventKind identifies the category of a notable change between turns.
type EventKind string

const (
	EventFirstContact     EventKind = "first_contact"
	EventTerritoryLost    EventKind = "territory_lost"
	EventPlayerEliminated EventKind = "player_eliminated"
	EventEliminated       EventKind = "eliminated"
	EventPhaseTransition  EventKind = "phase_transition"
)

// Event is a significant change detected by diffing consecutive turns.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// snapshot captures the diffable facts of one turn.
type snapshot struct {
	cells    int
	strength model.Strength
	players  map[model.Tag]int // cells per non-neutral tag
	contact  bool              // an enemy cell borders an owned cell
	phase    string
}

// Territory losses below this many cells are ordinary attrition.
const lossFloor = 4

func gamePhase(env *model.Environment, turn int) string {
	switch {
	case env.TotalTurns <= 0 || turn*5 < env.TotalTurns:
		return "opening"
	case turn*5 < env.TotalTurns*4:
		return "midgame"
	default:
		return "endgame"
	}
}

func takeSnapshot(env *model.Environment, st *model.State) snapshot {
	snap := snapshot{
		players: make(map[model.Tag]int),
		phase:   gamePhase(env, st.Turn),
	}
	for p := range env.Space.Points() {
		o := st.At(p)
		if o.Tag != model.Neutral {
			snap.players[o.Tag]++
		}
		if o.Tag != env.MyTag {
			continue
		}
		snap.cells++
		snap.strength += o.Strength
		if !snap.contact && bordersEnemy(env, st, p) {
			snap.contact = true
		}
	}
	return snap
}

func bordersEnemy(env *model.Environment, st *model.State, p space.Point) bool {
	for _, d := range space.Dirs {
		if t := st.At(p.Adjacent(d)).Tag; t != env.MyTag && t != model.Neutral {
			return true
		}
	}
	return false
}

// detectEvents compares the current turn to prev. A nil prev (first turn)
// yields no events.
func detectEvents(env *model.Environment, st *model.State, prev *snapshot) (snapshot, []Event) {
	cur := takeSnapshot(env, st)
	if prev == nil {
		return cur, nil
	}
	var events []Event
	add := func(kind EventKind, format string, args ...any) {
		events = append(events, Event{Kind: kind, Turn: st.Turn, Detail: fmt.Sprintf(format, args...)})
	}

	if cur.contact && !prev.contact {
		add(EventFirstContact, "enemy cells border the body")
	}
	if cur.cells == 0 && prev.cells > 0 {
		add(EventEliminated, "lost the last %d cells", prev.cells)
	} else if lost := prev.cells - cur.cells; lost >= lossFloor && lost*4 >= prev.cells {
		add(EventTerritoryLost, "territory fell from %d to %d cells", prev.cells, cur.cells)
	}
	for tag, n := range prev.players {
		if tag != env.MyTag && cur.players[tag] == 0 {
			add(EventPlayerEliminated, "player %d (%d cells) is gone", tag, n)
		}
	}
	if cur.phase != prev.phase {
		add(EventPhaseTransition, "%s -> %s", prev.phase, cur.phase)
	}
	return cur, events
}

// formatEvents renders events for a log line.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = fmt.Sprintf("[%s] %s", e.Kind, e.Detail)
	}
	return strings.Join(parts, "; ")
}
