package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/stp/stp-core/evaluation"
	"github.com/nstehr/stp/stp-core/model"
)

// EventKind identifies a change in the game worth noting between two
// consecutive snapshots.
type EventKind string

const (
	EventRefereeChanged    EventKind = "referee_changed"
	EventRestartAwarded    EventKind = "restart_awarded"
	EventPossessionChanged EventKind = "possession_changed"
	EventRobotsChanged     EventKind = "robots_changed"
)

// Event is one change detected by diffing consecutive worlds.
type Event struct {
	Kind   EventKind
	At     model.Timestamp
	Detail string
}

type possession string

const (
	possessionNone     possession = "none"
	possessionFriendly possession = "friendly"
	possessionEnemy    possession = "enemy"
	possessionContest  possession = "contested"
)

// stateSnapshot captures the diffable fields of a world.
type stateSnapshot struct {
	play       model.PlayState
	restart    model.RestartReason
	ourRestart bool
	possession possession
	friendly   int
	enemy      int
}

func takeSnapshot(w model.World) stateSnapshot {
	return stateSnapshot{
		play:       w.GameState.Play,
		restart:    w.GameState.Restart,
		ourRestart: w.GameState.OurRestart,
		possession: whoHasBall(w),
		friendly:   len(w.Friendly.Robots),
		enemy:      len(w.Enemy.Robots),
	}
}

func whoHasBall(w model.World) possession {
	ours := evaluation.TeamHasPossession(w, w.Friendly)
	theirs := evaluation.TeamHasPossession(w, w.Enemy)
	switch {
	case ours && theirs:
		return possessionContest
	case ours:
		return possessionFriendly
	case theirs:
		return possessionEnemy
	default:
		return possessionNone
	}
}

func restartOwner(ours bool) string {
	if ours {
		return "ours"
	}
	return "theirs"
}

// detectEvents compares w against the previous snapshot. There are no
// events without a previous snapshot.
func detectEvents(w model.World, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(w)

	if prev.play != cur.play {
		events = append(events, Event{
			Kind:   EventRefereeChanged,
			At:     w.Timestamp,
			Detail: fmt.Sprintf("%s -> %s", prev.play, cur.play),
		})
	}

	if cur.restart != model.RestartNone && (prev.restart != cur.restart || prev.ourRestart != cur.ourRestart) {
		events = append(events, Event{
			Kind:   EventRestartAwarded,
			At:     w.Timestamp,
			Detail: fmt.Sprintf("%s (%s)", cur.restart, restartOwner(cur.ourRestart)),
		})
	}

	if prev.possession != cur.possession {
		events = append(events, Event{
			Kind:   EventPossessionChanged,
			At:     w.Timestamp,
			Detail: fmt.Sprintf("%s -> %s", prev.possession, cur.possession),
		})
	}

	if prev.friendly != cur.friendly || prev.enemy != cur.enemy {
		events = append(events, Event{
			Kind:   EventRobotsChanged,
			At:     w.Timestamp,
			Detail: fmt.Sprintf("friendly %d->%d, enemy %d->%d", prev.friendly, cur.friendly, prev.enemy, cur.enemy),
		})
	}

	return events
}

// formatEvents renders events on one line for logging.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = fmt.Sprintf("[%.3fs] %s: %s", e.At.Seconds(), e.Kind, e.Detail)
	}
	return strings.Join(parts, "; ")
}
