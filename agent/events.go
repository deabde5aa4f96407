package agent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MegaMek/megamek-sub083/model"
)

// EventKind identifies something that changed between two game states.
type EventKind string

const (
	EventTurnStarted     EventKind = "turn_started"
	EventGoalReached     EventKind = "goal_reached"
	EventUnitsLost       EventKind = "units_lost"
	EventForceDevastated EventKind = "force_devastated"
	EventFirstContact    EventKind = "first_contact"
	EventVIPSpotted      EventKind = "vip_spotted"
)

// Event is a significant change detected by diffing consecutive game states.
type Event struct {
	Kind   EventKind
	Turn   int
	Pos    model.Coords // goal hex for goal_reached
	Detail string
}

// goalReachRadius is how close a friendly unit must stand to claim a goal.
const goalReachRadius = 1

// devastatedFloor avoids reporting a devastated force while it is still tiny.
const devastatedFloor = 4

// stateSnapshot captures the diffable fields of one game state.
type stateSnapshot struct {
	turn        int
	mine        map[int]model.Coords
	enemiesSeen bool
	vips        map[int]bool // enemy VIPs ever seen
}

func takeSnapshot(gs *model.GameState) stateSnapshot {
	mine, _, enemies := gs.Split()
	snap := stateSnapshot{
		turn:        gs.Turn,
		mine:        make(map[int]model.Coords, len(mine)),
		enemiesSeen: len(enemies) > 0,
		vips:        make(map[int]bool),
	}
	for _, u := range mine {
		snap.mine[u.ID] = u.Position()
	}
	for _, u := range enemies {
		if u.IsVIP() {
			snap.vips[u.ID] = true
		}
	}
	return snap
}

// detectEvents compares gs against the previous snapshot. Returns nil if prev
// is nil (first state of the session).
func detectEvents(gs *model.GameState, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(gs)

	if cur.turn != prev.turn {
		events = append(events, Event{
			Kind:   EventTurnStarted,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("turn %d → %d", prev.turn, cur.turn),
		})
	}

	var lost []int
	for id := range prev.mine {
		if _, ok := cur.mine[id]; !ok {
			lost = append(lost, id)
		}
	}
	if len(lost) > 0 {
		slices.Sort(lost)
		events = append(events, Event{
			Kind:   EventUnitsLost,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("lost %d unit(s): %v", len(lost), lost),
		})
		before := len(prev.mine)
		if before >= devastatedFloor && len(cur.mine) > 0 && 2*len(lost) > before {
			events = append(events, Event{
				Kind:   EventForceDevastated,
				Turn:   gs.Turn,
				Detail: fmt.Sprintf("force devastated: %d→%d units (lost %d%%)", before, len(cur.mine), 100*len(lost)/before),
			})
		}
	}

	if !prev.enemiesSeen && cur.enemiesSeen {
		_, _, enemies := gs.Split()
		events = append(events, Event{
			Kind:   EventFirstContact,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("first contact: %d enemies now visible", len(enemies)),
		})
	}

	var spotted []int
	for id := range cur.vips {
		if !prev.vips[id] {
			spotted = append(spotted, id)
		}
	}
	if len(spotted) > 0 {
		slices.Sort(spotted)
		events = append(events, Event{
			Kind:   EventVIPSpotted,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("enemy VIP spotted: %v", spotted),
		})
	}

	return events
}

// reachedGoals reports every goal a friendly unit stands on or next to.
func reachedGoals(gs *model.GameState, goals []model.Coords) []Event {
	mine, _, _ := gs.Split()
	var events []Event
	for _, g := range goals {
		for _, u := range mine {
			if u.Position().Distance(g) <= goalReachRadius {
				events = append(events, Event{
					Kind:   EventGoalReached,
					Turn:   gs.Turn,
					Pos:    g,
					Detail: fmt.Sprintf("unit %d reached goal (%d,%d)", u.ID, g.X, g.Y),
				})
				break
			}
		}
	}
	return events
}

// mergeVIPs keeps every VIP ever seen so one that drops out of sight and
// returns is not reported twice.
func mergeVIPs(a, b map[int]bool) map[int]bool {
	merged := make(map[int]bool, len(a)+len(b))
	for id := range a {
		merged[id] = true
	}
	for id := range b {
		merged[id] = true
	}
	return merged
}

// formatEvents renders events one per line for debug logs.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "- [turn %d] %s: %s\n", e.Turn, e.Kind, e.Detail)
	}
	return b.String()
}
