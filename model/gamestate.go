package model

// GameState is one decision request from the host: the visible units and
// the candidate moves the host generated for the acting unit.
type GameState struct {
	Turn       int             `json:"turn"`
	Player     int             `json:"player"`
	Team       int             `json:"team"`
	ActingUnit int             `json:"actingUnit"`
	Behavior   BehaviorState   `json:"behavior"`
	Waypoint   *Coords         `json:"waypoint,omitempty"`
	Units      []Unit          `json:"units"`
	Candidates []Candidate     `json:"candidates"`
	Options    map[string]bool `json:"options,omitempty"`
}

// Candidate is one action the acting unit could take.
type Candidate struct {
	Action   string   `json:"action"`
	Path     MovePath `json:"path"`
	TargetID int      `json:"targetId,omitempty"` // 0 when the action has no target
}

// Unit looks up a unit by id.
func (gs *GameState) Unit(id int) (*Unit, bool) {
	for i := range gs.Units {
		if gs.Units[i].ID == id {
			return &gs.Units[i], true
		}
	}
	return nil, false
}

// Split partitions the visible units into the player's own, allied and
// enemy forces, preserving message order.
func (gs *GameState) Split() (mine, allied, enemies []*Unit) {
	for i := range gs.Units {
		u := &gs.Units[i]
		switch {
		case u.Owner == gs.Player:
			mine = append(mine, u)
		case u.Team == gs.Team:
			allied = append(allied, u)
		default:
			enemies = append(enemies, u)
		}
	}
	return mine, allied, enemies
}
