package model

import (
	"fmt"
	"math"
	"strings"
)

// CardinalEdge names a board edge used as a destination or retreat target.
type CardinalEdge int8

const (
	EdgeNone CardinalEdge = iota - 1
	EdgeNorth
	EdgeSouth
	EdgeWest
	EdgeEast
	EdgeNearest
)

var edgeNames = map[CardinalEdge]string{
	EdgeNone:    "none",
	EdgeNorth:   "north",
	EdgeSouth:   "south",
	EdgeWest:    "west",
	EdgeEast:    "east",
	EdgeNearest: "nearest",
}

func (e CardinalEdge) String() string {
	if n, ok := edgeNames[e]; ok {
		return n
	}
	return "none"
}

// MarshalText lets edges appear by name in YAML and JSON.
func (e CardinalEdge) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText parses an edge name (case-insensitive).
func (e *CardinalEdge) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for k, n := range edgeNames {
		if n == s {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown board edge %q", s)
}

// BehaviorState is what the unit is currently trying to do at the strategic
// level. Only some states define a destination.
type BehaviorState uint8

const (
	BehaviorEngaged BehaviorState = iota
	BehaviorMoveToDestination
	BehaviorForcedWithdrawal
	BehaviorMoveToContact
)

// BehaviorSettings are the tunables of one bot personality. Fractions are
// 0.0–1.0; Validate clamps everything into range.
type BehaviorSettings struct {
	Name             string       `json:"name" yaml:"name"`
	DestinationEdge  CardinalEdge `json:"destination_edge" yaml:"destination_edge"`
	RetreatEdge      CardinalEdge `json:"retreat_edge" yaml:"retreat_edge"`
	ForcedWithdrawal bool         `json:"forced_withdrawal" yaml:"forced_withdrawal"`
	Bravery          float64      `json:"bravery" yaml:"bravery"`
	HerdMentality    float64      `json:"herd_mentality" yaml:"herd_mentality"`
	HyperAggression  float64      `json:"hyper_aggression" yaml:"hyper_aggression"`
	SelfPreservation float64      `json:"self_preservation" yaml:"self_preservation"`
	FallShame        float64      `json:"fall_shame" yaml:"fall_shame"`
	FocusFire        float64      `json:"focus_fire" yaml:"focus_fire"`
	QuadrantWidth    int          `json:"quadrant_width" yaml:"quadrant_width"`
	QuadrantHeight   int          `json:"quadrant_height" yaml:"quadrant_height"`
}

// DefaultBehaviorSettings returns a balanced baseline personality.
func DefaultBehaviorSettings() BehaviorSettings {
	return BehaviorSettings{
		Name:             "Balanced",
		DestinationEdge:  EdgeNone,
		RetreatEdge:      EdgeNearest,
		ForcedWithdrawal: true,
		Bravery:          0.5,
		HerdMentality:    0.5,
		HyperAggression:  0.5,
		SelfPreservation: 0.5,
		FallShame:        0.5,
		FocusFire:        0.5,
		QuadrantWidth:    8,
		QuadrantHeight:   8,
	}
}

// Validate clamps all tunables to their valid ranges.
func (s *BehaviorSettings) Validate() {
	s.Bravery = clamp(s.Bravery, 0, 1)
	s.HerdMentality = clamp(s.HerdMentality, 0, 1)
	s.HyperAggression = clamp(s.HyperAggression, 0, 1)
	s.SelfPreservation = clamp(s.SelfPreservation, 0, 1)
	s.FallShame = clamp(s.FallShame, 0, 1)
	s.FocusFire = clamp(s.FocusFire, 0, 1)
	s.QuadrantWidth = clampInt(s.QuadrantWidth, 2, 32)
	s.QuadrantHeight = clampInt(s.QuadrantHeight, 2, 32)
	if s.DestinationEdge < EdgeNone || s.DestinationEdge > EdgeNearest {
		s.DestinationEdge = EdgeNone
	}
	if s.RetreatEdge < EdgeNone || s.RetreatEdge > EdgeNearest {
		s.RetreatEdge = EdgeNearest
	}
}

// Lerp linearly interpolates between min and max by t (0–1).
func Lerp(min, max, t float64) float64 {
	return min + (max-min)*t
}

// LerpInt is Lerp rounded to the nearest integer.
func LerpInt(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
