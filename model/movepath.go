package model

// MovePath is a candidate movement for one unit, as generated by the host.
// Steps includes the starting hex.
type MovePath struct {
	UnitID  int      `json:"unitId"`
	Steps   []Coords `json:"steps"`
	Facing  int      `json:"facing"` // facing at the end of the move
	MPUsed  int      `json:"mpUsed"`
	Jumping bool     `json:"jumping"`
}

// Clone returns a deep copy so later edits to p cannot reach a
// path that is being scored.
func (p *MovePath) Clone() *MovePath {
	if p == nil {
		return nil
	}
	c := *p
	c.Steps = append([]Coords(nil), p.Steps...)
	return &c
}

// Start returns the first hex of the path.
func (p *MovePath) Start() Coords {
	if len(p.Steps) == 0 {
		return Coords{}
	}
	return p.Steps[0]
}

// Final returns the hex the unit ends on.
func (p *MovePath) Final() Coords {
	if len(p.Steps) == 0 {
		return Coords{}
	}
	return p.Steps[len(p.Steps)-1]
}

// Length is the number of hexes entered.
func (p *MovePath) Length() int {
	if len(p.Steps) == 0 {
		return 0
	}
	return len(p.Steps) - 1
}
