package model

// Archetype is the closed set of unit families. Calculations that differ per
// family switch on it instead of walking a type hierarchy.
type Archetype uint8

const (
	ArchetypeMek Archetype = iota
	ArchetypeTank
	ArchetypeInfantry
	ArchetypeBattleArmor
	ArchetypeProtoMek
	ArchetypeAero
)

// Role is the tactical role a unit was built for.
type Role uint8

const (
	RoleNone Role = iota
	RoleAmbusher
	RoleBrawler
	RoleJuggernaut
	RoleMissileBoat
	RoleScout
	RoleSkirmisher
	RoleSniper
	RoleStriker
)

var roleNames = [...]string{
	RoleNone:        "none",
	RoleAmbusher:    "ambusher",
	RoleBrawler:     "brawler",
	RoleJuggernaut:  "juggernaut",
	RoleMissileBoat: "missile_boat",
	RoleScout:       "scout",
	RoleSkirmisher:  "skirmisher",
	RoleSniper:      "sniper",
	RoleStriker:     "striker",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// ParseRole maps a role name back to its value. Unknown names map to RoleNone.
func ParseRole(s string) Role {
	for i, n := range roleNames {
		if n == s {
			return Role(i)
		}
	}
	return RoleNone
}

// Weapon is one entry of a unit's weapon table.
type Weapon struct {
	Name     string `json:"name"`
	Damage   int    `json:"damage"`
	MinRange int    `json:"minRange"`
	MaxRange int    `json:"maxRange"`
}

// Unit carries the facts the scoring engine reads about one entity. The
// engine never writes to it.
type Unit struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Owner     int       `json:"owner"`
	Team      int       `json:"team"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Facing    int       `json:"facing"`
	Archetype Archetype `json:"archetype"`
	Role      Role      `json:"role"`
	Height    int       `json:"height"` // levels above the hex the unit occupies
	Commander bool      `json:"commander"`
	C3        bool      `json:"c3"` // carries any C3 network equipment

	Armor       int `json:"armor"`
	MaxArmor    int `json:"maxArmor"`
	Internal    int `json:"internal"`
	MaxInternal int `json:"maxInternal"`
	Troopers    int `json:"troopers"`
	MaxTroopers int `json:"maxTroopers"`

	Weapons []Weapon `json:"weapons"`
}

// Position returns the unit's hex.
func (u *Unit) Position() Coords { return Coords{X: u.X, Y: u.Y} }

// MaxWeaponRange returns the longest range in the weapon table.
func (u *Unit) MaxWeaponRange() int {
	r := 0
	for _, w := range u.Weapons {
		if w.MaxRange > r {
			r = w.MaxRange
		}
	}
	return r
}

// DamageAtRange sums the damage of every weapon that can reach rng.
func (u *Unit) DamageAtRange(rng int) int {
	if rng < 0 {
		return 0
	}
	dmg := 0
	for _, w := range u.Weapons {
		if rng <= w.MaxRange {
			dmg += w.Damage
		}
	}
	return dmg
}

// IsVIP reports whether losing this unit degrades its whole force.
func (u *Unit) IsVIP() bool { return u.Commander || u.C3 }

// ArmorRemainingPercent returns remaining protection in [0,1], computed per
// archetype.
func (u *Unit) ArmorRemainingPercent() float64 {
	switch u.Archetype {
	case ArchetypeInfantry:
		return ratio(u.Troopers, u.MaxTroopers)
	case ArchetypeBattleArmor:
		return ratio(u.Armor, u.MaxArmor) * ratio(u.Troopers, u.MaxTroopers)
	default:
		return ratio(u.Armor, u.MaxArmor)
	}
}

// InternalRemainingPercent returns remaining structure in [0,1]. Infantry
// has no structure separate from its troopers.
func (u *Unit) InternalRemainingPercent() float64 {
	switch u.Archetype {
	case ArchetypeInfantry, ArchetypeBattleArmor:
		return ratio(u.Troopers, u.MaxTroopers)
	default:
		return ratio(u.Internal, u.MaxInternal)
	}
}

func ratio(v, max int) float64 {
	if max <= 0 {
		return 0
	}
	r := float64(v) / float64(max)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
