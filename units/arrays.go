// Package units holds flat struct-of-arrays snapshots of a unit subset.
// A snapshot is built once per scoring pass and never modified, so it can be
// read from many goroutines while candidates are scored.
package units

import (
	"iter"

	"github.com/MegaMek/megamek-sub083/model"
)

// Arrays is a columnar snapshot: index i refers to the same unit in every
// column.
type Arrays struct {
	ids      []int
	x        []int
	y        []int
	facing   []int
	owner    []int
	team     []int
	maxRange []int
	role     []model.Role
}

// New builds a snapshot from an ordered unit list. Nil entries are skipped.
func New(list []*model.Unit) *Arrays {
	n := 0
	for _, u := range list {
		if u != nil {
			n++
		}
	}
	a := &Arrays{
		ids:      make([]int, 0, n),
		x:        make([]int, 0, n),
		y:        make([]int, 0, n),
		facing:   make([]int, 0, n),
		owner:    make([]int, 0, n),
		team:     make([]int, 0, n),
		maxRange: make([]int, 0, n),
		role:     make([]model.Role, 0, n),
	}
	for _, u := range list {
		if u == nil {
			continue
		}
		a.ids = append(a.ids, u.ID)
		a.x = append(a.x, u.X)
		a.y = append(a.y, u.Y)
		a.facing = append(a.facing, u.Facing)
		a.owner = append(a.owner, u.Owner)
		a.team = append(a.team, u.Team)
		a.maxRange = append(a.maxRange, u.MaxWeaponRange())
		a.role = append(a.role, u.Role)
	}
	return a
}

// Len returns the number of units. A nil snapshot is empty.
func (a *Arrays) Len() int {
	if a == nil {
		return 0
	}
	return len(a.ids)
}

func (a *Arrays) ID(i int) int                { return a.ids[i] }
func (a *Arrays) X(i int) int                 { return a.x[i] }
func (a *Arrays) Y(i int) int                 { return a.y[i] }
func (a *Arrays) Facing(i int) int            { return a.facing[i] }
func (a *Arrays) Owner(i int) int             { return a.owner[i] }
func (a *Arrays) Team(i int) int              { return a.team[i] }
func (a *Arrays) MaxWeaponRange(i int) int    { return a.maxRange[i] }
func (a *Arrays) Role(i int) model.Role       { return a.role[i] }
func (a *Arrays) Position(i int) model.Coords { return model.Coords{X: a.x[i], Y: a.y[i]} }

// XY returns the position of unit i.
func (a *Arrays) XY(i int) (int, int) { return a.x[i], a.y[i] }

// Indices iterates 0..Len()-1.
func (a *Arrays) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// CopyXY writes x0,y0,x1,y1,... into dst and returns the number of units
// copied. It stops when dst is full.
func (a *Arrays) CopyXY(dst []int) int {
	n := min(a.Len(), len(dst)/2)
	for i := 0; i < n; i++ {
		dst[2*i] = a.x[i]
		dst[2*i+1] = a.y[i]
	}
	return n
}

// CopyXYFacing writes x,y,facing triples into dst.
func (a *Arrays) CopyXYFacing(dst []int) int {
	n := min(a.Len(), len(dst)/3)
	for i := 0; i < n; i++ {
		dst[3*i] = a.x[i]
		dst[3*i+1] = a.y[i]
		dst[3*i+2] = a.facing[i]
	}
	return n
}

// CopyXYRange writes x,y,maxRange triples into dst.
func (a *Arrays) CopyXYRange(dst []int) int {
	n := min(a.Len(), len(dst)/3)
	for i := 0; i < n; i++ {
		dst[3*i] = a.x[i]
		dst[3*i+1] = a.y[i]
		dst[3*i+2] = a.maxRange[i]
	}
	return n
}

// IndexOf returns the index of the unit with the given id.
func (a *Arrays) IndexOf(id int) (int, bool) {
	for i := 0; i < a.Len(); i++ {
		if a.ids[i] == id {
			return i, true
		}
	}
	return -1, false
}

// Row is one unit of a snapshot in row form.
type Row struct {
	ID, X, Y, Facing, Owner, Team, MaxRange int
	Role                                    model.Role
}

// ToArray returns every unit as a row. Intended for debugging and tests;
// hot loops should use the column getters.
func (a *Arrays) ToArray() []Row {
	out := make([]Row, a.Len())
	for i := range out {
		out[i] = Row{
			ID:       a.ids[i],
			X:        a.x[i],
			Y:        a.y[i],
			Facing:   a.facing[i],
			Owner:    a.owner[i],
			Team:     a.team[i],
			MaxRange: a.maxRange[i],
			Role:     a.role[i],
		}
	}
	return out
}
