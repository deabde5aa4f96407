// Package world turns one host game-state message into the read-only
// snapshot a scoring pass runs against.
package world

import (
	"math"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/units"
	"github.com/MegaMek/megamek-sub083/utility"
)

// ClusterRadius is the hex distance under which friendly units are linked
// into the same group.
const ClusterRadius = 6

// World is immutable once built.
type World struct {
	turn  int
	board *board.Representation

	mine, allied, enemies []*model.Unit
	myA, alliedA, enemyA  *units.Arrays

	byID      map[int]*model.Unit
	options   map[string]bool
	centroids map[int]model.Coords // friendly unit id → its group's centre
}

var _ utility.World = (*World)(nil)

// New snapshots gs over b. The game state must not be modified afterwards.
func New(gs *model.GameState, b *board.Representation) *World {
	mine, allied, enemies := gs.Split()
	w := &World{
		turn:    gs.Turn,
		board:   b,
		mine:    mine,
		allied:  allied,
		enemies: enemies,
		myA:     units.New(mine),
		alliedA: units.New(allied),
		enemyA:  units.New(enemies),
		byID:    make(map[int]*model.Unit, len(gs.Units)),
		options: gs.Options,
	}
	for i := range gs.Units {
		w.byID[gs.Units[i].ID] = &gs.Units[i]
	}
	friendly := append(append([]*model.Unit(nil), mine...), allied...)
	w.centroids = clusterCentroids(friendly, ClusterRadius)
	return w
}

func (w *World) Turn() int                    { return w.turn }
func (w *World) MyUnits() []*model.Unit       { return w.mine }
func (w *World) AlliedUnits() []*model.Unit   { return w.allied }
func (w *World) EnemyUnits() []*model.Unit    { return w.enemies }
func (w *World) MyArrays() *units.Arrays      { return w.myA }
func (w *World) AlliedArrays() *units.Arrays  { return w.alliedA }
func (w *World) EnemyArrays() *units.Arrays   { return w.enemyA }
func (w *World) Board() *board.Representation { return w.board }
func (w *World) GameOption(name string) bool  { return w.options[name] }
func (w *World) Unit(id int) (*model.Unit, bool) {
	u, ok := w.byID[id]
	return u, ok
}

// ClusterCentroid returns the centre of u's friendly group, or u's own
// position for units outside any group (enemies included).
func (w *World) ClusterCentroid(u *model.Unit) model.Coords {
	if c, ok := w.centroids[u.ID]; ok {
		return c
	}
	return u.Position()
}

// clusterCentroids groups units by single linkage: two units closer than
// radius share a group.
func clusterCentroids(list []*model.Unit, radius int) map[int]model.Coords {
	parent := make([]int, len(list))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			if list[i].Position().Distance(list[j].Position()) <= radius {
				parent[find(i)] = find(j)
			}
		}
	}

	type acc struct{ sx, sy, n int }
	sums := make(map[int]*acc)
	for i, u := range list {
		r := find(i)
		a := sums[r]
		if a == nil {
			a = &acc{}
			sums[r] = a
		}
		a.sx += u.X
		a.sy += u.Y
		a.n++
	}
	out := make(map[int]model.Coords, len(list))
	for i, u := range list {
		a := sums[find(i)]
		out[u.ID] = model.Coords{
			X: int(math.Round(float64(a.sx) / float64(a.n))),
			Y: int(math.Round(float64(a.sy) / float64(a.n))),
		}
	}
	return out
}
