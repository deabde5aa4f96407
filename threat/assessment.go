// Package threat implements the spatial and per-unit query providers over
// the per-pass unit snapshots.
package threat

import (
	"container/heap"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/units"
	"github.com/MegaMek/megamek-sub083/utility"
)

// Assessment answers range and proximity queries with linear scans over the
// world's unit snapshots. It holds no state of its own beyond the snapshots
// captured at construction, so one Assessment serves a whole pass.
type Assessment struct {
	friends *units.Arrays // own and allied units
	enemies *units.Arrays
	world   utility.World
}

var _ utility.ThreatAssessment = (*Assessment)(nil)

// NewAssessment captures w's snapshots.
func NewAssessment(w utility.World) *Assessment {
	friendly := append(append([]*model.Unit(nil), w.MyUnits()...), w.AlliedUnits()...)
	return &Assessment{
		friends: units.New(friendly),
		enemies: w.EnemyArrays(),
		world:   w,
	}
}

func within(a *units.Arrays, i int, pos model.Coords, r int) bool {
	x, y := a.XY(i)
	return model.Euclidean(pos.X, pos.Y, x, y) <= float64(r)
}

func countInRange(a *units.Arrays, pos model.Coords, r int) int {
	n := 0
	for i := range a.Indices() {
		if within(a, i, pos, r) {
			n++
		}
	}
	return n
}

func idsInRange(a *units.Arrays, pos model.Coords, r int) []int {
	var ids []int
	for i := range a.Indices() {
		if within(a, i, pos, r) {
			ids = append(ids, a.ID(i))
		}
	}
	return ids
}

func (t *Assessment) FriendliesInRange(pos model.Coords, r int) int {
	return countInRange(t.friends, pos, r)
}

func (t *Assessment) FriendlyIDsInRange(pos model.Coords, r int) []int {
	return idsInRange(t.friends, pos, r)
}

func (t *Assessment) EnemiesInRange(pos model.Coords, r int) int {
	return countInRange(t.enemies, pos, r)
}

func (t *Assessment) EnemyIDsInRange(pos model.Coords, r int) []int {
	return idsInRange(t.enemies, pos, r)
}

// EnemiesThreateningPosition counts enemies whose longest weapon reaches pos.
func (t *Assessment) EnemiesThreateningPosition(pos model.Coords) int {
	n := 0
	for i := range t.enemies.Indices() {
		if within(t.enemies, i, pos, t.enemies.MaxWeaponRange(i)) {
			n++
		}
	}
	return n
}

type ranked struct {
	pos  model.Coords
	dist float64
}

type byDistance []ranked

func (h byDistance) Len() int           { return len(h) }
func (h byDistance) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h byDistance) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *byDistance) Push(x any)        { *h = append(*h, x.(ranked)) }
func (h *byDistance) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// NClosestEnemiesPositions returns up to k enemy positions, nearest first,
// by repeatedly extracting the minimum from a heap.
func (t *Assessment) NClosestEnemiesPositions(pos model.Coords, k int) []model.Coords {
	if k <= 0 || t.enemies.Len() == 0 {
		return nil
	}
	h := make(byDistance, 0, t.enemies.Len())
	for i := range t.enemies.Indices() {
		x, y := t.enemies.XY(i)
		h = append(h, ranked{pos: model.Coords{X: x, Y: y}, dist: model.Euclidean(pos.X, pos.Y, x, y)})
	}
	heap.Init(&h)
	out := make([]model.Coords, 0, min(k, len(h)))
	for len(out) < k && h.Len() > 0 {
		out = append(out, heap.Pop(&h).(ranked).pos)
	}
	return out
}

// DistanceToClosestEnemyAtFinalPosition is the hex distance from the path's
// final hex to the nearest enemy.
func (t *Assessment) DistanceToClosestEnemyAtFinalPosition(path *model.MovePath) (int, bool) {
	return t.closestDistance(path.Final(), func(int) bool { return true })
}

// DistanceToClosestEnemyWithRole only considers enemies with the given role.
func (t *Assessment) DistanceToClosestEnemyWithRole(pos model.Coords, role model.Role) (int, bool) {
	return t.closestDistance(pos, func(i int) bool { return t.enemies.Role(i) == role })
}

func (t *Assessment) closestDistance(pos model.Coords, keep func(int) bool) (int, bool) {
	best, found := 0, false
	for i := range t.enemies.Indices() {
		if !keep(i) {
			continue
		}
		if d := pos.Distance(t.enemies.Position(i)); !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}

// ClosestVIP is the nearest enemy commander or C3 carrier.
func (t *Assessment) ClosestVIP(pos model.Coords) (*model.Unit, bool) {
	var best *model.Unit
	bestDist := 0.0
	for _, u := range t.world.EnemyUnits() {
		if !u.IsVIP() {
			continue
		}
		if d := pos.EuclideanDistance(u.Position()); best == nil || d < bestDist {
			best, bestDist = u, d
		}
	}
	return best, best != nil
}

// ClosestEnemy is the nearest enemy. On equal distance the later one in
// the enemy list wins.
func (t *Assessment) ClosestEnemy(pos model.Coords) (*model.Unit, bool) {
	var best *model.Unit
	bestDist := 0.0
	for _, u := range t.world.EnemyUnits() {
		if d := pos.EuclideanDistance(u.Position()); best == nil || d <= bestDist {
			best, bestDist = u, d
		}
	}
	return best, best != nil
}
