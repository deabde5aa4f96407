// Package board keeps a compact, index-addressed copy of the map terrain and
// the enemy threat heatmap derived from it.
package board

import (
	"sync"
	"sync/atomic"

	"github.com/MegaMek/megamek-sub083/model"
)

// Representation is the per-board lookup structure. Terrain is static after
// New; the threat heatmap is replaced wholesale by UpdateThreatHeatmap.
// Positions passed to the lookups must satisfy InsideBoard.
type Representation struct {
	width  int
	height int

	woods     bitset
	buildings bitset
	hazards   bitset
	clear     bitset
	water     bitset
	levels    []int
	heights   []int

	writeMu sync.Mutex // serializes heatmap rebuilds
	threat  atomic.Pointer[heatmap]
}

// New indexes a board. The board must be Valid.
func New(b *model.Board) *Representation {
	n := b.Width * b.Height
	r := &Representation{
		width:     b.Width,
		height:    b.Height,
		woods:     newBitset(n),
		buildings: newBitset(n),
		hazards:   newBitset(n),
		clear:     newBitset(n),
		water:     newBitset(n),
		levels:    make([]int, n),
		heights:   make([]int, n),
	}
	for i, h := range b.Hexes[:n] {
		if h.Terrain.Has(model.Woods) {
			r.woods.set(i)
		}
		if h.Terrain.Has(model.Building) {
			r.buildings.set(i)
		}
		if h.Terrain.Has(model.Hazard) {
			r.hazards.set(i)
		}
		if h.Terrain.Has(model.Water) {
			r.water.set(i)
		}
		if h.Terrain == model.Clear {
			r.clear.set(i)
		}
		r.levels[i] = h.Level
		r.heights[i] = h.Height
	}
	r.threat.Store(newHeatmap(n))
	return r
}

func (r *Representation) Width() int  { return r.width }
func (r *Representation) Height() int { return r.height }

// InsideBoard reports whether pos can be passed to the indexed lookups.
func (r *Representation) InsideBoard(pos model.Coords) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < r.width && pos.Y < r.height
}

func (r *Representation) index(pos model.Coords) int { return pos.Y*r.width + pos.X }

func (r *Representation) LevelAt(pos model.Coords) int       { return r.levels[r.index(pos)] }
func (r *Representation) HasWoods(pos model.Coords) bool     { return r.woods.has(r.index(pos)) }
func (r *Representation) HasBuilding(pos model.Coords) bool  { return r.buildings.has(r.index(pos)) }
func (r *Representation) HasHazard(pos model.Coords) bool    { return r.hazards.has(r.index(pos)) }
func (r *Representation) HasWater(pos model.Coords) bool     { return r.water.has(r.index(pos)) }
func (r *Representation) IsClear(pos model.Coords) bool      { return r.clear.has(r.index(pos)) }
func (r *Representation) TerrainHeight(pos model.Coords) int { return r.heights[r.index(pos)] }

// LevelDifference is the ground level at to minus the level at from.
func (r *Representation) LevelDifference(from, to model.Coords) int {
	return r.levels[r.index(to)] - r.levels[r.index(from)]
}

// coverTop is the highest level blocked by terrain at pos.
func (r *Representation) coverTop(pos model.Coords) int {
	i := r.index(pos)
	return r.levels[i] + r.heights[i]
}

// HasPartialCover reports whether terrain at pos rises above the base of a
// unit standing at baseHeight without reaching past its top, which sits
// unitHeight levels higher.
func (r *Representation) HasPartialCover(pos model.Coords, baseHeight, unitHeight int) bool {
	top := r.coverTop(pos)
	return top > baseHeight && top <= baseHeight+unitHeight
}

// HasFullCover reports whether terrain at pos rises above the whole unit.
func (r *Representation) HasFullCover(pos model.Coords, baseHeight, unitHeight int) bool {
	return r.coverTop(pos) > baseHeight+unitHeight
}
