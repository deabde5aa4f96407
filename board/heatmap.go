package board

import (
	"math"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/units"
)

const (
	// GridSize is the side of the downsampled threat grid.
	GridSize = 10
	// DecayFactor divides every accumulated threat cell on each refresh.
	DecayFactor = 2
)

// heatmap is one complete threat snapshot. It is never modified after it
// has been published.
type heatmap struct {
	discrete   []int
	normalized []float64
	grid       [GridSize * GridSize]float64
	max        int
}

func newHeatmap(n int) *heatmap {
	return &heatmap{discrete: make([]int, n), normalized: make([]float64, n)}
}

// UpdateThreatHeatmap decays the previous threat accumulation and folds in
// the reach of every enemy in the snapshot. The new heatmap is built aside
// and published in one step, so concurrent readers see either the old or
// the new snapshot in full.
func (r *Representation) UpdateThreatHeatmap(enemies *units.Arrays) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	prev := r.threat.Load()
	n := r.width * r.height
	next := newHeatmap(n)

	count := enemies.Len()
	buf := make([]int, 3*count)
	enemies.CopyXYRange(buf)

	maxThreat := 0
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			i := y*r.width + x
			v := prev.discrete[i] / DecayFactor
			for e := 0; e < count; e++ {
				raw := int(float64(buf[3*e+2]) - model.Euclidean(x, y, buf[3*e], buf[3*e+1]))
				if raw > v {
					v = raw
				}
			}
			next.discrete[i] = v
			if v > maxThreat {
				maxThreat = v
			}
		}
	}
	next.max = maxThreat

	if maxThreat > 0 {
		inv := 1 / float64(maxThreat)
		for i, v := range next.discrete {
			next.normalized[i] = float64(v) * inv
		}
		bilinear(next.normalized, r.width, r.height, &next.grid)
	}
	r.threat.Store(next)
}

// ThreatLevel returns the normalized threat at pos, in [0,1].
func (r *Representation) ThreatLevel(pos model.Coords) float64 {
	return r.threat.Load().normalized[r.index(pos)]
}

// ThreatLevelRadius averages the normalized threat over on-board cells
// within Euclidean distance radius of pos.
func (r *Representation) ThreatLevelRadius(pos model.Coords, radius int) float64 {
	h := r.threat.Load()
	sum, cells := 0.0, 0
	for y := pos.Y - radius; y <= pos.Y+radius; y++ {
		for x := pos.X - radius; x <= pos.X+radius; x++ {
			if x < 0 || y < 0 || x >= r.width || y >= r.height {
				continue
			}
			if model.Euclidean(x, y, pos.X, pos.Y) > float64(radius) {
				continue
			}
			sum += h.normalized[y*r.width+x]
			cells++
		}
	}
	if cells == 0 {
		return 0
	}
	return sum / float64(cells)
}

// DiscreteThreat returns the raw accumulated threat at pos.
func (r *Representation) DiscreteThreat(pos model.Coords) int {
	return r.threat.Load().discrete[r.index(pos)]
}

// MaxThreat returns the largest accumulated threat of the current snapshot.
func (r *Representation) MaxThreat() int {
	return r.threat.Load().max
}

// ThreatGrid returns the downsampled GridSize×GridSize threat grid, row-major.
// The array is a copy.
func (r *Representation) ThreatGrid() [GridSize * GridSize]float64 {
	return r.threat.Load().grid
}

// bilinear resamples a w×h grid onto dst, aligning the corner cells.
func bilinear(src []float64, w, h int, dst *[GridSize * GridSize]float64) {
	sx := 0.0
	if w > 1 {
		sx = float64(w-1) / float64(GridSize-1)
	}
	sy := 0.0
	if h > 1 {
		sy = float64(h-1) / float64(GridSize-1)
	}
	for gy := 0; gy < GridSize; gy++ {
		fy := float64(gy) * sy
		y0 := int(math.Floor(fy))
		y1 := min(y0+1, h-1)
		ty := fy - float64(y0)
		for gx := 0; gx < GridSize; gx++ {
			fx := float64(gx) * sx
			x0 := int(math.Floor(fx))
			x1 := min(x0+1, w-1)
			tx := fx - float64(x0)

			top := src[y0*w+x0]*(1-tx) + src[y0*w+x1]*tx
			bottom := src[y1*w+x0]*(1-tx) + src[y1*w+x1]*tx
			dst[gy*GridSize+gx] = top*(1-ty) + bottom*ty
		}
	}
}
