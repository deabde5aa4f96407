// Package strategy spreads exploration goals evenly over the board and keeps
// the per-turn tally of which enemies friendly units have committed to.
package strategy

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/MegaMek/megamek-sub083/model"
)

// GoalSearchRadius bounds how far from a quadrant midpoint a goal may be.
const GoalSearchRadius = 3

// Terrain is the board view the manager needs.
type Terrain interface {
	Width() int
	Height() int
	InsideBoard(pos model.Coords) bool
	IsClear(pos model.Coords) bool
}

// Manager holds strategic goals grouped by quadrant. It is safe for
// concurrent use; scorers read while the turn loop writes between passes.
type Manager struct {
	mu sync.RWMutex

	quadW, quadH int
	offX, offY   int
	cols, rows   int
	goals        map[int][]model.Coords // quadrant index → live goals

	enemyTargets map[int]int // enemy id → friendly units committed this turn
}

// NewManager returns a manager with no quadrants and no goals.
func NewManager() *Manager {
	return &Manager{
		goals:        make(map[int][]model.Coords),
		enemyTargets: make(map[int]int),
		cols:         1,
		rows:         1,
		quadW:        1,
		quadH:        1,
	}
}

// InitializeStrategicGoals partitions the board into quadW×quadH quadrants,
// centred when the board is not an exact multiple, and seeds each quadrant
// with the first clear (or off-board) hex within GoalSearchRadius of its
// midpoint. Existing goals are discarded.
func (m *Manager) InitializeStrategicGoals(t Terrain, quadW, quadH int) {
	w, h := t.Width(), t.Height()
	quadW = min(max(quadW, 1), max(w, 1))
	quadH = min(max(quadH, 1), max(h, 1))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.quadW, m.quadH = quadW, quadH
	m.cols, m.rows = max(w/quadW, 1), max(h/quadH, 1)
	m.offX, m.offY = (w%quadW)/2, (h%quadH)/2
	m.goals = make(map[int][]model.Coords, m.cols*m.rows)

	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			mid := model.Coords{
				X: m.offX + col*quadW + quadW/2,
				Y: m.offY + row*quadH + quadH/2,
			}
			for _, p := range mid.WithinRadius(GoalSearchRadius) {
				if !t.InsideBoard(p) || t.IsClear(p) {
					// the search may leave its quadrant; file by position
					q := m.quadrantOf(p)
					if !slices.Contains(m.goals[q], p) {
						m.goals[q] = append(m.goals[q], p)
					}
					break
				}
			}
		}
	}
	slog.Debug("strategic goals initialized", "quadrants", m.cols*m.rows, "goals", m.countLocked())
}

func (m *Manager) quadrantOf(pos model.Coords) int {
	col := (pos.X - m.offX) / m.quadW
	row := (pos.Y - m.offY) / m.quadH
	col = min(max(col, 0), m.cols-1)
	row = min(max(row, 0), m.rows-1)
	return row*m.cols + col
}

// AddStrategicGoal adds a goal to the quadrant containing pos.
func (m *Manager) AddStrategicGoal(pos model.Coords) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quadrantOf(pos)
	if !slices.Contains(m.goals[q], pos) {
		m.goals[q] = append(m.goals[q], pos)
	}
}

// RemoveStrategicGoal removes one goal. Unknown goals are ignored.
func (m *Manager) RemoveStrategicGoal(pos model.Coords) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for q, goals := range m.goals {
		if i := slices.Index(goals, pos); i >= 0 {
			m.goals[q] = slices.Delete(goals, i, i+1)
			if len(m.goals[q]) == 0 {
				delete(m.goals, q)
			}
			return
		}
	}
}

// StrategicGoalsOnCoordsQuadrant returns a copy of the live goals in the
// quadrant containing pos.
func (m *Manager) StrategicGoalsOnCoordsQuadrant(pos model.Coords) []model.Coords {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.goals[m.quadrantOf(pos)])
}

// RemoveAllStrategicGoalsOnCoordsQuadrant clears the quadrant containing pos.
func (m *Manager) RemoveAllStrategicGoalsOnCoordsQuadrant(pos model.Coords) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.goals, m.quadrantOf(pos))
}

// AllGoals returns every live goal ordered by quadrant.
func (m *Manager) AllGoals() []model.Coords {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Coords, 0, m.countLocked())
	for q := 0; q < m.cols*m.rows; q++ {
		out = append(out, m.goals[q]...)
	}
	return out
}

// NearestGoal returns the live goal closest to pos in hex distance.
func (m *Manager) NearestGoal(pos model.Coords) (model.Coords, int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best model.Coords
	bestDist, found := 0, false
	for q := 0; q < m.cols*m.rows; q++ {
		for _, g := range m.goals[q] {
			if d := pos.Distance(g); !found || d < bestDist {
				best, bestDist, found = g, d, true
			}
		}
	}
	return best, bestDist, found
}

func (m *Manager) countLocked() int {
	n := 0
	for _, g := range m.goals {
		n += len(g)
	}
	return n
}

// RecordEnemyTarget notes that one more friendly unit is committed to the
// given enemy this turn.
func (m *Manager) RecordEnemyTarget(enemyID int) {
	m.mu.Lock()
	m.enemyTargets[enemyID]++
	m.mu.Unlock()
}

// EnemyTargetCount returns how many friendly units target enemyID.
func (m *Manager) EnemyTargetCount(enemyID int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enemyTargets[enemyID]
}

// ResetEnemyTargets clears the tally. Callers do this at turn boundaries.
func (m *Manager) ResetEnemyTargets() {
	m.mu.Lock()
	clear(m.enemyTargets)
	m.mu.Unlock()
}
