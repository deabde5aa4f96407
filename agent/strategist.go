package agent

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/strategy"
	"github.com/MegaMek/megamek-sub083/utility"
)

// maxRecentEvents bounds the event history kept for summaries.
const maxRecentEvents = 32

// Strategist keeps the state that outlives a single scoring pass: strategic
// goals, enemy-target counts, the threat heatmap and the shared damage cache.
// It refreshes them once per turn, not once per pass.
type Strategist struct {
	mu     sync.Mutex
	board  *board.Representation
	goals  *strategy.Manager
	cache  *utility.DamageCache
	prev   *stateSnapshot
	turn   int
	recent []Event
}

func NewStrategist(b *board.Representation, goals *strategy.Manager, cache *utility.DamageCache) *Strategist {
	return &Strategist{board: b, goals: goals, cache: cache}
}

// Initialize places the strategic goals for a new session.
func (s *Strategist) Initialize(settings model.BehaviorSettings) {
	s.goals.InitializeStrategicGoals(s.board, settings.QuadrantWidth, settings.QuadrantHeight)
	slog.Info("strategic goals placed",
		"goals", len(s.goals.AllGoals()),
		"quadrant", fmt.Sprintf("%dx%d", settings.QuadrantWidth, settings.QuadrantHeight),
		"board", fmt.Sprintf("%dx%d", s.board.Width(), s.board.Height()),
	)
}

// Observe folds a new game state into the long-lived state and returns what
// changed. On the first state and on every turn change it resets enemy-target
// counts, clears the damage cache and rebuilds the heatmap from w's enemies.
func (s *Strategist) Observe(gs *model.GameState, w utility.World) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := detectEvents(gs, s.prev)
	if s.prev == nil || gs.Turn != s.turn {
		s.startTurnLocked(gs.Turn, w)
	}

	reached := reachedGoals(gs, s.goals.AllGoals())
	for _, e := range reached {
		s.goals.RemoveStrategicGoal(e.Pos)
	}
	events = append(events, reached...)

	snap := takeSnapshot(gs)
	if s.prev != nil {
		snap.vips = mergeVIPs(s.prev.vips, snap.vips)
	}
	s.prev = &snap

	s.recent = append(s.recent, events...)
	if n := len(s.recent); n > maxRecentEvents {
		s.recent = append([]Event(nil), s.recent[n-maxRecentEvents:]...)
	}
	return events
}

func (s *Strategist) startTurnLocked(turn int, w utility.World) {
	s.turn = turn
	s.goals.ResetEnemyTargets()
	s.cache.Clear()
	s.board.UpdateThreatHeatmap(w.EnemyArrays())
	slog.Debug("turn started", "turn", turn, "enemies", w.EnemyArrays().Len(), "maxThreat", s.board.MaxThreat())
}

// RecordTarget counts a friendly unit committing to attack enemyID this turn.
func (s *Strategist) RecordTarget(enemyID int) { s.goals.RecordEnemyTarget(enemyID) }

// Turn is the turn of the last observed state.
func (s *Strategist) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// RecentEvents returns up to the last maxRecentEvents events, oldest first.
func (s *Strategist) RecentEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.recent...)
}

// Summary renders the long-lived state for debug logs.
func (s *Strategist) Summary(gs *model.GameState) string {
	var b strings.Builder
	mine, allied, enemies := gs.Split()
	stats := s.cache.Stats()
	hitRate := 0.0
	if total := stats.Hits + stats.Misses; total > 0 {
		hitRate = 100 * float64(stats.Hits) / float64(total)
	}

	fmt.Fprintf(&b, "Turn: %d | Forces: %d mine, %d allied, %d enemy\n", gs.Turn, len(mine), len(allied), len(enemies))
	fmt.Fprintf(&b, "Goals: %d remaining | Candidates: %s\n", len(s.goals.AllGoals()), humanize.Comma(int64(len(gs.Candidates))))
	fmt.Fprintf(&b, "Damage cache: %s/%s entries, %.0f%% hits, %s evicted\n",
		humanize.Comma(int64(stats.Len)), humanize.Comma(int64(s.cache.Cap())), hitRate, humanize.Comma(int64(stats.Evicted)))
	if events := s.RecentEvents(); len(events) > 0 {
		b.WriteString("Recent events:\n")
		b.WriteString(formatEvents(events))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
