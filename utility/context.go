package utility

import (
	"errors"
	"fmt"

	"github.com/MegaMek/megamek-sub083/lru"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/strategy"
)

// ErrMissingProvider is returned by Build when a required collaborator was
// never supplied.
var ErrMissingProvider = errors.New("missing provider")

// Action tags what a candidate does. Hosts pick the vocabulary.
type Action string

// Actions the bundled profiles use.
const (
	ActionMove   Action = "move"
	ActionAttack Action = "attack"
)

// friendsSource marks aggregate friendly damage entries in the damage cache.
const friendsSource = -1

// DamageKey identifies one memoised damage figure.
type DamageKey struct {
	Source int // unit id, or friendsSource for aggregate friendly damage
	Pos    model.Coords
	Range  int
}

// DamageCache is the per-turn damage memo. It may be shared by every context
// of a turn and must be cleared by the caller between turns.
type DamageCache = lru.Cache[DamageKey, int]

// NewDamageCache returns a cache of the default capacity.
func NewDamageCache() *DamageCache { return lru.New[DamageKey, int](lru.DefaultCapacity) }

// DecisionContext binds everything one candidate is scored against. It is
// owned by one scorer and discarded after scoring.
type DecisionContext struct {
	world    World
	unit     *model.Unit
	path     *model.MovePath
	waypoint *model.Coords
	goals    *strategy.Manager
	settings *model.BehaviorSettings
	behavior model.BehaviorState
	target   *model.Unit
	action   Action
	damage   *DamageCache

	threat ThreatAssessment
	info   UnitInformationProvider
	calc   DamageCalculator
}

// ContextBuilder assembles DecisionContexts. It is a value: setters return
// a modified copy, so a partly configured builder can serve as a template
// shared by goroutines.
type ContextBuilder struct {
	c DecisionContext
}

// NewContextBuilder starts a builder over w.
func NewContextBuilder(w World) ContextBuilder {
	return ContextBuilder{c: DecisionContext{world: w}}
}

func (b ContextBuilder) Unit(u *model.Unit) ContextBuilder {
	b.c.unit = u
	return b
}

// Path sets the candidate path. Build clones it.
func (b ContextBuilder) Path(p *model.MovePath) ContextBuilder {
	b.c.path = p
	return b
}

func (b ContextBuilder) Waypoint(w model.Coords) ContextBuilder {
	b.c.waypoint = &w
	return b
}

func (b ContextBuilder) Goals(g *strategy.Manager) ContextBuilder {
	b.c.goals = g
	return b
}

func (b ContextBuilder) Settings(s *model.BehaviorSettings) ContextBuilder {
	b.c.settings = s
	return b
}

func (b ContextBuilder) Behavior(s model.BehaviorState) ContextBuilder {
	b.c.behavior = s
	return b
}

func (b ContextBuilder) Target(u *model.Unit) ContextBuilder {
	b.c.target = u
	return b
}

func (b ContextBuilder) Action(a Action) ContextBuilder {
	b.c.action = a
	return b
}

func (b ContextBuilder) DamageCache(c *DamageCache) ContextBuilder {
	b.c.damage = c
	return b
}

func (b ContextBuilder) Threat(t ThreatAssessment) ContextBuilder {
	b.c.threat = t
	return b
}

func (b ContextBuilder) UnitInfo(i UnitInformationProvider) ContextBuilder {
	b.c.info = i
	return b
}

func (b ContextBuilder) Damage(d DamageCalculator) ContextBuilder {
	b.c.calc = d
	return b
}

// Build validates the collaborators and returns a fresh context. The acting
// unit defaults to the path's unit, settings to the defaults, and the damage
// cache to a private one.
func (b ContextBuilder) Build() (*DecisionContext, error) {
	c := b.c
	switch {
	case c.world == nil:
		return nil, fmt.Errorf("decision context: %w: world", ErrMissingProvider)
	case c.threat == nil:
		return nil, fmt.Errorf("decision context: %w: threat assessment", ErrMissingProvider)
	case c.info == nil:
		return nil, fmt.Errorf("decision context: %w: unit information", ErrMissingProvider)
	case c.calc == nil:
		return nil, fmt.Errorf("decision context: %w: damage calculator", ErrMissingProvider)
	case c.path == nil:
		return nil, errors.New("decision context: no move path")
	}
	c.path = c.path.Clone()
	if c.unit == nil {
		u, ok := c.world.Unit(c.path.UnitID)
		if !ok {
			return nil, fmt.Errorf("decision context: acting unit %d not in world", c.path.UnitID)
		}
		c.unit = u
	}
	if c.waypoint != nil {
		wp := *c.waypoint
		c.waypoint = &wp
	}
	if c.settings == nil {
		s := model.DefaultBehaviorSettings()
		c.settings = &s
	}
	if c.goals == nil {
		c.goals = strategy.NewManager()
	}
	if c.damage == nil {
		c.damage = NewDamageCache()
	}
	return &c, nil
}

func (c *DecisionContext) World() World                       { return c.world }
func (c *DecisionContext) Unit() *model.Unit                  { return c.unit }
func (c *DecisionContext) Path() *model.MovePath              { return c.path }
func (c *DecisionContext) Goals() *strategy.Manager           { return c.goals }
func (c *DecisionContext) Settings() *model.BehaviorSettings  { return c.settings }
func (c *DecisionContext) Behavior() model.BehaviorState      { return c.behavior }
func (c *DecisionContext) Action() Action                     { return c.action }
func (c *DecisionContext) DamageCache() *DamageCache          { return c.damage }
func (c *DecisionContext) Threat() ThreatAssessment           { return c.threat }
func (c *DecisionContext) UnitInfo() UnitInformationProvider  { return c.info }
func (c *DecisionContext) DamageCalculator() DamageCalculator { return c.calc }
func (c *DecisionContext) FinalPosition() model.Coords        { return c.path.Final() }
func (c *DecisionContext) StartPosition() model.Coords        { return c.path.Start() }

// ThreatLevel reads the normalized threat heatmap.
func (c *DecisionContext) ThreatLevel(pos model.Coords) float64 {
	return c.world.Board().ThreatLevel(pos)
}

func (c *DecisionContext) ArmorRemainingPercent(u *model.Unit) float64 {
	return c.info.ArmorRemainingPercent(u)
}

// Waypoint returns the optional waypoint.
func (c *DecisionContext) Waypoint() (model.Coords, bool) {
	if c.waypoint == nil {
		return model.Coords{}, false
	}
	return *c.waypoint, true
}

// Target returns the attack target, if the candidate has one.
func (c *DecisionContext) Target() (*model.Unit, bool) { return c.target, c.target != nil }

// ClosestEnemy is the enemy nearest the final position.
func (c *DecisionContext) ClosestEnemy() (*model.Unit, bool) {
	return c.threat.ClosestEnemy(c.FinalPosition())
}

// ClosestVIP is the commander or C3 carrier nearest the final position.
func (c *DecisionContext) ClosestVIP() (*model.Unit, bool) {
	return c.threat.ClosestVIP(c.FinalPosition())
}

// DistanceToClosestEnemy is measured from the final position.
func (c *DecisionContext) DistanceToClosestEnemy() (int, bool) {
	return c.threat.DistanceToClosestEnemyAtFinalPosition(c.path)
}

// EnemiesInRange counts enemies within r of the final position.
func (c *DecisionContext) EnemiesInRange(r int) int {
	return c.threat.EnemiesInRange(c.FinalPosition(), r)
}

// FriendliesInRange counts friendly units within r of the final position.
// The acting unit is not excluded.
func (c *DecisionContext) FriendliesInRange(r int) int {
	return c.threat.FriendliesInRange(c.FinalPosition(), r)
}

// NClosestEnemiesPositions lists up to k enemy positions nearest the final
// position, closest first.
func (c *DecisionContext) NClosestEnemiesPositions(k int) []model.Coords {
	return c.threat.NClosestEnemiesPositions(c.FinalPosition(), k)
}

// UnitMaxDamageAtRange is memoised in the damage cache.
func (c *DecisionContext) UnitMaxDamageAtRange(u *model.Unit, rng int) int {
	key := DamageKey{Source: u.ID, Range: rng}
	return c.damage.GetOrCompute(key, func() int { return c.calc.UnitMaxDamageAtRange(u, rng) })
}

// MaxDamageFromFriendsInRange is memoised in the damage cache.
func (c *DecisionContext) MaxDamageFromFriendsInRange(pos model.Coords, r int) int {
	key := DamageKey{Source: friendsSource, Pos: pos, Range: r}
	return c.damage.GetOrCompute(key, func() int { return c.calc.MaxDamageFromFriendsInRange(pos, r) })
}

// DistanceToEdge is the hex count from pos to the given board edge, the
// smallest of the four for EdgeNearest, and -1 for EdgeNone.
func (c *DecisionContext) DistanceToEdge(pos model.Coords, edge model.CardinalEdge) int {
	b := c.world.Board()
	return DistanceToEdge(pos, edge, b.Width(), b.Height())
}

// DistanceToEdge measures against a width×height board.
func DistanceToEdge(pos model.Coords, edge model.CardinalEdge, width, height int) int {
	north := pos.Y
	south := height - 1 - pos.Y
	west := pos.X
	east := width - 1 - pos.X
	switch edge {
	case model.EdgeNorth:
		return north
	case model.EdgeSouth:
		return south
	case model.EdgeWest:
		return west
	case model.EdgeEast:
		return east
	case model.EdgeNearest:
		return min(north, south, west, east)
	default:
		return -1
	}
}

// DistanceDeltaToDestination is how many hexes the path closes on the
// unit's destination: the waypoint or destination edge when moving to a
// destination, the retreat edge when withdrawing. Positive means progress.
// It reports false when the behavior has no destination.
func (c *DecisionContext) DistanceDeltaToDestination() (int, bool) {
	start, final := c.StartPosition(), c.FinalPosition()
	var edge model.CardinalEdge
	switch c.behavior {
	case model.BehaviorMoveToDestination:
		if wp, ok := c.Waypoint(); ok {
			return start.Distance(wp) - final.Distance(wp), true
		}
		edge = c.settings.DestinationEdge
	case model.BehaviorForcedWithdrawal:
		edge = c.settings.RetreatEdge
	default:
		return 0, false
	}
	if edge == model.EdgeNone {
		return 0, false
	}
	return c.DistanceToEdge(start, edge) - c.DistanceToEdge(final, edge), true
}
