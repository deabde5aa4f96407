package considerations

import (
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/utility"
)

// Env is what expression considerations see. Fields are evaluated up front;
// methods run only when an expression calls them.
type Env struct {
	ctx    *utility.DecisionContext
	params utility.Parameters

	PathLength int
	MPUsed     int
	Jumping    bool
	HasTarget  bool
	Withdrawn  bool    // forced withdrawal is in effect
	Armor      float64 // acting unit, 0–1
	Internal   float64
	MaxRange   int
	Role       string
	Bravery    float64
	Aggression float64
	Herding    float64
	FocusFire  float64
}

// NewEnv prepares the expression environment for one scoring call.
func NewEnv(ctx *utility.DecisionContext, params utility.Parameters) Env {
	u := ctx.Unit()
	s := ctx.Settings()
	_, hasTarget := ctx.Target()
	return Env{
		ctx:        ctx,
		params:     params,
		PathLength: ctx.Path().Length(),
		MPUsed:     ctx.Path().MPUsed,
		Jumping:    ctx.Path().Jumping,
		HasTarget:  hasTarget,
		Withdrawn:  ctx.Behavior() == model.BehaviorForcedWithdrawal,
		Armor:      ctx.UnitInfo().ArmorRemainingPercent(u),
		Internal:   ctx.UnitInfo().InternalRemainingPercent(u),
		MaxRange:   ctx.UnitInfo().MaxWeaponRange(u),
		Role:       ctx.UnitInfo().Role(u).String(),
		Bravery:    s.Bravery,
		Aggression: s.HyperAggression,
		Herding:    s.HerdMentality,
		FocusFire:  s.FocusFire,
	}
}

func (e Env) final() model.Coords { return e.ctx.FinalPosition() }

// Param reads a numeric consideration parameter, 0 when absent.
func (e Env) Param(key string) float64 { return e.params.FloatOr(key, 0) }

func (e Env) EnemiesInRange(r int) int    { return e.ctx.EnemiesInRange(r) }
func (e Env) FriendliesInRange(r int) int { return e.ctx.FriendliesInRange(r) }
func (e Env) Option(name string) bool     { return e.ctx.World().GameOption(name) }

// DistanceToEnemy is the hex distance from the final position to the nearest
// enemy, or -1 when no enemy is visible.
func (e Env) DistanceToEnemy() int {
	d, ok := e.ctx.DistanceToClosestEnemy()
	if !ok {
		return -1
	}
	return d
}

// Threat is the normalized heatmap value at the final position.
func (e Env) Threat() float64 {
	if !e.ctx.World().Board().InsideBoard(e.final()) {
		return 0
	}
	return e.ctx.ThreatLevel(e.final())
}

// ThreatAround averages the heatmap within r hexes of the final position.
func (e Env) ThreatAround(r int) float64 {
	return e.ctx.World().Board().ThreatLevelRadius(e.final(), r)
}

// Terrain reports whether the final hex carries the named feature: woods,
// building, hazard, water or clear.
func (e Env) Terrain(kind string) bool {
	b := e.ctx.World().Board()
	p := e.final()
	if !b.InsideBoard(p) {
		return false
	}
	switch kind {
	case "woods":
		return b.HasWoods(p)
	case "building":
		return b.HasBuilding(p)
	case "hazard":
		return b.HasHazard(p)
	case "water":
		return b.HasWater(p)
	case "clear":
		return b.IsClear(p)
	}
	return false
}

// TargetArmor is the target's remaining armor fraction, 0 without a target.
func (e Env) TargetArmor() float64 {
	t, ok := e.ctx.Target()
	if !ok {
		return 0
	}
	return e.ctx.ArmorRemainingPercent(t)
}

// TargetDistance is the hex distance to the target, -1 without one.
func (e Env) TargetDistance() int {
	t, ok := e.ctx.Target()
	if !ok {
		return -1
	}
	return e.final().Distance(t.Position())
}

// TargetRole names the target's role, "" without a target.
func (e Env) TargetRole() string {
	t, ok := e.ctx.Target()
	if !ok {
		return ""
	}
	return e.ctx.UnitInfo().Role(t).String()
}

// DamageAt is the acting unit's weapon damage at range r.
func (e Env) DamageAt(r int) int { return e.ctx.UnitMaxDamageAtRange(e.ctx.Unit(), r) }

// Progress is the signed hex progress toward the destination, 0 when the
// behavior has none.
func (e Env) Progress() int {
	d, _ := e.ctx.DistanceDeltaToDestination()
	return d
}

// Committed is how many friendly units already target the target.
func (e Env) Committed() int {
	t, ok := e.ctx.Target()
	if !ok {
		return 0
	}
	return e.ctx.Goals().EnemyTargetCount(t.ID)
}
