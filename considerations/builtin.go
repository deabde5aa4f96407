// Package considerations holds the tactical considerations bot profiles are
// assembled from: a fixed set of built-in metrics plus free-form
// expressions.
package considerations

import (
	"math"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/utility"
)

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// ratio returns v/scale clamped to [0,1]. A non-positive scale yields 1 for
// any positive v.
func ratio(v, scale float64) float64 {
	if scale <= 0 {
		if v > 0 {
			return 1
		}
		return 0
	}
	return clamp01(v / scale)
}

func myUnitArmor(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	return ctx.ArmorRemainingPercent(ctx.Unit())
}

func targetArmor(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	t, ok := ctx.Target()
	if !ok {
		return 0
	}
	return ctx.ArmorRemainingPercent(t)
}

// targetWithinRange is 1 when the target sits inside the acting unit's
// longest weapon range from the final hex.
func targetWithinRange(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	t, ok := ctx.Target()
	if !ok {
		return 0
	}
	if ctx.FinalPosition().Distance(t.Position()) <= ctx.UnitInfo().MaxWeaponRange(ctx.Unit()) {
		return 1
	}
	return 0
}

// distanceToClosestEnemy scales the distance by "distance" (default 20).
// No visible enemy counts as far away.
func distanceToClosestEnemy(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	d, ok := ctx.DistanceToClosestEnemy()
	if !ok {
		return 1
	}
	return ratio(float64(d), p.FloatOr("distance", 20))
}

// enemyThreat averages the threat heatmap within "radius" (default 1) of
// the final hex.
func enemyThreat(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	b := ctx.World().Board()
	pos := ctx.FinalPosition()
	if !b.InsideBoard(pos) {
		return 0
	}
	return b.ThreatLevelRadius(pos, p.IntOr("radius", 1))
}

// friendlyCrowding counts friendly units within "radius" (default 3) of the
// final hex, scaled by "max" (default 4).
func friendlyCrowding(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	n := ctx.FriendliesInRange(p.IntOr("radius", 3))
	return ratio(float64(n), p.FloatOr("max", 4))
}

// enemiesInRange counts enemies the acting unit can reach from the final
// hex, scaled by "max" (default 3).
func enemiesInRange(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	n := ctx.EnemiesInRange(ctx.UnitInfo().MaxWeaponRange(ctx.Unit()))
	return ratio(float64(n), p.FloatOr("max", 3))
}

// coverAtFinal is 1 for full cover, 0.5 for partial, 0 in the open.
func coverAtFinal(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	b := ctx.World().Board()
	pos := ctx.FinalPosition()
	if !b.InsideBoard(pos) {
		return 0
	}
	base := b.LevelAt(pos)
	height := max(ctx.Unit().Height, 1)
	switch {
	case b.HasFullCover(pos, base, height):
		return 1
	case b.HasPartialCover(pos, base, height):
		return 0.5
	}
	return 0
}

// strategicGoalProximity is 1 on a goal, falling to 0 at "distance"
// (default 12) hexes. No goals score 0.
func strategicGoalProximity(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	_, d, ok := ctx.Goals().NearestGoal(ctx.FinalPosition())
	if !ok {
		return 0
	}
	return 1 - ratio(float64(d), p.FloatOr("distance", 12))
}

// progressToDestination maps the destination delta onto [0,1] around a
// neutral 0.5, "scale" (default the path length) hexes of progress giving
// 1. Behaviors without a destination stay neutral.
func progressToDestination(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	delta, ok := ctx.DistanceDeltaToDestination()
	if !ok {
		return 0.5
	}
	scale := p.FloatOr("scale", float64(max(ctx.Path().Length(), 1)))
	return clamp01(0.5 + 0.5*float64(delta)/scale)
}

func targetIsVIP(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	t, ok := ctx.Target()
	if ok && ctx.UnitInfo().IsVIP(t) {
		return 1
	}
	return 0
}

// facingTheEnemy is 1 when the path ends facing the closest enemy and 0
// when facing directly away.
func facingTheEnemy(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	e, ok := ctx.ClosestEnemy()
	if !ok {
		return 1
	}
	want := ctx.FinalPosition().DirectionTo(e.Position())
	diff := (ctx.Path().Facing - want + 12) % 6
	diff = min(diff, 6-diff)
	return 1 - float64(diff)/3
}

// damageRatio compares what the acting unit can deal to its target (or the
// closest enemy) with what it would take back at that range. 0.5 is even.
func damageRatio(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	foe, ok := ctx.Target()
	if !ok {
		if foe, ok = ctx.ClosestEnemy(); !ok {
			return 0.5
		}
	}
	rng := ctx.FinalPosition().Distance(foe.Position())
	dealt := ctx.UnitMaxDamageAtRange(ctx.Unit(), rng)
	taken := ctx.UnitMaxDamageAtRange(foe, rng)
	if dealt+taken == 0 {
		return 0.5
	}
	return float64(dealt) / float64(dealt+taken)
}

// targetCommitment is the number of friendly units already on the target,
// scaled by "max" (default 3).
func targetCommitment(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	t, ok := ctx.Target()
	if !ok {
		return 0
	}
	return ratio(float64(ctx.Goals().EnemyTargetCount(t.ID)), p.FloatOr("max", 3))
}

// clusterCohesion is 1 at the unit's group centre, falling to 0 at
// "distance" (default 8) hexes.
func clusterCohesion(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	c := ctx.World().ClusterCentroid(ctx.Unit())
	return 1 - ratio(float64(ctx.FinalPosition().Distance(c)), p.FloatOr("distance", 8))
}

// terrainHazard is 1 on hazardous terrain, 0.5 in water, 0 otherwise.
func terrainHazard(ctx *utility.DecisionContext, _ utility.Parameters) float64 {
	b := ctx.World().Board()
	pos := ctx.FinalPosition()
	switch {
	case !b.InsideBoard(pos):
		return 0
	case b.HasHazard(pos):
		return 1
	case b.HasWater(pos):
		return 0.5
	}
	return 0
}

// elevationAdvantage is 0.5 level with the closest enemy, rising to 1 at
// "levels" (default 4) levels above it.
func elevationAdvantage(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	e, ok := ctx.ClosestEnemy()
	b := ctx.World().Board()
	pos := ctx.FinalPosition()
	if !ok || !b.InsideBoard(pos) || !b.InsideBoard(e.Position()) {
		return 0.5
	}
	diff := b.LevelDifference(e.Position(), pos)
	return clamp01(0.5 + 0.5*float64(diff)/p.FloatOr("levels", 4))
}

// nearbyRole is 1 when an enemy with role "role" is within "distance"
// (default 10) hexes, fading linearly beyond that to 0 at twice it.
func nearbyRole(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	role := model.ParseRole(p.String("role"))
	d, ok := ctx.Threat().DistanceToClosestEnemyWithRole(ctx.FinalPosition(), role)
	if !ok {
		return 0
	}
	scale := p.FloatOr("distance", 10)
	return 1 - ratio(float64(d)-scale, scale)
}

// exposure counts enemies whose weapons reach the final hex, scaled by
// "max" (default 3).
func exposure(ctx *utility.DecisionContext, p utility.Parameters) float64 {
	n := ctx.Threat().EnemiesThreateningPosition(ctx.FinalPosition())
	return ratio(float64(n), p.FloatOr("max", 3))
}
