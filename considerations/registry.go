package considerations

import (
	"errors"
	"maps"
	"slices"

	"github.com/MegaMek/megamek-sub083/curve"
	"github.com/MegaMek/megamek-sub083/utility"
)

// ExpressionKind is the profile type of expression considerations. Their
// source goes in the "expr" parameter.
const ExpressionKind = "Expression"

// builtins is the static registry of built-in consideration types.
var builtins = map[string]utility.ScoreFunc{
	"MyUnitArmor":            myUnitArmor,
	"TargetArmor":            targetArmor,
	"TargetWithinRange":      targetWithinRange,
	"DistanceToClosestEnemy": distanceToClosestEnemy,
	"EnemyThreat":            enemyThreat,
	"FriendlyCrowding":       friendlyCrowding,
	"EnemiesInRange":         enemiesInRange,
	"CoverAtFinal":           coverAtFinal,
	"StrategicGoalProximity": strategicGoalProximity,
	"ProgressToDestination":  progressToDestination,
	"TargetIsVIP":            targetIsVIP,
	"FacingTheEnemy":         facingTheEnemy,
	"DamageRatio":            damageRatio,
	"TargetCommitment":       targetCommitment,
	"ClusterCohesion":        clusterCohesion,
	"TerrainHazard":          terrainHazard,
	"ElevationAdvantage":     elevationAdvantage,
	"NearbyRole":             nearbyRole,
	"Exposure":               exposure,
}

// Known reports whether kind names a built-in or the expression type.
func Known(kind string) bool {
	_, ok := builtins[kind]
	return ok || kind == ExpressionKind
}

// Kinds lists every consideration type, sorted.
func Kinds() []string {
	kinds := append(slices.Collect(maps.Keys(builtins)), ExpressionKind)
	slices.Sort(kinds)
	return kinds
}

// New builds a consideration of the given type. The returned bool is false
// for unknown types; err is set when an expression fails to compile.
func New(kind, name string, cv curve.Curve, params utility.Parameters) (utility.Consideration, bool, error) {
	if kind == ExpressionKind {
		if !params.Has("expr") {
			return nil, true, errors.New("expression consideration without an expr parameter")
		}
		if name == "" {
			name = kind
		}
		c, err := NewExpression(name, params.String("expr"), cv, params)
		if err != nil {
			return nil, true, err
		}
		return c, true, nil
	}
	fn, ok := builtins[kind]
	if !ok {
		return nil, false, nil
	}
	if name == "" {
		name = kind
	}
	return utility.NewConsideration(name, cv, params, fn), true, nil
}
