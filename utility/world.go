// Package utility scores candidate actions the Infinite Axis Utility System
// way: every consideration maps one situational metric through a response
// curve, an evaluator folds the responses into a single number, and a
// DecisionMaker ranks every (decision, context) pair.
package utility

import (
	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/units"
)

// World is the read-only game snapshot one scoring pass runs against.
type World interface {
	MyUnits() []*model.Unit
	AlliedUnits() []*model.Unit
	EnemyUnits() []*model.Unit

	MyArrays() *units.Arrays
	AlliedArrays() *units.Arrays
	EnemyArrays() *units.Arrays

	Board() *board.Representation
	Unit(id int) (*model.Unit, bool)
	GameOption(name string) bool
	// ClusterCentroid is the centre of the friendly group u belongs to.
	ClusterCentroid(u *model.Unit) model.Coords
}

// ThreatAssessment answers spatial questions about friendly and enemy forces.
type ThreatAssessment interface {
	FriendliesInRange(pos model.Coords, r int) int
	FriendlyIDsInRange(pos model.Coords, r int) []int
	EnemiesInRange(pos model.Coords, r int) int
	EnemyIDsInRange(pos model.Coords, r int) []int
	// EnemiesThreateningPosition counts enemies whose max weapon range
	// reaches pos.
	EnemiesThreateningPosition(pos model.Coords) int
	NClosestEnemiesPositions(pos model.Coords, k int) []model.Coords
	DistanceToClosestEnemyAtFinalPosition(path *model.MovePath) (int, bool)
	DistanceToClosestEnemyWithRole(pos model.Coords, role model.Role) (int, bool)
	ClosestVIP(pos model.Coords) (*model.Unit, bool)
	ClosestEnemy(pos model.Coords) (*model.Unit, bool)
}

// UnitInformationProvider reads per-unit facts.
type UnitInformationProvider interface {
	ArmorRemainingPercent(u *model.Unit) float64
	InternalRemainingPercent(u *model.Unit) float64
	MaxWeaponRange(u *model.Unit) int
	Role(u *model.Unit) model.Role
	IsVIP(u *model.Unit) bool
}

// DamageCalculator estimates damage output. Results are cached per turn by
// DecisionContext.
type DamageCalculator interface {
	UnitMaxDamageAtRange(u *model.Unit, rng int) int
	MaxDamageFromFriendsInRange(pos model.Coords, r int) int
}

// DebugReporter collects a human-readable trace of a scoring call. A nil
// reporter or one whose Enabled returns false costs nothing: callers check
// debugOn before formatting anything.
type DebugReporter interface {
	Enabled() bool
	Appendf(format string, args ...any)
}

func debugOn(r DebugReporter) bool { return r != nil && r.Enabled() }
