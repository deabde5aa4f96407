package utility

import (
	"testing"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/curve"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/units"
)

type stubWorld struct {
	board   *board.Representation
	mine    []*model.Unit
	enemies []*model.Unit
}

func (w *stubWorld) MyUnits() []*model.Unit       { return w.mine }
func (w *stubWorld) AlliedUnits() []*model.Unit   { return nil }
func (w *stubWorld) EnemyUnits() []*model.Unit    { return w.enemies }
func (w *stubWorld) MyArrays() *units.Arrays      { return units.New(w.mine) }
func (w *stubWorld) AlliedArrays() *units.Arrays  { return units.New(nil) }
func (w *stubWorld) EnemyArrays() *units.Arrays   { return units.New(w.enemies) }
func (w *stubWorld) Board() *board.Representation { return w.board }
func (w *stubWorld) GameOption(string) bool       { return false }

func (w *stubWorld) Unit(id int) (*model.Unit, bool) {
	for _, u := range append(append([]*model.Unit(nil), w.mine...), w.enemies...) {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

func (w *stubWorld) ClusterCentroid(u *model.Unit) model.Coords { return u.Position() }

// stubThreat answers every query with nothing in range.
type stubThreat struct{}

func (stubThreat) FriendliesInRange(model.Coords, int) int     { return 0 }
func (stubThreat) FriendlyIDsInRange(model.Coords, int) []int  { return nil }
func (stubThreat) EnemiesInRange(model.Coords, int) int        { return 0 }
func (stubThreat) EnemyIDsInRange(model.Coords, int) []int     { return nil }
func (stubThreat) EnemiesThreateningPosition(model.Coords) int { return 0 }
func (stubThreat) NClosestEnemiesPositions(model.Coords, int) []model.Coords {
	return nil
}
func (stubThreat) DistanceToClosestEnemyAtFinalPosition(*model.MovePath) (int, bool) {
	return 0, false
}
func (stubThreat) DistanceToClosestEnemyWithRole(model.Coords, model.Role) (int, bool) {
	return 0, false
}
func (stubThreat) ClosestVIP(model.Coords) (*model.Unit, bool)   { return nil, false }
func (stubThreat) ClosestEnemy(model.Coords) (*model.Unit, bool) { return nil, false }

type stubInfo struct{}

func (stubInfo) ArmorRemainingPercent(u *model.Unit) float64    { return u.ArmorRemainingPercent() }
func (stubInfo) InternalRemainingPercent(u *model.Unit) float64 { return u.InternalRemainingPercent() }
func (stubInfo) MaxWeaponRange(u *model.Unit) int               { return u.MaxWeaponRange() }
func (stubInfo) Role(u *model.Unit) model.Role                  { return u.Role }
func (stubInfo) IsVIP(u *model.Unit) bool                       { return u.IsVIP() }

// countingCalc counts how often the calculator itself is consulted.
type countingCalc struct{ calls int }

func (c *countingCalc) UnitMaxDamageAtRange(u *model.Unit, rng int) int {
	c.calls++
	return u.DamageAtRange(rng)
}

func (c *countingCalc) MaxDamageFromFriendsInRange(model.Coords, int) int {
	c.calls++
	return 7
}

func testWorld() *stubWorld {
	me := &model.Unit{ID: 1, Owner: 1, Team: 1, X: 2, Y: 2, Armor: 50, MaxArmor: 100}
	foe := &model.Unit{ID: 9, Owner: 2, Team: 2, X: 6, Y: 6}
	return &stubWorld{
		board:   board.New(model.NewBoard(10, 12)),
		mine:    []*model.Unit{me},
		enemies: []*model.Unit{foe},
	}
}

func testBuilder(w World) ContextBuilder {
	return NewContextBuilder(w).
		Threat(stubThreat{}).
		UnitInfo(stubInfo{}).
		Damage(&countingCalc{})
}

func testContext(t *testing.T) *DecisionContext {
	t.Helper()
	path := &model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 2, Y: 2}, {X: 2, Y: 3}}}
	ctx, err := testBuilder(testWorld()).Path(path).Action(ActionMove).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ctx
}

// fixed returns a consideration whose response is v.
func fixed(name string, v float64) Consideration {
	return NewConsideration(name, curve.NewLinear(1, 0), Parameters{}, func(*DecisionContext, Parameters) float64 {
		return v
	})
}

// counting wraps a consideration and counts Score calls.
type counting struct {
	Consideration
	calls int
}

func (c *counting) Score(ctx *DecisionContext) float64 {
	c.calls++
	return c.Consideration.Score(ctx)
}

// textReporter is an enabled DebugReporter keeping every line.
type textReporter struct{ lines []string }

func (r *textReporter) Enabled() bool { return true }
func (r *textReporter) Appendf(format string, args ...any) {
	r.lines = append(r.lines, format)
}

func curveIdentity() curve.Curve { return curve.NewLinear(1, 0) }
