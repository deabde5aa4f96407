package considerations

import (
	"math"
	"testing"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/curve"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/strategy"
	"github.com/MegaMek/megamek-sub083/threat"
	"github.com/MegaMek/megamek-sub083/utility"
	"github.com/MegaMek/megamek-sub083/world"
)

type scene struct {
	world *world.World
	base  utility.ContextBuilder
	goals *strategy.Manager
	foe   *model.Unit
}

func newScene(t *testing.T) *scene {
	t.Helper()
	mb := model.NewBoard(16, 16)
	mb.Set(model.Coords{X: 5, Y: 5}, model.Hex{Terrain: model.Woods, Height: 3})
	mb.Set(model.Coords{X: 5, Y: 6}, model.Hex{Terrain: model.Woods, Height: 1})
	mb.Set(model.Coords{X: 6, Y: 6}, model.Hex{Terrain: model.Hazard})
	mb.Set(model.Coords{X: 2, Y: 4}, model.Hex{Level: 2})
	gs := &model.GameState{
		Player: 1,
		Team:   1,
		Units: []model.Unit{
			{
				ID: 1, Owner: 1, Team: 1, X: 2, Y: 2, Height: 1,
				Armor: 30, MaxArmor: 100,
				Weapons: []model.Weapon{{Damage: 10, MaxRange: 6}},
			},
			{
				ID: 9, Owner: 2, Team: 2, X: 2, Y: 8, Commander: true,
				Armor: 80, MaxArmor: 100,
				Weapons: []model.Weapon{{Damage: 5, MaxRange: 9}},
			},
		},
	}
	w := world.New(gs, board.New(mb))
	w.Board().UpdateThreatHeatmap(w.EnemyArrays())
	goals := strategy.NewManager()
	foe, _ := w.Unit(9)
	return &scene{
		world: w,
		goals: goals,
		foe:   foe,
		base: utility.NewContextBuilder(w).
			Threat(threat.NewAssessment(w)).
			UnitInfo(threat.UnitInfo{}).
			Damage(threat.NewDamage(w)).
			Goals(goals),
	}
}

func (s *scene) ctx(t *testing.T, facing int, steps ...model.Coords) utility.ContextBuilder {
	t.Helper()
	return s.base.Path(&model.MovePath{UnitID: 1, Steps: steps, Facing: facing})
}

func build(t *testing.T, b utility.ContextBuilder) *utility.DecisionContext {
	t.Helper()
	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ctx
}

func TestBuiltins(t *testing.T) {
	s := newScene(t)
	s.goals.AddStrategicGoal(model.Coords{X: 2, Y: 5})
	s.goals.RecordEnemyTarget(9)
	s.goals.RecordEnemyTarget(9)

	start := model.Coords{X: 2, Y: 2}
	near := model.Coords{X: 2, Y: 3}
	tests := []struct {
		kind   string
		params map[string]any
		b      utility.ContextBuilder
		want   float64
	}{
		{"MyUnitArmor", nil, s.ctx(t, 0, start, near), 0.3},
		{"TargetArmor", nil, s.ctx(t, 0, start, near).Target(s.foe), 0.8},
		{"TargetArmor", nil, s.ctx(t, 0, start, near), 0},
		{"TargetWithinRange", nil, s.ctx(t, 0, start, near).Target(s.foe), 1},
		{"TargetWithinRange", nil, s.ctx(t, 0, start, model.Coords{X: 2, Y: 1}).Target(s.foe), 0},
		{"DistanceToClosestEnemy", nil, s.ctx(t, 0, start, near), 0.25},
		{"EnemyThreat", map[string]any{"radius": 0}, s.ctx(t, 0, start, model.Coords{X: 2, Y: 8}), 1},
		{"CoverAtFinal", nil, s.ctx(t, 0, start, model.Coords{X: 5, Y: 5}), 1},
		{"CoverAtFinal", nil, s.ctx(t, 0, start, model.Coords{X: 5, Y: 6}), 0.5},
		{"CoverAtFinal", nil, s.ctx(t, 0, start, near), 0},
		{"TerrainHazard", nil, s.ctx(t, 0, start, model.Coords{X: 6, Y: 6}), 1},
		{"StrategicGoalProximity", nil, s.ctx(t, 0, start, near), 1 - 2.0/12},
		{"ProgressToDestination", nil, s.ctx(t, 0, start, near).
			Behavior(model.BehaviorMoveToDestination).Waypoint(model.Coords{X: 2, Y: 8}), 1},
		{"ProgressToDestination", nil, s.ctx(t, 0, start, near), 0.5},
		{"TargetIsVIP", nil, s.ctx(t, 0, start, near).Target(s.foe), 1},
		{"FacingTheEnemy", nil, s.ctx(t, 3, start, near), 1},
		{"FacingTheEnemy", nil, s.ctx(t, 0, start, near), 0},
		{"DamageRatio", nil, s.ctx(t, 0, start, near).Target(s.foe), 10.0 / 15},
		{"TargetCommitment", nil, s.ctx(t, 0, start, near).Target(s.foe), 2.0 / 3},
		{"ClusterCohesion", nil, s.ctx(t, 0, start, near), 1 - 1.0/8},
		{"ElevationAdvantage", nil, s.ctx(t, 0, start, model.Coords{X: 2, Y: 4}), 0.75},
		{"Exposure", nil, s.ctx(t, 0, start, near), 1.0 / 3},
		{"NearbyRole", map[string]any{"role": "none"}, s.ctx(t, 0, start, near), 1},
		{"EnemiesInRange", nil, s.ctx(t, 0, start, near), 1.0 / 3},
		{"FriendlyCrowding", nil, s.ctx(t, 0, start, near), 0.25},
	}
	for _, tt := range tests {
		c, ok, err := New(tt.kind, "", curve.NewLinear(1, 0), utility.NewParameters(tt.params))
		if !ok || err != nil {
			t.Fatalf("New(%s) = %v, %v", tt.kind, ok, err)
		}
		got := c.Score(build(t, tt.b))
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestExpression(t *testing.T) {
	s := newScene(t)
	params := utility.NewParameters(map[string]any{
		"expr": `EnemiesInRange(int(Param("r"))) + Armor`,
		"r":    10,
	})
	c, ok, err := New(ExpressionKind, "reach", curve.NewLinear(1, 0), params)
	if !ok || err != nil {
		t.Fatalf("New(Expression) = %v, %v", ok, err)
	}
	ctx := build(t, s.ctx(t, 0, model.Coords{X: 2, Y: 2}, model.Coords{X: 2, Y: 3}))
	if got := c.Score(ctx); math.Abs(got-1.3) > 1e-9 {
		t.Errorf("score = %v, want 1.3", got)
	}
	if got := c.ComputeResponseCurve(c.Score(ctx)); got != 1 {
		t.Errorf("response = %v, want clamped 1", got)
	}

	tests := []struct {
		src  string
		want float64
	}{
		{`HasTarget ? 1 : 0`, 0},
		{`DistanceToEnemy() / 10`, 0.5},
		{`Terrain("clear") ? 0.25 : 0.0`, 0.25},
		{`Progress()`, 0},
		{`MaxRange * 2`, 12},
	}
	for _, tt := range tests {
		e, err := NewExpression("e", tt.src, curve.NewLinear(1, 0), utility.Parameters{})
		if err != nil {
			t.Errorf("compile %q: %v", tt.src, err)
			continue
		}
		if got := e.Score(ctx); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%q = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestExpressionCompileErrors(t *testing.T) {
	for _, src := range []string{`Nope()`, `"text"`, `Armor +`} {
		if _, err := NewExpression("bad", src, curve.NewLinear(1, 0), utility.Parameters{}); err == nil {
			t.Errorf("NewExpression(%q) compiled", src)
		}
	}
}

func TestRegistry(t *testing.T) {
	if !Known("MyUnitArmor") || !Known(ExpressionKind) || Known("Bogus") {
		t.Error("Known mismatch")
	}
	kinds := Kinds()
	if len(kinds) != len(builtins)+1 {
		t.Errorf("Kinds has %d entries, want %d", len(kinds), len(builtins)+1)
	}
	if _, ok, _ := New("Bogus", "", curve.NewLinear(1, 0), utility.Parameters{}); ok {
		t.Error("New(Bogus) reported ok")
	}
	if _, _, err := New(ExpressionKind, "", curve.NewLinear(1, 0), utility.Parameters{}); err == nil {
		t.Error("expression without expr parameter built")
	}
	c, _, _ := New("TargetArmor", "", curve.NewLinear(1, 0), utility.Parameters{})
	if c.Name() != "TargetArmor" {
		t.Errorf("default name = %q", c.Name())
	}
}
