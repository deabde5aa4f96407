package utility

import (
	"errors"
	"testing"

	"github.com/MegaMek/megamek-sub083/model"
)

func TestBuildRequiresProviders(t *testing.T) {
	w := testWorld()
	path := &model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 2, Y: 2}}}
	tests := []struct {
		name string
		b    ContextBuilder
	}{
		{"no world", NewContextBuilder(nil).Threat(stubThreat{}).UnitInfo(stubInfo{}).Damage(&countingCalc{})},
		{"no threat", NewContextBuilder(w).UnitInfo(stubInfo{}).Damage(&countingCalc{})},
		{"no unit info", NewContextBuilder(w).Threat(stubThreat{}).Damage(&countingCalc{})},
		{"no damage", NewContextBuilder(w).Threat(stubThreat{}).UnitInfo(stubInfo{})},
	}
	for _, tt := range tests {
		_, err := tt.b.Path(path).Build()
		if !errors.Is(err, ErrMissingProvider) {
			t.Errorf("%s: err = %v, want ErrMissingProvider", tt.name, err)
		}
	}

	if _, err := testBuilder(w).Build(); err == nil {
		t.Error("Build without a path succeeded")
	}
	stray := &model.MovePath{UnitID: 42, Steps: []model.Coords{{X: 0, Y: 0}}}
	if _, err := testBuilder(w).Path(stray).Build(); err == nil {
		t.Error("Build with an unknown acting unit succeeded")
	}
}

func TestBuildClonesPathAndDefaults(t *testing.T) {
	w := testWorld()
	path := &model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 2, Y: 2}, {X: 3, Y: 2}}}
	ctx, err := testBuilder(w).Path(path).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path.Steps[1] = model.Coords{X: 9, Y: 9}
	if got := ctx.FinalPosition(); got != (model.Coords{X: 3, Y: 2}) {
		t.Errorf("context path changed with the caller's: final = %v", got)
	}
	if ctx.Unit().ID != 1 {
		t.Errorf("acting unit = %d, want 1", ctx.Unit().ID)
	}
	if ctx.Settings() == nil || ctx.Goals() == nil || ctx.DamageCache() == nil {
		t.Error("defaults not filled in")
	}
	if _, ok := ctx.Waypoint(); ok {
		t.Error("unexpected waypoint")
	}
	if _, ok := ctx.Target(); ok {
		t.Error("unexpected target")
	}
}

func TestBuilderIsATemplate(t *testing.T) {
	w := testWorld()
	base := testBuilder(w).Action(ActionMove)
	a, _ := base.Path(&model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 1, Y: 1}}}).Build()
	b, _ := base.Action(ActionAttack).Path(&model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 4, Y: 4}}}).Build()
	if a.Action() != ActionMove || b.Action() != ActionAttack {
		t.Errorf("actions = %q, %q", a.Action(), b.Action())
	}
	if a.FinalPosition() == b.FinalPosition() {
		t.Error("contexts share a path")
	}
}

func TestDistanceToEdge(t *testing.T) {
	pos := model.Coords{X: 3, Y: 4}
	tests := []struct {
		edge model.CardinalEdge
		want int
	}{
		{model.EdgeNorth, 4},
		{model.EdgeSouth, 7},
		{model.EdgeWest, 3},
		{model.EdgeEast, 6},
		{model.EdgeNearest, 3},
		{model.EdgeNone, -1},
	}
	ctx := testContext(t) // 10×12 board
	for _, tt := range tests {
		if got := ctx.DistanceToEdge(pos, tt.edge); got != tt.want {
			t.Errorf("DistanceToEdge(%v, %v) = %d, want %d", pos, tt.edge, got, tt.want)
		}
	}
}

func TestDistanceDeltaToDestination(t *testing.T) {
	w := testWorld()
	path := &model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 2, Y: 2}, {X: 2, Y: 3}}}
	south := model.DefaultBehaviorSettings()
	south.DestinationEdge = model.EdgeSouth
	south.RetreatEdge = model.EdgeNorth
	none := model.DefaultBehaviorSettings()
	none.DestinationEdge = model.EdgeNone
	none.RetreatEdge = model.EdgeNone

	tests := []struct {
		name     string
		behavior model.BehaviorState
		settings *model.BehaviorSettings
		waypoint *model.Coords
		want     int
		ok       bool
	}{
		{"engaged", model.BehaviorEngaged, &south, nil, 0, false},
		{"waypoint", model.BehaviorMoveToDestination, &south, &model.Coords{X: 2, Y: 8}, 1, true},
		{"destination edge", model.BehaviorMoveToDestination, &south, nil, 1, true},
		{"no destination", model.BehaviorMoveToDestination, &none, nil, 0, false},
		{"withdraw", model.BehaviorForcedWithdrawal, &south, nil, -1, true},
		{"withdraw nowhere", model.BehaviorForcedWithdrawal, &none, nil, 0, false},
	}
	for _, tt := range tests {
		b := testBuilder(w).Path(path).Behavior(tt.behavior).Settings(tt.settings)
		if tt.waypoint != nil {
			b = b.Waypoint(*tt.waypoint)
		}
		ctx, err := b.Build()
		if err != nil {
			t.Fatalf("%s: Build: %v", tt.name, err)
		}
		got, ok := ctx.DistanceDeltaToDestination()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s: delta = %d,%v, want %d,%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDamageIsMemoised(t *testing.T) {
	w := testWorld()
	calc := &countingCalc{}
	cache := NewDamageCache()
	path := &model.MovePath{UnitID: 1, Steps: []model.Coords{{X: 2, Y: 2}}}
	b := testBuilder(w).Damage(calc).DamageCache(cache).Path(path)
	a, _ := b.Build()
	c, _ := b.Build()

	foe := w.enemies[0]
	a.UnitMaxDamageAtRange(foe, 3)
	c.UnitMaxDamageAtRange(foe, 3)
	if calc.calls != 1 {
		t.Errorf("calculator called %d times across contexts sharing a cache, want 1", calc.calls)
	}
	if got := a.MaxDamageFromFriendsInRange(model.Coords{X: 1, Y: 1}, 4); got != 7 {
		t.Errorf("MaxDamageFromFriendsInRange = %d, want 7", got)
	}
	c.MaxDamageFromFriendsInRange(model.Coords{X: 1, Y: 1}, 4)
	if calc.calls != 2 {
		t.Errorf("calculator called %d times, want 2", calc.calls)
	}
}
