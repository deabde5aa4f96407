package world

import (
	"testing"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/model"
)

func testState() *model.GameState {
	return &model.GameState{
		Turn:   3,
		Player: 1,
		Team:   1,
		Units: []model.Unit{
			{ID: 1, Owner: 1, Team: 1, X: 0, Y: 0},
			{ID: 2, Owner: 1, Team: 1, X: 2, Y: 0},
			{ID: 3, Owner: 5, Team: 1, X: 14, Y: 14},
			{ID: 4, Owner: 2, Team: 2, X: 8, Y: 8},
		},
		Options: map[string]bool{"double_blind": true},
	}
}

func TestNewSplitsSides(t *testing.T) {
	w := New(testState(), board.New(model.NewBoard(16, 17)))
	if len(w.MyUnits()) != 2 || len(w.AlliedUnits()) != 1 || len(w.EnemyUnits()) != 1 {
		t.Fatalf("sides = %d/%d/%d, want 2/1/1", len(w.MyUnits()), len(w.AlliedUnits()), len(w.EnemyUnits()))
	}
	if w.MyArrays().Len() != 2 || w.EnemyArrays().ID(0) != 4 {
		t.Error("snapshots do not match the unit lists")
	}
	if u, ok := w.Unit(3); !ok || u.Owner != 5 {
		t.Errorf("Unit(3) = %v,%v", u, ok)
	}
	if _, ok := w.Unit(99); ok {
		t.Error("Unit(99) found")
	}
	if !w.GameOption("double_blind") || w.GameOption("fog") {
		t.Error("GameOption mismatch")
	}
	if w.Turn() != 3 {
		t.Errorf("Turn = %d", w.Turn())
	}
}

func TestClusterCentroid(t *testing.T) {
	w := New(testState(), board.New(model.NewBoard(16, 17)))
	a, _ := w.Unit(1)
	b, _ := w.Unit(2)
	far, _ := w.Unit(3)
	foe, _ := w.Unit(4)

	if got := w.ClusterCentroid(a); got != (model.Coords{X: 1, Y: 0}) {
		t.Errorf("centroid of unit 1 = %v, want {1 0}", got)
	}
	if w.ClusterCentroid(a) != w.ClusterCentroid(b) {
		t.Error("adjacent units in different groups")
	}
	if got := w.ClusterCentroid(far); got != far.Position() {
		t.Errorf("lone unit centroid = %v, want its own position", got)
	}
	if got := w.ClusterCentroid(foe); got != foe.Position() {
		t.Errorf("enemy centroid = %v, want its own position", got)
	}
}
