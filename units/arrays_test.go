package units

import (
	"testing"

	"github.com/MegaMek/megamek-sub083/model"
)

func sampleUnits() []*model.Unit {
	return []*model.Unit{
		{ID: 10, X: 1, Y: 2, Facing: 3, Owner: 1, Team: 1, Role: model.RoleScout,
			Weapons: []model.Weapon{{Damage: 5, MaxRange: 9}}},
		nil,
		{ID: 11, X: 4, Y: 5, Facing: 0, Owner: 2, Team: 1, Role: model.RoleSniper,
			Weapons: []model.Weapon{{Damage: 10, MaxRange: 22}, {Damage: 2, MaxRange: 3}}},
		{ID: 12, X: 7, Y: 8, Facing: 5, Owner: 3, Team: 2},
	}
}

func TestColumnsAgree(t *testing.T) {
	a := New(sampleUnits())
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	rows := a.ToArray()
	for i := range a.Indices() {
		x, y := a.XY(i)
		if x != a.X(i) || y != a.Y(i) {
			t.Errorf("XY(%d) = (%d,%d), columns say (%d,%d)", i, x, y, a.X(i), a.Y(i))
		}
		r := rows[i]
		if r.ID != a.ID(i) || r.X != a.X(i) || r.Y != a.Y(i) || r.Facing != a.Facing(i) ||
			r.Owner != a.Owner(i) || r.Team != a.Team(i) || r.MaxRange != a.MaxWeaponRange(i) || r.Role != a.Role(i) {
			t.Errorf("row %d = %+v disagrees with column getters", i, r)
		}
	}
	if a.MaxWeaponRange(1) != 22 {
		t.Errorf("MaxWeaponRange(1) = %d, want 22", a.MaxWeaponRange(1))
	}
}

func TestBulkCopies(t *testing.T) {
	a := New(sampleUnits())

	xy := make([]int, 6)
	if n := a.CopyXY(xy); n != 3 {
		t.Fatalf("CopyXY copied %d, want 3", n)
	}
	want := []int{1, 2, 4, 5, 7, 8}
	for i := range want {
		if xy[i] != want[i] {
			t.Errorf("CopyXY[%d] = %d, want %d", i, xy[i], want[i])
		}
	}

	xyf := make([]int, 9)
	a.CopyXYFacing(xyf)
	if xyf[2] != 3 || xyf[5] != 0 || xyf[8] != 5 {
		t.Errorf("CopyXYFacing facings = %d,%d,%d, want 3,0,5", xyf[2], xyf[5], xyf[8])
	}

	xyr := make([]int, 9)
	a.CopyXYRange(xyr)
	if xyr[2] != 9 || xyr[5] != 22 || xyr[8] != 0 {
		t.Errorf("CopyXYRange ranges = %d,%d,%d, want 9,22,0", xyr[2], xyr[5], xyr[8])
	}

	short := make([]int, 4)
	if n := a.CopyXYRange(short); n != 1 {
		t.Errorf("CopyXYRange into short buffer copied %d, want 1", n)
	}
}

func TestEmptySnapshot(t *testing.T) {
	var nilArrays *Arrays
	if nilArrays.Len() != 0 {
		t.Error("nil snapshot should have length 0")
	}
	a := New(nil)
	count := 0
	for range a.Indices() {
		count++
	}
	if count != 0 {
		t.Errorf("Indices() yielded %d values for empty snapshot", count)
	}
	if _, ok := a.IndexOf(1); ok {
		t.Error("IndexOf on empty snapshot should fail")
	}
}
