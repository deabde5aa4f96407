package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/trace"
)

func pass(turn, unit int, at time.Time, decisions ...string) trace.Pass {
	p := trace.Pass{
		ID:         uuid.New(),
		Time:       at,
		Turn:       turn,
		Unit:       unit,
		Profile:    "Balanced",
		Candidates: len(decisions),
		Elapsed:    3 * time.Millisecond,
	}
	for i, d := range decisions {
		p.Entries = append(p.Entries, trace.Entry{
			Rank:      i + 1,
			Decision:  d,
			Score:     1 / float64(i+1),
			Candidate: i,
			Final:     model.Coords{X: i, Y: 2 * i},
			Steps:     i,
		})
	}
	return p
}

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSaveAndQuery(t *testing.T) {
	s, _ := openTemp(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	passes := []trace.Pass{
		pass(1, 7, base, "move::Advance", "attack::Engage"),
		pass(1, 8, base.Add(time.Second), "attack::Engage"),
		pass(2, 7, base.Add(2*time.Second), "move::Advance", "move::Withdraw", "attack::Engage"),
	}
	for _, p := range passes {
		if err := s.SavePass(p); err != nil {
			t.Fatalf("SavePass: %v", err)
		}
	}

	recent, err := s.RecentPasses(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != passes[2].ID.String() || recent[1].Unit != 8 {
		t.Errorf("RecentPasses = %+v", recent)
	}
	if recent[0].Elapsed() != 3*time.Millisecond || !recent[0].Created().Equal(base.Add(2*time.Second)) {
		t.Errorf("pass times = %v, %v", recent[0].Elapsed(), recent[0].Created())
	}

	mine, err := s.PassesForUnit(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 || mine[0].Turn != 1 || mine[1].Turn != 2 {
		t.Errorf("PassesForUnit(7) = %+v", mine)
	}

	ds, err := s.Decisions(passes[2].ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 3 || ds[0].Decision != "move::Advance" || ds[2].FinalY != 4 || ds[1].Score != 0.5 {
		t.Errorf("Decisions = %+v", ds)
	}

	wins, err := s.Wins(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []WinCount{{"move::Advance", 2}, {"attack::Engage", 1}}
	if len(wins) != len(want) || wins[0] != want[0] || wins[1] != want[1] {
		t.Errorf("Wins(0) = %+v, want %+v", wins, want)
	}
	if late, _ := s.Wins(2); len(late) != 1 || late[0].Wins != 1 {
		t.Errorf("Wins(2) = %+v", late)
	}

	if turn, err := s.LastTurn(); err != nil || turn != 2 {
		t.Errorf("LastTurn = %d, %v", turn, err)
	}
}

func TestDuplicatePassRejected(t *testing.T) {
	s, _ := openTemp(t)
	p := pass(1, 7, time.Now(), "move::Advance")
	if err := s.SavePass(p); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePass(p); err == nil {
		t.Error("saving the same pass twice succeeded")
	}
	ds, err := s.Decisions(p.ID.String())
	if err != nil || len(ds) != 1 {
		t.Errorf("failed insert left %d decisions, %v", len(ds), err)
	}
}

func TestEmptyStoreAndReopen(t *testing.T) {
	s, path := openTemp(t)
	if turn, err := s.LastTurn(); err != nil || turn != 0 {
		t.Errorf("empty LastTurn = %d, %v", turn, err)
	}
	if err := s.SavePass(pass(5, 1, time.Now(), "move::Advance")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	again, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	if turn, err := again.LastTurn(); err != nil || turn != 5 {
		t.Errorf("reopened LastTurn = %d, %v", turn, err)
	}
}
