package trace

import (
	"time"

	"github.com/google/uuid"

	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/utility"
)

// Entry is one ranked decision.
type Entry struct {
	Rank      int          `json:"rank"`
	Decision  string       `json:"decision"`
	Action    string       `json:"action"`
	Score     float64      `json:"score"`
	Candidate int          `json:"candidate"` // index into the candidate paths
	Final     model.Coords `json:"final"`
	Steps     int          `json:"steps"`
	Target    int          `json:"target,omitempty"`
	Trace     string       `json:"trace,omitempty"`
}

// Pass is the record of one scoring pass for one acting unit.
type Pass struct {
	ID         uuid.UUID     `json:"id"`
	Time       time.Time     `json:"time"`
	Turn       int           `json:"turn"`
	Unit       int           `json:"unit"`
	Profile    string        `json:"profile"`
	Candidates int           `json:"candidates"`
	Elapsed    time.Duration `json:"elapsed"`
	Entries    []Entry       `json:"entries"`
}

// Best returns the top entry, if any.
func (p Pass) Best() (Entry, bool) {
	if len(p.Entries) == 0 {
		return Entry{}, false
	}
	return p.Entries[0], true
}

// Top returns a copy holding at most the n best entries; n <= 0 keeps all.
func (p Pass) Top(n int) Pass {
	if n > 0 && len(p.Entries) > n {
		p.Entries = p.Entries[:n:n]
	}
	return p
}

// NewPass snapshots a ranking, best first. contexts are the candidates in
// the order they were scored.
func NewPass(turn, unit int, profile string, contexts []*utility.DecisionContext, r *utility.Ranking) Pass {
	index := make(map[*utility.DecisionContext]int, len(contexts))
	for i, c := range contexts {
		index[c] = i
	}
	p := Pass{
		ID:         uuid.New(),
		Time:       time.Now().UTC(),
		Turn:       turn,
		Unit:       unit,
		Profile:    profile,
		Candidates: len(contexts),
	}
	for i, sd := range r.Sorted() {
		e := Entry{
			Rank:      i + 1,
			Decision:  sd.Decision.Name(),
			Action:    string(sd.Decision.Action),
			Score:     sd.Score,
			Candidate: index[sd.Context],
			Final:     sd.Context.FinalPosition(),
			Steps:     sd.Context.Path().Length(),
			Trace:     sd.Trace,
		}
		if t, ok := sd.Context.Target(); ok {
			e.Target = t.ID
		}
		p.Entries = append(p.Entries, e)
	}
	return p
}
