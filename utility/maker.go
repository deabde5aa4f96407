package utility

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// BonusFunc supplies the bonus a decision is scored with in one context.
type BonusFunc func(d *Decision, ctx *DecisionContext) float64

// DecisionMaker ranks decisions across candidate contexts.
type DecisionMaker struct {
	// Bonus defaults to the decision weight.
	Bonus BonusFunc
	// Reporter, when set, makes a fresh reporter per scored pair. Its text
	// is kept in ScoredDecision.Trace if it implements fmt.Stringer.
	Reporter func() DebugReporter
	// Workers > 1 scores contexts concurrently. Contexts must not share
	// anything but read-only snapshots and the synchronized damage cache.
	Workers int
}

// commitCap is the target count at which CommitmentBonus saturates.
const commitCap = 4

// CommitmentBonus scales the decision weight by how many friendly units are
// already committed to the context's target this turn. FocusFire above 0.5
// favours piling on, below 0.5 favours spreading out; the factor stays in
// [0.5, 1.5]. Contexts without a target get the plain weight.
func CommitmentBonus(d *Decision, ctx *DecisionContext) float64 {
	t, ok := ctx.Target()
	if !ok {
		return d.Weight
	}
	n := min(ctx.Goals().EnemyTargetCount(t.ID), commitCap)
	lean := ctx.Settings().FocusFire - 0.5
	return d.Weight * (1 + lean*float64(n)/commitCap)
}

func (m *DecisionMaker) bonus(d *Decision, ctx *DecisionContext) float64 {
	if m.Bonus != nil {
		return m.Bonus(d, ctx)
	}
	return d.Weight
}

// scoreContext appends every applicable decision's outcome for ctx.
func (m *DecisionMaker) scoreContext(decisions []*Decision, ctx *DecisionContext, out []ScoredDecision) []ScoredDecision {
	for _, d := range decisions {
		if !d.Applies(ctx) {
			continue
		}
		var rep DebugReporter
		if m.Reporter != nil {
			rep = m.Reporter()
		}
		bonus := m.bonus(d, ctx)
		score := d.Evaluator.Score(ctx, bonus, rep)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			slog.Warn("dropping non-finite score", "decision", d.Name(), "unit", ctx.Unit().ID, "score", score)
			continue
		}
		sd := ScoredDecision{Score: score, Decision: d, Context: ctx}
		if s, ok := rep.(fmt.Stringer); ok && debugOn(rep) {
			sd.Trace = s.String()
		}
		out = append(out, sd)
	}
	return out
}

// ScoreAllDecisions scores every decision against every context it applies
// to. Ties keep context order, then decision order, regardless of Workers.
func (m *DecisionMaker) ScoreAllDecisions(decisions []*Decision, contexts []*DecisionContext) *Ranking {
	r := &Ranking{}
	if m.Workers <= 1 || len(contexts) < 2 {
		var buf []ScoredDecision
		for _, ctx := range contexts {
			buf = m.scoreContext(decisions, ctx, buf[:0])
			for _, sd := range buf {
				r.Push(sd)
			}
		}
		return r
	}

	results := make([][]ScoredDecision, len(contexts))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(m.Workers, len(contexts)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = m.scoreContext(decisions, contexts[i], nil)
			}
		}()
	}
	for i := range contexts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, res := range results {
		for _, sd := range res {
			r.Push(sd)
		}
	}
	return r
}

// PickOne returns the best decision, or false when nothing scored.
func (m *DecisionMaker) PickOne(r *Ranking) (ScoredDecision, bool) { return r.Peek() }
