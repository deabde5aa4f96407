package utility

import "container/heap"

// ScoredDecision is one ranked outcome.
type ScoredDecision struct {
	Score    float64
	Decision *Decision
	Context  *DecisionContext
	Trace    string // debug text, empty unless tracing

	seq int
}

// Before orders by descending score, then by insertion.
func (s ScoredDecision) Before(o ScoredDecision) bool {
	if s.Score != o.Score {
		return s.Score > o.Score
	}
	return s.seq < o.seq
}

type scoredHeap []ScoredDecision

func (h scoredHeap) Len() int           { return len(h) }
func (h scoredHeap) Less(i, j int) bool { return h[i].Before(h[j]) }
func (h scoredHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *scoredHeap) Push(x any)        { *h = append(*h, x.(ScoredDecision)) }
func (h *scoredHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Ranking is a max-priority queue of scored decisions.
type Ranking struct {
	h    scoredHeap
	next int
}

// Push adds sd, stamping its insertion order.
func (r *Ranking) Push(sd ScoredDecision) {
	sd.seq = r.next
	r.next++
	heap.Push(&r.h, sd)
}

// Len is the number of queued decisions.
func (r *Ranking) Len() int { return r.h.Len() }

// Peek returns the best decision without removing it.
func (r *Ranking) Peek() (ScoredDecision, bool) {
	if r.h.Len() == 0 {
		return ScoredDecision{}, false
	}
	return r.h[0], true
}

// Pop removes and returns the best decision.
func (r *Ranking) Pop() (ScoredDecision, bool) {
	if r.h.Len() == 0 {
		return ScoredDecision{}, false
	}
	return heap.Pop(&r.h).(ScoredDecision), true
}

// Sorted returns every decision best first without consuming the ranking.
func (r *Ranking) Sorted() []ScoredDecision {
	cp := Ranking{h: append(scoredHeap(nil), r.h...)}
	out := make([]ScoredDecision, 0, cp.Len())
	for {
		sd, ok := cp.Pop()
		if !ok {
			return out
		}
		out = append(out, sd)
	}
}
