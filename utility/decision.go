package utility

import "strings"

// DecisionScoreEvaluator is a named, ordered list of considerations and the
// rule that folds them. Considerations should be ordered most decisive
// first so short-circuiting evaluators skip the rest early.
type DecisionScoreEvaluator struct {
	Name           string
	Description    string
	Notes          string
	Considerations []Consideration
	Evaluator      ScoreEvaluator // Utilitarian when nil
}

// Score runs the evaluator over the considerations.
func (e *DecisionScoreEvaluator) Score(ctx *DecisionContext, bonus float64, debug DebugReporter) float64 {
	ev := e.Evaluator
	if ev == nil {
		ev = Utilitarian{}
	}
	if debugOn(debug) {
		debug.Appendf("%s (%s)", e.Name, ev.Name())
	}
	return ev.Score(ctx, bonus, e.Considerations, debug)
}

// Decision pairs an action with the evaluator that scores it.
type Decision struct {
	Action    Action
	Weight    float64
	Evaluator *DecisionScoreEvaluator
}

// Name is "action::evaluator" with spaces replaced by underscores. It keys
// tuning and logs; it is not an identity.
func (d *Decision) Name() string {
	return strings.ReplaceAll(string(d.Action)+"::"+d.Evaluator.Name, " ", "_")
}

// Applies reports whether the decision scores ctx's candidate.
func (d *Decision) Applies(ctx *DecisionContext) bool { return ctx.Action() == d.Action }
