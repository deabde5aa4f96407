package utility

import (
	"fmt"
	"math"
	"strings"

	"github.com/MegaMek/megamek-sub083/board"
	"github.com/MegaMek/megamek-sub083/neural"
)

// geometricFloor keeps a zero response from sending the log sum to -Inf.
const geometricFloor = 0.01

// ThreatFeatures is the number of threat-grid values a LearnedModel feeds
// ahead of the consideration responses.
const ThreatFeatures = board.GridSize * board.GridSize

// ScoreEvaluator folds consideration responses and a bonus into one score.
// Considerations are visited in order; the result is always finite.
type ScoreEvaluator interface {
	Name() string
	Score(ctx *DecisionContext, bonus float64, cs []Consideration, debug DebugReporter) float64
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Utilitarian multiplies the bonus by every response, stopping as soon as
// the running product is no longer positive.
type Utilitarian struct{}

func (Utilitarian) Name() string { return "Utilitarian" }

func (Utilitarian) Score(ctx *DecisionContext, bonus float64, cs []Consideration, debug DebugReporter) float64 {
	on := debugOn(debug)
	score := bonus
	for _, c := range cs {
		if !(score > 0) {
			break
		}
		raw, resp := response(c, ctx)
		score *= resp
		if on {
			debug.Appendf("  %s raw=%.4f response=%.4f running=%.4f", c.Name(), raw, resp, score)
		}
	}
	score = finite(score)
	if on {
		debug.Appendf("  utilitarian bonus=%.4f score=%.4f", bonus, score)
	}
	return score
}

// GeometricMean averages the logs of the bonus and of every response,
// floored at 0.01. Every consideration is evaluated even after a zero.
type GeometricMean struct{}

func (GeometricMean) Name() string { return "GeometricMean" }

func (GeometricMean) Score(ctx *DecisionContext, bonus float64, cs []Consideration, debug DebugReporter) float64 {
	on := debugOn(debug)
	if len(cs) == 0 {
		return finite(bonus)
	}
	logSum := 0.0
	if bonus > 0 {
		logSum = math.Log(bonus)
	}
	for _, c := range cs {
		raw, resp := response(c, ctx)
		logSum += math.Log(max(geometricFloor, resp))
		if on {
			debug.Appendf("  %s raw=%.4f response=%.4f logsum=%.4f", c.Name(), raw, resp, logSum)
		}
	}
	score := 0.0
	if bonus > 0 {
		score = finite(math.Exp(logSum / float64(len(cs))))
	}
	if on {
		debug.Appendf("  geometric mean bonus=%.4f score=%.4f", bonus, score)
	}
	return score
}

// AdjustedUtilitarian compensates the utilitarian product for the number of
// considerations: u + (1-u)·(1-1/n)·u.
type AdjustedUtilitarian struct{}

func (AdjustedUtilitarian) Name() string { return "AdjustedUtilitarian" }

func (AdjustedUtilitarian) Score(ctx *DecisionContext, bonus float64, cs []Consideration, debug DebugReporter) float64 {
	u := Utilitarian{}.Score(ctx, bonus, cs, debug)
	if len(cs) == 0 {
		return u
	}
	mod := 1 - 1/float64(len(cs))
	makeUp := (1 - u) * mod
	score := finite(u + makeUp*u)
	if debugOn(debug) {
		debug.Appendf("  adjusted factor=%.4f score=%.4f", mod, score)
	}
	return score
}

// LearnedModel feeds the 10×10 threat grid followed by one response per
// consideration into a network and returns its output. Responses stop
// filling once the running product reaches zero; later slots stay 0. The
// network's input size must be ThreatFeatures plus the consideration count.
type LearnedModel struct {
	Net *neural.Network
}

func (LearnedModel) Name() string { return "LearnedModel" }

func (m LearnedModel) Score(ctx *DecisionContext, bonus float64, cs []Consideration, debug DebugReporter) float64 {
	on := debugOn(debug)
	input := make([]float64, ThreatFeatures+len(cs))
	grid := ctx.World().Board().ThreatGrid()
	copy(input, grid[:])

	running := bonus
	for i, c := range cs {
		if !(running > 0) {
			break
		}
		raw, resp := response(c, ctx)
		input[ThreatFeatures+i] = resp
		running *= resp
		if on {
			debug.Appendf("  %s raw=%.4f response=%.4f", c.Name(), raw, resp)
		}
	}
	score := finite(m.Net.Predict(input))
	if on {
		debug.Appendf("  learned model score=%.4f", score)
	}
	return score
}

// ParseEvaluator returns the evaluator for a profile name. LearnedModel
// needs a network and is built by the caller.
func ParseEvaluator(name string) (ScoreEvaluator, error) {
	switch strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name)) {
	case "", "utilitarian":
		return Utilitarian{}, nil
	case "geometricmean":
		return GeometricMean{}, nil
	case "adjustedutilitarian":
		return AdjustedUtilitarian{}, nil
	default:
		return nil, fmt.Errorf("unknown score evaluator %q", name)
	}
}
