package utility

import (
	"github.com/MegaMek/megamek-sub083/curve"
)

// Consideration is one situational axis. Score extracts a raw metric from
// the context, usually in [0,1]; ComputeResponseCurve maps it into utility.
//
// SetCurve and SetParameters replace state wholesale and must not race with
// scoring.
type Consideration interface {
	Name() string
	Score(ctx *DecisionContext) float64
	ComputeResponseCurve(raw float64) float64
	Curve() curve.Curve
	SetCurve(curve.Curve)
	Parameters() Parameters
	SetParameters(Parameters)
}

// Base carries the state every consideration shares. Embed it and add Score.
type Base struct {
	name   string
	curve  curve.Curve
	params Parameters
}

// NewBase returns a Base.
func NewBase(name string, cv curve.Curve, params Parameters) Base {
	return Base{name: name, curve: cv, params: params}
}

func (b *Base) Name() string                           { return b.name }
func (b *Base) Curve() curve.Curve                     { return b.curve }
func (b *Base) SetCurve(cv curve.Curve)                { b.curve = cv }
func (b *Base) Parameters() Parameters                 { return b.params }
func (b *Base) SetParameters(p Parameters)             { b.params = p }
func (b *Base) ComputeResponseCurve(x float64) float64 { return b.curve.Evaluate(x) }

// ScoreFunc computes a raw score from the context and the consideration's
// current parameters.
type ScoreFunc func(ctx *DecisionContext, p Parameters) float64

type funcConsideration struct {
	Base
	fn ScoreFunc
}

// NewConsideration adapts fn into a Consideration.
func NewConsideration(name string, cv curve.Curve, params Parameters, fn ScoreFunc) Consideration {
	return &funcConsideration{Base: NewBase(name, cv, params), fn: fn}
}

func (c *funcConsideration) Score(ctx *DecisionContext) float64 { return c.fn(ctx, c.params) }

// response is the clamped curve output for one consideration.
func response(c Consideration, ctx *DecisionContext) (raw, resp float64) {
	raw = c.Score(ctx)
	return raw, curve.Clamp01(c.ComputeResponseCurve(raw))
}
