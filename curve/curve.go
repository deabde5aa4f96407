// Package curve provides the response curves that map a raw consideration
// measurement onto utility space. Every curve clamps its output to [0,1].
package curve

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the curve formula.
type Kind uint8

const (
	Linear Kind = iota
	Parabolic
	Logistic
	Logit
	BandPass
	BandFilter
)

var kindNames = [...]string{
	Linear:     "linear",
	Parabolic:  "parabolic",
	Logistic:   "logistic",
	Logit:      "logit",
	BandPass:   "bandpass",
	BandFilter: "bandfilter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a curve name to its Kind, ignoring case and separators.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	for i, n := range kindNames {
		if n == norm {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown curve kind %q", s)
}

// Curve is an immutable response curve. The meaning of m, b, k and c
// depends on the kind; unused parameters are ignored.
type Curve struct {
	kind       Kind
	m, b, k, c float64
}

// New builds a curve of any kind.
func New(kind Kind, m, b, k, c float64) Curve {
	return Curve{kind: kind, m: m, b: b, k: k, c: c}
}

// NewLinear returns m·x + b.
func NewLinear(m, b float64) Curve { return New(Linear, m, b, 0, 0) }

// NewParabolic returns -m·(x-b)² + k.
func NewParabolic(m, b, k float64) Curve { return New(Parabolic, m, b, k, 0) }

// NewLogistic returns m / (1+e^(-k(x-b))) + c.
func NewLogistic(m, b, k, c float64) Curve { return New(Logistic, m, b, k, c) }

// NewLogit returns b - (1/k)·ln((m-(x-c))/(x-c)).
func NewLogit(m, b, k, c float64) Curve { return New(Logit, m, b, k, c) }

// NewBandPass returns 1+c inside the band [m-b/2, m+b/2] and k outside.
func NewBandPass(m, b, k, c float64) Curve { return New(BandPass, m, b, k, c) }

// NewBandFilter returns k inside the band [m-b/2, m+b/2] and 1+c outside.
func NewBandFilter(m, b, k, c float64) Curve { return New(BandFilter, m, b, k, c) }

func (cv Curve) Kind() Kind { return cv.kind }
func (cv Curve) M() float64 { return cv.m }
func (cv Curve) B() float64 { return cv.b }
func (cv Curve) K() float64 { return cv.k }
func (cv Curve) C() float64 { return cv.c }

// WithM returns a copy of the curve with m replaced. The With* family is the
// only way to tune a curve; the receiver is never modified.
func (cv Curve) WithM(v float64) Curve {
	cv.m = v
	return cv
}

func (cv Curve) WithB(v float64) Curve {
	cv.b = v
	return cv
}

func (cv Curve) WithK(v float64) Curve {
	cv.k = v
	return cv
}

func (cv Curve) WithC(v float64) Curve {
	cv.c = v
	return cv
}

// Copy returns an independent clone.
func (cv Curve) Copy() Curve { return cv }

// Evaluate maps x into [0,1]. It never panics; malformed parameters yield
// clamped extremes and NaN collapses to 0.
func (cv Curve) Evaluate(x float64) float64 {
	switch cv.kind {
	case Linear:
		return Clamp01(cv.m*x + cv.b)
	case Parabolic:
		d := x - cv.b
		return Clamp01(-cv.m*d*d + cv.k)
	case Logistic:
		return Clamp01(cv.m/(1+math.Exp(-cv.k*(x-cv.b))) + cv.c)
	case Logit:
		if x == cv.c {
			return 0
		}
		return Clamp01(cv.b - (1/cv.k)*math.Log((cv.m-(x-cv.c))/(x-cv.c)))
	case BandPass:
		if cv.inBand(x) {
			return Clamp01(1 + cv.c)
		}
		return Clamp01(cv.k)
	case BandFilter:
		if cv.inBand(x) {
			return Clamp01(cv.k)
		}
		return Clamp01(1 + cv.c)
	}
	return 0
}

func (cv Curve) inBand(x float64) bool {
	half := cv.b / 2
	return x >= cv.m-half && x <= cv.m+half
}

func (cv Curve) String() string {
	return fmt.Sprintf("%s(m=%g, b=%g, k=%g, c=%g)", cv.kind, cv.m, cv.b, cv.k, cv.c)
}

// Clamp01 restricts v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
