package considerations

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/MegaMek/megamek-sub083/curve"
	"github.com/MegaMek/megamek-sub083/utility"
)

// Expression scores with an expr program evaluated against Env. Numbers of
// any type are accepted; the result is converted to float64.
type Expression struct {
	utility.Base
	src     string
	program *vm.Program
}

// NewExpression compiles src. A compile error is a profile error.
func NewExpression(name, src string, cv curve.Curve, params utility.Parameters) (*Expression, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile consideration %q: %w", name, err)
	}
	return &Expression{Base: utility.NewBase(name, cv, params), src: src, program: prog}, nil
}

// Source returns the expression text.
func (e *Expression) Source() string { return e.src }

// Score runs the program. Runtime errors score 0 and are logged.
func (e *Expression) Score(ctx *utility.DecisionContext) float64 {
	out, err := vm.Run(e.program, NewEnv(ctx, e.Parameters()))
	if err != nil {
		slog.Warn("consideration expression error", "consideration", e.Name(), "error", err)
		return 0
	}
	v, ok := out.(float64)
	if !ok {
		return 0
	}
	return v
}
