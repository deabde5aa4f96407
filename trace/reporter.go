// Package trace records what the decision maker did: per-decision debug text
// while scoring, and compressed JSONL logs of every ranking pass.
package trace

import (
	"fmt"
	"strings"
)

// Reporter accumulates debug lines for one scoring call.
type Reporter struct {
	on bool
	b  strings.Builder
}

// NewReporter returns a reporter; a disabled one ignores Appendf.
func NewReporter(enabled bool) *Reporter { return &Reporter{on: enabled} }

func (r *Reporter) Enabled() bool { return r != nil && r.on }

func (r *Reporter) Appendf(format string, args ...any) {
	if !r.Enabled() {
		return
	}
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *Reporter) String() string { return strings.TrimSuffix(r.b.String(), "\n") }

func (r *Reporter) Reset() { r.b.Reset() }
