package datemath

import (
	"time"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/visitor"
)

// Visitor evaluates date-math candidate strings found in RangeNode
// bounds, per spec.md §4.7. Min is evaluated with lower-bound rounding,
// Max with upper-bound rounding; for a short-form RangeNode the single
// populated bound follows the operator's own polarity (`>`/`>=` are
// lower bounds, `<`/`<=` are upper bounds).
type Visitor struct {
	visitor.Base
	base time.Time
}

// New returns a Visitor that resolves "now" to base.
func New(base time.Time) *Visitor {
	v := &Visitor{base: base}
	v.Self = v
	return v
}

func (v *Visitor) VisitRange(_ *visitor.Context, n *ast.RangeNode) ast.Node {
	if n.Operator != ast.RangeOpNone {
		bound := Lower
		if n.Operator == ast.RangeOpLT || n.Operator == ast.RangeOpLE {
			bound = Upper
		}
		if n.Min != "" && n.Min != "*" {
			n.Min = v.evaluate(n.Min, bound)
		}
		if n.Max != "" && n.Max != "*" {
			n.Max = v.evaluate(n.Max, bound)
		}
		return n
	}

	if n.Min != "*" {
		n.Min = v.evaluate(n.Min, Lower)
	}
	if n.Max != "*" {
		n.Max = v.evaluate(n.Max, Upper)
	}
	return n
}

// evaluate rewrites s to a formatted instant when it's a date-math
// candidate that evaluates successfully; otherwise s is returned
// unchanged, per the (success, evaluated) contract in spec.md §4.7.
func (v *Visitor) evaluate(s string, bound Bound) string {
	if !IsCandidate(s) {
		return s
	}
	t, ok := Eval(s, v.base, bound)
	if !ok {
		return s
	}
	return Format(t)
}

var _ visitor.Visitor = (*Visitor)(nil)
