// Package builder implements QueryStringBuilder: a visitor that renders
// an AST back to Lucene query syntax, satisfying the round-trip
// invariant that parsing its output reproduces a structurally equal
// AST (modulo whitespace normalization), per spec.md §4.8.
package builder

import (
	"strconv"
	"strings"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/visitor"
)

// Visitor accumulates rendered text into buf as it walks an AST. Every
// handler is implemented directly rather than inherited from
// visitor.Base, since rendering has no "default" traversal to fall
// back to.
type Visitor struct {
	visitor.Base
	buf strings.Builder
}

// New returns an empty Visitor.
func New() *Visitor {
	v := &Visitor{}
	v.Self = v
	return v
}

// String returns everything rendered so far.
func (v *Visitor) String() string { return v.buf.String() }

// Build renders doc in one call via a fresh Visitor.
func Build(ctx *visitor.Context, doc *ast.QueryDocument) string {
	v := New()
	visitor.Walk(v, ctx, doc)
	return v.String()
}

func (v *Visitor) write(s string) { v.buf.WriteString(s) }

func (v *Visitor) VisitQueryDocument(ctx *visitor.Context, n *ast.QueryDocument) ast.Node {
	if n.Query != nil {
		visitor.Walk(v.Self, ctx, n.Query)
	}
	return n
}

func (v *Visitor) VisitGroup(ctx *visitor.Context, n *ast.GroupNode) ast.Node {
	v.write(n.Prefix.String())
	if n.Field != "" {
		v.write(n.Field)
		v.write(":")
	}
	v.write("(")
	if n.Child != nil {
		visitor.Walk(v.Self, ctx, n.Child)
	}
	v.write(")")
	writeBoost(v, n.Boost)
	return n
}

func (v *Visitor) VisitBooleanQuery(ctx *visitor.Context, n *ast.BooleanQueryNode) ast.Node {
	v.write(n.LeftPrefix.String())
	visitor.Walk(v.Self, ctx, n.Left)
	v.write(" ")
	v.write(n.Op.String())
	v.write(" ")
	v.write(n.RightPrefix.String())
	visitor.Walk(v.Self, ctx, n.Right)
	return n
}

func (v *Visitor) VisitNot(ctx *visitor.Context, n *ast.NotNode) ast.Node {
	v.write("NOT ")
	visitor.Walk(v.Self, ctx, n.Child)
	return n
}

func (v *Visitor) VisitFieldQuery(ctx *visitor.Context, n *ast.FieldQueryNode) ast.Node {
	v.write(n.Prefix.String())
	v.write(n.Field)
	v.write(":")
	if n.Query != nil {
		visitor.Walk(v.Self, ctx, n.Query)
	}
	writeBoost(v, n.Boost)
	return n
}

func (v *Visitor) VisitTerm(ctx *visitor.Context, n *ast.TermNode) ast.Node {
	v.write(n.Prefix.String())
	v.write(ast.Escape(n.UnescapedTerm()))
	writeBoost(v, n.Boost)
	writeSlop(v, n.Proximity)
	return n
}

func (v *Visitor) VisitPhrase(ctx *visitor.Context, n *ast.PhraseNode) ast.Node {
	v.write(`"`)
	v.write(ast.EscapePhrase(n.Phrase))
	v.write(`"`)
	writeSlop(v, n.Proximity)
	return n
}

func (v *Visitor) VisitRegex(ctx *visitor.Context, n *ast.RegexNode) ast.Node {
	v.write("/")
	v.write(n.Source)
	v.write("/")
	return n
}

func (v *Visitor) VisitRange(ctx *visitor.Context, n *ast.RangeNode) ast.Node {
	if n.IsShortForm() {
		v.write(n.Operator.String())
		switch n.Operator {
		case ast.RangeOpLT, ast.RangeOpLE:
			v.write(n.Max)
		default:
			v.write(n.Min)
		}
		return n
	}

	if n.MinInclusive {
		v.write("[")
	} else {
		v.write("{")
	}
	v.write(boundOrStar(n.Min))
	v.write(" TO ")
	v.write(boundOrStar(n.Max))
	if n.MaxInclusive {
		v.write("]")
	} else {
		v.write("}")
	}
	return n
}

func (v *Visitor) VisitMultiTerm(ctx *visitor.Context, n *ast.MultiTermNode) ast.Node {
	v.write("(")
	for i, term := range n.Terms {
		if i > 0 {
			v.write(" ")
		}
		visitor.Walk(v.Self, ctx, term)
	}
	v.write(")")
	return n
}

func (v *Visitor) VisitExists(ctx *visitor.Context, n *ast.ExistsNode) ast.Node {
	v.write("_exists_:")
	v.write(n.Field)
	return n
}

func (v *Visitor) VisitMissing(ctx *visitor.Context, n *ast.MissingNode) ast.Node {
	v.write("_missing_:")
	v.write(n.Field)
	return n
}

func (v *Visitor) VisitMatchAll(ctx *visitor.Context, n *ast.MatchAllNode) ast.Node {
	v.write("*:*")
	return n
}

func boundOrStar(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func writeBoost(v *Visitor, boost *float64) {
	if boost == nil {
		return
	}
	v.write("^")
	v.write(formatNumber(*boost))
}

func writeSlop(v *Visitor, slop *float64) {
	if slop == nil {
		return
	}
	v.write("~")
	v.write(formatNumber(*slop))
}

// formatNumber renders a boost/slop value the way it's normally written
// in query text: as a bare integer when there's no fractional part,
// otherwise the shortest decimal that round-trips.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var _ visitor.Visitor = (*Visitor)(nil)
