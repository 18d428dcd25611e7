package resolver

import (
	"fmt"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/visitor"
)

// Error names a field whose resolver callback returned an error.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Result accumulates what a traversal of Visitor observed.
type Result struct {
	UnresolvedFields map[string]bool
	Errors           []Error
}

func newResult() *Result {
	return &Result{UnresolvedFields: make(map[string]bool)}
}

// Visitor resolves the Field of every field-carrying node (FieldQueryNode,
// ExistsNode, MissingNode, RangeNode) against, in order, the traversal
// context's resolver and then its own captured resolver, per spec.md §4.5.
type Visitor struct {
	visitor.Base
	resolver visitor.FieldResolver
	result   *Result
}

// New returns a resolver.Visitor that falls back to captured when the
// context carries no FieldResolver of its own. captured may be nil.
func New(captured visitor.FieldResolver) *Visitor {
	v := &Visitor{resolver: captured, result: newResult()}
	v.Self = v
	return v
}

// Result returns what the most recent traversal observed.
func (v *Visitor) Result() *Result { return v.result }

func (v *Visitor) resolve(ctx *visitor.Context, field string) (string, bool) {
	if ctx.FieldResolver != nil {
		if resolved, ok, err := ctx.FieldResolver.ResolveField(ctx.GoContext, field); err != nil {
			v.result.Errors = append(v.result.Errors, Error{Field: field, Message: err.Error()})
		} else if ok {
			return resolved, true
		}
	}
	if v.resolver != nil {
		if resolved, ok, err := v.resolver.ResolveField(ctx.GoContext, field); err != nil {
			v.result.Errors = append(v.result.Errors, Error{Field: field, Message: err.Error()})
		} else if ok {
			return resolved, true
		}
	}
	return "", false
}

// apply resolves n's field in place, recording unresolved fields and the
// original name (for later visitors) when it changes.
func (v *Visitor) apply(ctx *visitor.Context, n ast.Fielded) {
	original := n.GetField()
	resolved, ok := v.resolve(ctx, original)
	if !ok {
		v.result.UnresolvedFields[original] = true
		return
	}
	if resolved != original {
		ctx.StashOriginalField(n, original)
		n.SetField(resolved)
	}
}

func (v *Visitor) VisitFieldQuery(ctx *visitor.Context, n *ast.FieldQueryNode) ast.Node {
	v.apply(ctx, n)
	return v.Base.VisitFieldQuery(ctx, n)
}

func (v *Visitor) VisitExists(ctx *visitor.Context, n *ast.ExistsNode) ast.Node {
	v.apply(ctx, n)
	return n
}

func (v *Visitor) VisitMissing(ctx *visitor.Context, n *ast.MissingNode) ast.Node {
	v.apply(ctx, n)
	return n
}

func (v *Visitor) VisitRange(ctx *visitor.Context, n *ast.RangeNode) ast.Node {
	if n.Field != "" {
		v.apply(ctx, n)
	}
	return n
}

var _ visitor.Visitor = (*Visitor)(nil)
