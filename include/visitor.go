// Package include implements @include:name expansion: Visitor inlines a
// named saved query fragment into the AST at the point it is referenced,
// recursing into the fragment so nested includes are expanded too, with
// cycle detection and a hard depth cap.
package include

import (
	"fmt"
	"strings"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/parser"
	"github.com/lucene-ql/lqp/visitor"
)

// maxDepth is the hard include-nesting limit from spec.md §4.6.
const maxDepth = 50

// includeFieldName is the reserved field that marks an include reference;
// matched case-insensitively, per @include:name in the grammar.
const includeFieldName = "@include"

// Diagnostic is a non-fatal problem recorded while expanding includes.
type Diagnostic struct {
	Name    string
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("include %q: %s", d.Name, d.Message)
}

// Result accumulates what a traversal of Visitor observed.
type Result struct {
	ReferencedIncludes map[string]bool
	UnresolvedIncludes map[string]bool
	Diagnostics        []Diagnostic
}

func newResult() *Result {
	return &Result{
		ReferencedIncludes: make(map[string]bool),
		UnresolvedIncludes: make(map[string]bool),
	}
}

// Visitor expands @include:name references. resolver is consulted when
// the traversal context carries none of its own, mirroring the
// context-then-captured fallback resolver.Visitor uses for fields.
type Visitor struct {
	visitor.Base
	resolver visitor.IncludeResolver
	result   *Result
}

// New returns an include.Visitor that falls back to captured when the
// context carries no IncludeResolver. captured may be nil.
func New(captured visitor.IncludeResolver) *Visitor {
	v := &Visitor{resolver: captured, result: newResult()}
	v.Self = v
	return v
}

// Result returns what the most recent traversal observed.
func (v *Visitor) Result() *Result { return v.result }

func (v *Visitor) VisitFieldQuery(ctx *visitor.Context, n *ast.FieldQueryNode) ast.Node {
	if !strings.EqualFold(n.Field, includeFieldName) {
		return v.Base.VisitFieldQuery(ctx, n)
	}

	name, ok := includeName(n.Query)
	if !ok {
		return n
	}
	v.result.ReferencedIncludes[name] = true

	if ctx.SkipInclude != nil && ctx.SkipInclude(name) {
		return n
	}
	if ctx.HasInclude(name) {
		v.diag(name, "circular include")
		return n
	}
	if len(ctx.IncludeStack()) >= maxDepth {
		v.diag(name, "max include depth exceeded")
		return n
	}

	text, found, err := v.resolve(ctx, name)
	if err != nil {
		v.diag(name, err.Error())
		return n
	}
	if !found {
		v.result.UnresolvedIncludes[name] = true
		return n
	}

	res := parser.Parse(text)
	if !res.IsSuccess {
		v.diag(name, fmt.Sprintf("invalid query in include: %s", firstErrorMessage(res.Errors)))
		return n
	}
	if res.Document.Query == nil {
		return n
	}

	ctx.PushInclude(name)
	expanded := visitor.Walk(v.Self, ctx, res.Document.Query)
	ctx.PopInclude()

	return ast.NewGroupNode(expanded, int(n.Position()))
}

func (v *Visitor) resolve(ctx *visitor.Context, name string) (string, bool, error) {
	if ctx.IncludeResolver != nil {
		return ctx.IncludeResolver.ResolveInclude(ctx.GoContext, name)
	}
	if v.resolver != nil {
		return v.resolver.ResolveInclude(ctx.GoContext, name)
	}
	return "", false, nil
}

func (v *Visitor) diag(name, message string) {
	v.result.Diagnostics = append(v.result.Diagnostics, Diagnostic{Name: name, Message: message})
}

// includeName extracts the include name carried by the FieldQueryNode's
// child, which the parser produces as a TermNode ("@include:recent") or,
// if the name was quoted, a PhraseNode.
func includeName(query ast.Node) (string, bool) {
	switch n := query.(type) {
	case *ast.TermNode:
		return n.UnescapedTerm(), true
	case *ast.PhraseNode:
		return n.Phrase, true
	default:
		return "", false
	}
}

func firstErrorMessage(errs []parser.Error) string {
	if len(errs) == 0 {
		return "unknown error"
	}
	return errs[0].Error()
}

var _ visitor.Visitor = (*Visitor)(nil)
