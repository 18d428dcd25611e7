// Package visitor implements the single-dispatch traversal framework over
// the ast package's closed node set: a Visitor interface with one handler
// per variant, a context threaded through a traversal, and a priority
// ordered chain for composing multiple visitors over one document.
package visitor

import (
	"fmt"

	"github.com/lucene-ql/lqp/ast"
)

// Visitor bundles one handler per AST variant. A handler may mutate its
// node in place and return it, or return a replacement node; the caller
// re-links whatever is returned into the parent's child slot.
type Visitor interface {
	VisitQueryDocument(ctx *Context, n *ast.QueryDocument) ast.Node
	VisitGroup(ctx *Context, n *ast.GroupNode) ast.Node
	VisitBooleanQuery(ctx *Context, n *ast.BooleanQueryNode) ast.Node
	VisitNot(ctx *Context, n *ast.NotNode) ast.Node
	VisitFieldQuery(ctx *Context, n *ast.FieldQueryNode) ast.Node
	VisitTerm(ctx *Context, n *ast.TermNode) ast.Node
	VisitPhrase(ctx *Context, n *ast.PhraseNode) ast.Node
	VisitRegex(ctx *Context, n *ast.RegexNode) ast.Node
	VisitRange(ctx *Context, n *ast.RangeNode) ast.Node
	VisitMultiTerm(ctx *Context, n *ast.MultiTermNode) ast.Node
	VisitExists(ctx *Context, n *ast.ExistsNode) ast.Node
	VisitMissing(ctx *Context, n *ast.MissingNode) ast.Node
	VisitMatchAll(ctx *Context, n *ast.MatchAllNode) ast.Node
}

// Walk dispatches n to the matching handler on v. nil is returned
// unchanged (a node slot that was already empty, e.g. an empty
// QueryDocument body).
func Walk(v Visitor, ctx *Context, n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	switch t := n.(type) {
	case *ast.QueryDocument:
		return v.VisitQueryDocument(ctx, t)
	case *ast.GroupNode:
		return v.VisitGroup(ctx, t)
	case *ast.BooleanQueryNode:
		return v.VisitBooleanQuery(ctx, t)
	case *ast.NotNode:
		return v.VisitNot(ctx, t)
	case *ast.FieldQueryNode:
		return v.VisitFieldQuery(ctx, t)
	case *ast.TermNode:
		return v.VisitTerm(ctx, t)
	case *ast.PhraseNode:
		return v.VisitPhrase(ctx, t)
	case *ast.RegexNode:
		return v.VisitRegex(ctx, t)
	case *ast.RangeNode:
		return v.VisitRange(ctx, t)
	case *ast.MultiTermNode:
		return v.VisitMultiTerm(ctx, t)
	case *ast.ExistsNode:
		return v.VisitExists(ctx, t)
	case *ast.MissingNode:
		return v.VisitMissing(ctx, t)
	case *ast.MatchAllNode:
		return v.VisitMatchAll(ctx, t)
	default:
		panic(fmt.Sprintf("visitor: unhandled node type %T", n))
	}
}

// Base implements Visitor with the default recursive traversal: walk into
// children through Self (not through Base's own methods), so that a
// concrete visitor embedding Base only needs to override the handlers it
// cares about and still gets its overrides applied to descendants. Self
// must be set to the embedding visitor; the New constructors of the
// built-in visitors in sibling packages always do this.
type Base struct {
	Self Visitor
}

func (b *Base) self() Visitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b *Base) VisitQueryDocument(ctx *Context, n *ast.QueryDocument) ast.Node {
	if n.Query != nil {
		n.Query = Walk(b.self(), ctx, n.Query)
	}
	return n
}

func (b *Base) VisitGroup(ctx *Context, n *ast.GroupNode) ast.Node {
	if n.Child != nil {
		n.Child = Walk(b.self(), ctx, n.Child)
	}
	return n
}

func (b *Base) VisitBooleanQuery(ctx *Context, n *ast.BooleanQueryNode) ast.Node {
	if n.Left != nil {
		n.Left = Walk(b.self(), ctx, n.Left)
	}
	if n.Right != nil {
		n.Right = Walk(b.self(), ctx, n.Right)
	}
	return n
}

func (b *Base) VisitNot(ctx *Context, n *ast.NotNode) ast.Node {
	if n.Child != nil {
		n.Child = Walk(b.self(), ctx, n.Child)
	}
	return n
}

func (b *Base) VisitFieldQuery(ctx *Context, n *ast.FieldQueryNode) ast.Node {
	if n.Query != nil {
		n.Query = Walk(b.self(), ctx, n.Query)
	}
	return n
}

func (b *Base) VisitMultiTerm(ctx *Context, n *ast.MultiTermNode) ast.Node {
	for i, term := range n.Terms {
		n.Terms[i] = Walk(b.self(), ctx, term)
	}
	return n
}

// Leaf variants have no children to recurse into; the default handler is
// the identity.
func (b *Base) VisitTerm(ctx *Context, n *ast.TermNode) ast.Node       { return n }
func (b *Base) VisitPhrase(ctx *Context, n *ast.PhraseNode) ast.Node   { return n }
func (b *Base) VisitRegex(ctx *Context, n *ast.RegexNode) ast.Node     { return n }
func (b *Base) VisitRange(ctx *Context, n *ast.RangeNode) ast.Node     { return n }
func (b *Base) VisitExists(ctx *Context, n *ast.ExistsNode) ast.Node   { return n }
func (b *Base) VisitMissing(ctx *Context, n *ast.MissingNode) ast.Node { return n }
func (b *Base) VisitMatchAll(ctx *Context, n *ast.MatchAllNode) ast.Node {
	return n
}

var _ Visitor = (*Base)(nil)
