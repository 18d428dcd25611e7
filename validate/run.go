package validate

import (
	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/visitor"
)

// Run walks doc with a fresh Visitor built from opts and applies
// Finish, returning the collected Result and the error Finish produced
// (nil unless opts.ShouldThrow and a violation was found).
func Run(ctx *visitor.Context, doc *ast.QueryDocument, opts Options) (*Result, error) {
	v := New(opts)
	visitor.Walk(v, ctx, doc)
	err := v.Finish()
	return v.Result(), err
}
