// Package lqp is the façade over the query-parsing core: Parse/MustParse
// plus re-exports of the AST, visitor framework, and built-in visitors,
// so a simple embedder never needs to import the subpackages directly.
package lqp

import (
	"fmt"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/builder"
	"github.com/lucene-ql/lqp/datemath"
	"github.com/lucene-ql/lqp/include"
	"github.com/lucene-ql/lqp/parser"
	"github.com/lucene-ql/lqp/resolver"
	"github.com/lucene-ql/lqp/validate"
	"github.com/lucene-ql/lqp/visitor"
)

// Result is parser.Result, re-exported so callers don't need to import
// the parser package just to name the return type.
type Result = parser.Result

// Parse lexes and parses text, returning a best-effort AST and any
// syntax errors. It never panics or returns a nil Document for
// non-empty input, per spec.md §4.2.
func Parse(text string) *Result {
	return parser.Parse(text)
}

// MustParse parses text and panics if the result is not fully
// successful. Intended for tests and trusted call sites, not for
// parsing untrusted input.
func MustParse(text string) *ast.QueryDocument {
	res := parser.Parse(text)
	if !res.IsSuccess {
		panic(fmt.Sprintf("lqp: parse error: %v", res.Errors))
	}
	return res.Document
}

// Re-exported AST types.
type (
	Node             = ast.Node
	QueryDocument    = ast.QueryDocument
	GroupNode        = ast.GroupNode
	BooleanQueryNode = ast.BooleanQueryNode
	NotNode          = ast.NotNode
	FieldQueryNode   = ast.FieldQueryNode
	TermNode         = ast.TermNode
	PhraseNode       = ast.PhraseNode
	RegexNode        = ast.RegexNode
	RangeNode        = ast.RangeNode
	MultiTermNode    = ast.MultiTermNode
	ExistsNode       = ast.ExistsNode
	MissingNode      = ast.MissingNode
	MatchAllNode     = ast.MatchAllNode
)

// Re-exported visitor framework types.
type (
	Visitor = visitor.Visitor
	Context = visitor.Context
	Chain   = visitor.Chain
)

// Walk dispatches n to v's matching handler, re-exporting visitor.Walk.
func Walk(v Visitor, ctx *Context, n Node) Node {
	return visitor.Walk(v, ctx, n)
}

// NewContext re-exports visitor.NewContext.
var NewContext = visitor.NewContext

// NewChain re-exports visitor.NewChain.
var NewChain = visitor.NewChain

// Built-in visitor constructors, re-exported so a caller composing a
// Chain doesn't need five subpackage imports for the common case.
var (
	NewFieldResolver       = resolver.New
	NewFieldMap            = resolver.NewFieldMap
	NewIncludeVisitor      = include.New
	NewFileIncludeResolver = include.NewFileResolver
	NewDateMathVisitor     = datemath.New
	NewValidator           = validate.New
	NewQueryStringBuilder  = builder.New
)

// BuildQueryString renders doc back to Lucene query syntax.
func BuildQueryString(ctx *Context, doc *QueryDocument) string {
	return builder.Build(ctx, doc)
}

// ValidateOptions and ValidateResult re-export the validate package's
// configuration and result types.
type (
	ValidateOptions = validate.Options
	ValidateResult  = validate.Result
)

// Validate runs a validate.Visitor over doc and applies its post-pass
// checks in one call.
func Validate(ctx *Context, doc *QueryDocument, opts ValidateOptions) (*ValidateResult, error) {
	return validate.Run(ctx, doc, opts)
}
