package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/visitor"
)

// ValidationError is raised by Run when Options.ShouldThrow is set and at
// least one validation error was recorded.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("query validation failed: %s", strings.Join(e.Errors, "; "))
}

// Result is what a traversal of Visitor collected.
type Result struct {
	ReferencedFields map[string]bool
	Operations       map[string]int
	MaxNodeDepth     int
	Errors           []string
}

func newResult() *Result {
	return &Result{
		ReferencedFields: make(map[string]bool),
		Operations:       make(map[string]int),
	}
}

// Visitor is a pure observer: it never rewrites the AST, only records
// statistics and, on leading-wildcard terms, immediate errors. Apply
// post-pass restriction checks with Finish once traversal is done.
type Visitor struct {
	visitor.Base
	opts   Options
	result *Result
	depth  int
}

// New returns a Visitor configured by opts.
func New(opts Options) *Visitor {
	v := &Visitor{opts: opts, result: newResult()}
	v.Self = v
	return v
}

// Result returns what the traversal collected so far.
func (v *Visitor) Result() *Result { return v.result }

func (v *Visitor) record(field, op string) {
	if field != "" {
		v.result.ReferencedFields[field] = true
	}
	v.result.Operations[op]++
}

func (v *Visitor) VisitGroup(ctx *visitor.Context, n *ast.GroupNode) ast.Node {
	v.depth++
	if v.depth > v.result.MaxNodeDepth {
		v.result.MaxNodeDepth = v.depth
	}
	result := v.Base.VisitGroup(ctx, n)
	v.depth--
	return result
}

func (v *Visitor) VisitFieldQuery(ctx *visitor.Context, n *ast.FieldQueryNode) ast.Node {
	v.record(n.Field, "field")
	return v.Base.VisitFieldQuery(ctx, n)
}

func (v *Visitor) VisitTerm(ctx *visitor.Context, n *ast.TermNode) ast.Node {
	v.record("", "term")
	if !v.opts.AllowLeadingWildcards {
		term := n.UnescapedTerm()
		if strings.HasPrefix(term, "*") || strings.HasPrefix(term, "?") {
			v.result.Errors = append(v.result.Errors,
				fmt.Sprintf("leading wildcard not allowed: %q", term))
		}
	}
	return n
}

func (v *Visitor) VisitPhrase(ctx *visitor.Context, n *ast.PhraseNode) ast.Node {
	v.record("", "phrase")
	return n
}

func (v *Visitor) VisitRegex(ctx *visitor.Context, n *ast.RegexNode) ast.Node {
	v.record("", "regex")
	return n
}

func (v *Visitor) VisitRange(ctx *visitor.Context, n *ast.RangeNode) ast.Node {
	v.record(n.Field, "range")
	return n
}

func (v *Visitor) VisitNot(ctx *visitor.Context, n *ast.NotNode) ast.Node {
	v.record("", "not")
	return v.Base.VisitNot(ctx, n)
}

func (v *Visitor) VisitExists(ctx *visitor.Context, n *ast.ExistsNode) ast.Node {
	v.record(n.Field, "exists")
	return n
}

func (v *Visitor) VisitMissing(ctx *visitor.Context, n *ast.MissingNode) ast.Node {
	v.record(n.Field, "missing")
	return n
}

// Finish applies spec.md §4.9's post-pass restriction checks to the
// traversal's accumulated Result, appending to Result.Errors. It returns
// a *ValidationError when Options.ShouldThrow is set and any error (from
// the traversal or this pass) was recorded.
func (v *Visitor) Finish() error {
	if len(v.opts.RestrictedFields) > 0 {
		var hit []string
		for _, f := range v.opts.RestrictedFields {
			if v.result.ReferencedFields[f] {
				hit = append(hit, f)
			}
		}
		if len(hit) > 0 {
			sort.Strings(hit)
			v.result.Errors = append(v.result.Errors,
				fmt.Sprintf("restricted fields referenced: %s", strings.Join(hit, ", ")))
		}
	}

	if len(v.opts.AllowedFields) > 0 {
		var outside []string
		for f := range v.result.ReferencedFields {
			if !contains(v.opts.AllowedFields, f) {
				outside = append(outside, f)
			}
		}
		if len(outside) > 0 {
			sort.Strings(outside)
			v.result.Errors = append(v.result.Errors,
				fmt.Sprintf("fields not in allow-list: %s", strings.Join(outside, ", ")))
		}
	}

	for op := range v.result.Operations {
		if len(v.opts.AllowedOperations) > 0 && !contains(v.opts.AllowedOperations, op) {
			v.result.Errors = append(v.result.Errors, fmt.Sprintf("operation %q not in allow-list", op))
		}
		if contains(v.opts.RestrictedOperations, op) {
			v.result.Errors = append(v.result.Errors, fmt.Sprintf("operation %q is restricted", op))
		}
	}

	if v.opts.AllowedMaxNodeDepth > 0 && v.result.MaxNodeDepth > v.opts.AllowedMaxNodeDepth {
		v.result.Errors = append(v.result.Errors,
			fmt.Sprintf("max node depth %d exceeds allowed %d", v.result.MaxNodeDepth, v.opts.AllowedMaxNodeDepth))
	}

	if v.opts.ShouldThrow && len(v.result.Errors) > 0 {
		return &ValidationError{Errors: v.result.Errors}
	}
	return nil
}

var _ visitor.Visitor = (*Visitor)(nil)
