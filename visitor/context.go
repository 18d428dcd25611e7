package visitor

import (
	"context"

	"github.com/lucene-ql/lqp/ast"
)

// FieldResolver maps an input field name to an output field name. It may
// perform I/O (a lookup against a config service, say), hence the
// context.Context and error return; resolver.FieldMap and any
// user-supplied callback both satisfy this interface.
type FieldResolver interface {
	ResolveField(ctx context.Context, field string) (resolved string, ok bool, err error)
}

// FieldResolverFunc adapts a plain function to FieldResolver.
type FieldResolverFunc func(ctx context.Context, field string) (string, bool, error)

func (f FieldResolverFunc) ResolveField(ctx context.Context, field string) (string, bool, error) {
	return f(ctx, field)
}

// IncludeResolver looks up the query text saved under an include name.
type IncludeResolver interface {
	ResolveInclude(ctx context.Context, name string) (text string, ok bool, err error)
}

// IncludeResolverFunc adapts a plain function to IncludeResolver.
type IncludeResolverFunc func(ctx context.Context, name string) (string, bool, error)

func (f IncludeResolverFunc) ResolveInclude(ctx context.Context, name string) (string, bool, error) {
	return f(ctx, name)
}

// Context travels with one traversal. It is not safe for concurrent use;
// a single traversal is expected to run on one goroutine, per spec.md §5.
type Context struct {
	// Go context for cancellation propagation into resolver callbacks.
	GoContext context.Context

	// FieldResolver and IncludeResolver are the per-traversal resolvers
	// consulted by resolver.Visitor and include.Visitor respectively,
	// ahead of any resolver captured when the visitor was constructed.
	FieldResolver   FieldResolver
	IncludeResolver IncludeResolver

	// SkipInclude, when non-nil, suppresses expansion of a named include
	// (include.Visitor checks it after recording the name in
	// ReferencedIncludes and before any cycle, depth or resolver step).
	SkipInclude func(name string) bool

	// includeStack is the active chain of include names being expanded,
	// used to detect cycles. Exposed via IncludeStack/PushInclude/PopInclude
	// rather than directly, so callers can't corrupt the push/pop pairing.
	includeStack []string

	values        map[string]any
	originalField map[ast.Node]string
}

// NewContext returns an empty Context ready for a traversal.
func NewContext(goCtx context.Context) *Context {
	if goCtx == nil {
		goCtx = context.Background()
	}
	return &Context{
		GoContext: goCtx,
		values:    make(map[string]any),
	}
}

// Get retrieves a value previously stored under key, type-asserting it to
// T. The zero value and false are returned if key is absent or holds a
// different type.
func Get[T any](ctx *Context, key string) (T, bool) {
	v, ok := ctx.values[key]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Set stores v under key, visible to every visitor that runs afterward in
// the same traversal.
func Set(ctx *Context, key string, v any) {
	ctx.values[key] = v
}

// IncludeStack returns the current chain of include names being expanded,
// outermost first. The returned slice must not be mutated by the caller.
func (c *Context) IncludeStack() []string {
	return c.includeStack
}

// PushInclude records name as the innermost include being expanded.
func (c *Context) PushInclude(name string) {
	c.includeStack = append(c.includeStack, name)
}

// PopInclude removes the innermost include name. It is a no-op on an
// empty stack.
func (c *Context) PopInclude() {
	if len(c.includeStack) == 0 {
		return
	}
	c.includeStack = c.includeStack[:len(c.includeStack)-1]
}

// HasInclude reports whether name is already on the include stack (the
// cycle-detection check in include.Visitor).
func (c *Context) HasInclude(name string) bool {
	for _, n := range c.includeStack {
		if n == name {
			return true
		}
	}
	return false
}

// StashOriginalField records field's pre-resolution name against node, per
// the design-notes back-reference rule: the original name lives on the
// context, not the node, so resolution doesn't require extra node fields.
func (c *Context) StashOriginalField(node ast.Node, original string) {
	if c.originalField == nil {
		c.originalField = make(map[ast.Node]string)
	}
	c.originalField[node] = original
}

// OriginalField returns the field name node carried before resolution, if
// any was stashed.
func (c *Context) OriginalField(node ast.Node) (string, bool) {
	if c.originalField == nil {
		return "", false
	}
	v, ok := c.originalField[node]
	return v, ok
}
