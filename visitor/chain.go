package visitor

import (
	"reflect"
	"sort"

	"github.com/lucene-ql/lqp/ast"
)

// entry pairs a child visitor with its priority and the order it was
// added in, so stable sort preserves insertion order between equal
// priorities.
type entry struct {
	visitor  Visitor
	priority int
	seq      int
}

// Chain is a priority-ordered composition of visitors, applied to the
// entire document in turn, sharing one Context — the composition unit
// the built-in resolver/include/datemath/validate visitors are meant to
// be combined through. Mirrors the teacher's Engine, which applies its
// registered LintRules to a file one by one and accumulates results.
type Chain struct {
	entries []entry
	nextSeq int
}

// NewChain returns an empty Chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends v to the chain at the given priority (ascending order:
// lower priority values run first).
func (c *Chain) Add(v Visitor, priority int) {
	c.entries = append(c.entries, entry{visitor: v, priority: priority, seq: c.nextSeq})
	c.nextSeq++
	c.stable()
}

func (c *Chain) stable() {
	sort.SliceStable(c.entries, func(i, j int) bool {
		if c.entries[i].priority != c.entries[j].priority {
			return c.entries[i].priority < c.entries[j].priority
		}
		return c.entries[i].seq < c.entries[j].seq
	})
}

func indexOfType[T Visitor](c *Chain) int {
	want := reflect.TypeOf((*T)(nil)).Elem()
	for i, e := range c.entries {
		if reflect.TypeOf(e.visitor) == want {
			return i
		}
	}
	return -1
}

// AddBefore inserts v immediately before the first visitor of type T,
// taking on that visitor's priority; if no visitor of type T is present,
// v is appended at priority 0.
func AddBefore[T Visitor](c *Chain, v Visitor) {
	i := indexOfType[T](c)
	if i < 0 {
		c.Add(v, 0)
		return
	}
	out := make([]entry, 0, len(c.entries)+1)
	out = append(out, c.entries[:i]...)
	out = append(out, entry{visitor: v, priority: c.entries[i].priority, seq: -1})
	out = append(out, c.entries[i:]...)
	c.entries = out
}

// AddAfter inserts v immediately after the first visitor of type T; if no
// visitor of type T is present, v is appended at priority 0.
func AddAfter[T Visitor](c *Chain, v Visitor) {
	i := indexOfType[T](c)
	if i < 0 {
		c.Add(v, 0)
		return
	}
	out := make([]entry, 0, len(c.entries)+1)
	out = append(out, c.entries[:i+1]...)
	out = append(out, entry{visitor: v, priority: c.entries[i].priority, seq: -1})
	out = append(out, c.entries[i+1:]...)
	c.entries = out
}

// Remove deletes the first visitor of type T from the chain.
func Remove[T Visitor](c *Chain) {
	i := indexOfType[T](c)
	if i < 0 {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

// Replace swaps the first visitor of type T for v, keeping its priority
// and position.
func Replace[T Visitor](c *Chain, v Visitor) {
	i := indexOfType[T](c)
	if i < 0 {
		c.Add(v, 0)
		return
	}
	c.entries[i].visitor = v
}

// Run applies every child visitor to doc in priority order, sharing ctx,
// and returns doc with each visitor's mutations/replacements folded in.
func (c *Chain) Run(ctx *Context, doc *ast.QueryDocument) *ast.QueryDocument {
	for _, e := range c.entries {
		Walk(e.visitor, ctx, doc)
	}
	return doc
}
