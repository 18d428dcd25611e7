// Package resolver implements field-name resolution: FieldMap, a
// case-insensitive hierarchical alias table adapted from the teacher's
// arena-based trie, and Visitor, which applies a resolver across every
// field-carrying node in an AST.
package resolver

import (
	"context"
	"strings"
)

// fieldMapNodeIndex indexes into a FieldMap's arena, mirroring
// internal/trie.NodeIndex in the teacher repo.
type fieldMapNodeIndex int

// fieldMapNode is one arena slot: children keyed by lowercased path
// segment, plus the canonical replacement recorded when a path ends here.
type fieldMapNode struct {
	children map[string]fieldMapNodeIndex
	isEnd    bool
	value    string
}

// FieldMap is a case-insensitive alias → canonical field-name table. A
// single-segment entry ("status" → "state") resolves a bare field name;
// a multi-segment entry ("a.b" → "x.y") resolves hierarchically, so
// "a.b.c" becomes "x.y.c" — the longest matching dotted prefix wins.
//
// Storage follows the teacher's arena trie (internal/trie.Arena): nodes
// live in one contiguous slice and are referenced by index rather than
// pointer, generalized here to store a value at the nodes that terminate
// an inserted path instead of just a boolean.
type FieldMap struct {
	nodes []fieldMapNode
}

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() *FieldMap {
	fm := &FieldMap{nodes: make([]fieldMapNode, 0, 64)}
	fm.nodes = append(fm.nodes, fieldMapNode{children: make(map[string]fieldMapNodeIndex)})
	return fm
}

func (fm *FieldMap) newNode() fieldMapNodeIndex {
	idx := fieldMapNodeIndex(len(fm.nodes))
	fm.nodes = append(fm.nodes, fieldMapNode{children: make(map[string]fieldMapNodeIndex)})
	return idx
}

// Set inserts an alias → canonical mapping. Both sides are dotted paths;
// alias segments are matched case-insensitively.
func (fm *FieldMap) Set(alias, canonical string) {
	cur := fieldMapNodeIndex(0)
	for _, seg := range strings.Split(alias, ".") {
		lower := strings.ToLower(seg)
		node := &fm.nodes[cur]
		child, ok := node.children[lower]
		if !ok {
			child = fm.newNode()
			node.children[lower] = child
		}
		cur = child
	}
	fm.nodes[cur].isEnd = true
	fm.nodes[cur].value = canonical
}

// Resolve maps field to its canonical name via the longest matching
// dotted prefix. ok is false when no prefix (not even the whole name)
// matches anything inserted.
func (fm *FieldMap) Resolve(field string) (resolved string, ok bool) {
	segments := strings.Split(field, ".")
	cur := fieldMapNodeIndex(0)
	matchedAt := -1
	matchedValue := ""

	for i, seg := range segments {
		child, exists := fm.nodes[cur].children[strings.ToLower(seg)]
		if !exists {
			break
		}
		cur = child
		if fm.nodes[cur].isEnd {
			matchedAt = i
			matchedValue = fm.nodes[cur].value
		}
	}

	if matchedAt < 0 {
		return "", false
	}
	rest := segments[matchedAt+1:]
	if len(rest) == 0 {
		return matchedValue, true
	}
	return matchedValue + "." + strings.Join(rest, "."), true
}

// ResolveField adapts FieldMap to visitor.FieldResolver.
func (fm *FieldMap) ResolveField(_ context.Context, field string) (string, bool, error) {
	v, ok := fm.Resolve(field)
	return v, ok, nil
}
