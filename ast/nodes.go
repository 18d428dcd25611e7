package ast

// QueryDocument is the root of every parsed AST. Query is nil only for
// empty input.
type QueryDocument struct {
	Query Node
	pos   Position
}

func NewQueryDocument(query Node) *QueryDocument {
	return &QueryDocument{Query: query, pos: 0}
}

func (d *QueryDocument) Kind() Kind       { return KindQueryDocument }
func (d *QueryDocument) Position() Position { return d.pos }

// GroupNode is a parenthesized subquery, optionally prefixed by a field
// name (`field:(...)`), a boost (`(...)^2`), or a +/-/NOT prefix.
type GroupNode struct {
	Child  Node
	Field  string // empty when the group is not field-prefixed
	Boost  *float64
	Prefix Prefix
	pos    Position
}

func NewGroupNode(child Node, pos int) *GroupNode {
	return &GroupNode{Child: child, pos: Position(pos)}
}

func (g *GroupNode) Kind() Kind         { return KindGroup }
func (g *GroupNode) Position() Position { return g.pos }
func (g *GroupNode) GetBoost() (float64, bool) {
	if g.Boost == nil {
		return 0, false
	}
	return *g.Boost, true
}
func (g *GroupNode) GetField() string { return g.Field }
func (g *GroupNode) SetField(f string) { g.Field = f }

// BooleanQueryNode always has exactly two non-nil children, as required
// by the invariant in spec.md §3: single-sided expressions are lifted
// into a NotNode or a Prefix on the lone child instead of ever appearing
// here with a nil side.
type BooleanQueryNode struct {
	Op          BoolOp
	Left, Right Node
	// LeftPrefix and RightPrefix are not set by the parser today: a
	// +/-/NOT prefix on a side is carried on that side's own node
	// (TermNode.Prefix, FieldQueryNode.Prefix, GroupNode.Prefix, or a
	// wrapping NotNode) rather than here. Kept for a transforming
	// visitor that wants to hoist a prefix up to this level; builder
	// renders them if a caller ever does.
	LeftPrefix  Prefix
	RightPrefix Prefix
	pos         Position
}

func NewBooleanQueryNode(op BoolOp, left, right Node, pos int) *BooleanQueryNode {
	return &BooleanQueryNode{Op: op, Left: left, Right: right, pos: Position(pos)}
}

func (b *BooleanQueryNode) Kind() Kind         { return KindBooleanQuery }
func (b *BooleanQueryNode) Position() Position { return b.pos }

// NotNode negates a single child.
type NotNode struct {
	Child Node
	pos   Position
}

func NewNotNode(child Node, pos int) *NotNode {
	return &NotNode{Child: child, pos: Position(pos)}
}

func (n *NotNode) Kind() Kind         { return KindNot }
func (n *NotNode) Position() Position { return n.pos }

// FieldQueryNode is `field:<atom>`. Query is one of TermNode, PhraseNode,
// RegexNode, RangeNode, GroupNode, or MultiTermNode.
type FieldQueryNode struct {
	Field  string
	Query  Node
	Prefix Prefix
	Boost  *float64
	pos    Position
}

func NewFieldQueryNode(field string, query Node, pos int) *FieldQueryNode {
	return &FieldQueryNode{Field: field, Query: query, pos: Position(pos)}
}

func (f *FieldQueryNode) Kind() Kind         { return KindFieldQuery }
func (f *FieldQueryNode) Position() Position { return f.pos }
func (f *FieldQueryNode) GetField() string   { return f.Field }
func (f *FieldQueryNode) SetField(v string)  { f.Field = v }
func (f *FieldQueryNode) GetBoost() (float64, bool) {
	if f.Boost == nil {
		return 0, false
	}
	return *f.Boost, true
}

// TermNode is a bare word or wildcard term. Term is the raw, still-escaped
// text; UnescapedTerm decodes it lazily and caches the result, per the
// zero-copy-until-mutated storage rule in spec.md §3/§9.
type TermNode struct {
	Term      string
	Prefix    Prefix
	Boost     *float64
	Proximity *float64 // fuzzy slop (~n), nil if not fuzzy
	pos       Position

	unescaped    string
	hasUnescaped bool
}

func NewTermNode(term string, pos int) *TermNode {
	return &TermNode{Term: term, pos: Position(pos)}
}

func (t *TermNode) Kind() Kind         { return KindTerm }
func (t *TermNode) Position() Position { return t.pos }
func (t *TermNode) GetBoost() (float64, bool) {
	if t.Boost == nil {
		return 0, false
	}
	return *t.Boost, true
}

// UnescapedTerm returns Term with Lucene `\x` escapes resolved. The
// decoded value is computed once and cached; SetTerm invalidates it.
func (t *TermNode) UnescapedTerm() string {
	if !t.hasUnescaped {
		t.unescaped = Unescape(t.Term)
		t.hasUnescaped = true
	}
	return t.unescaped
}

// SetTerm assigns a new raw term, invalidating the cached unescaped form.
// Visitors that rewrite a term (lowercasing, field substitution) call
// this rather than writing Term directly.
func (t *TermNode) SetTerm(raw string) {
	t.Term = raw
	t.hasUnescaped = false
}

func (t *TermNode) IsWildcardPrefixed() bool {
	return len(t.Term) > 0 && (t.Term[0] == '*' || t.Term[0] == '?')
}

// PhraseNode is a quoted phrase. Phrase is already decoded (only `\\` and
// `\"` are legal inside a phrase, both resolved by the lexer).
type PhraseNode struct {
	Phrase    string
	Proximity *float64
	pos       Position
}

func NewPhraseNode(phrase string, pos int) *PhraseNode {
	return &PhraseNode{Phrase: phrase, pos: Position(pos)}
}

func (p *PhraseNode) Kind() Kind         { return KindPhrase }
func (p *PhraseNode) Position() Position { return p.pos }

// RegexNode is a `/pattern/` literal; Source excludes the delimiting
// slashes.
type RegexNode struct {
	Source string
	pos    Position
}

func NewRegexNode(source string, pos int) *RegexNode {
	return &RegexNode{Source: source, pos: Position(pos)}
}

func (r *RegexNode) Kind() Kind         { return KindRegex }
func (r *RegexNode) Position() Position { return r.pos }

// RangeNode is either a bracketed range (`[a TO b]`, `{a TO b}`) or a
// short-form comparator (`>n`). Either Min or Max may be "*" meaning
// unbounded. When Operator is set, exactly one of Min/Max is populated
// and its inclusivity is implied by the operator, per spec.md §3.
type RangeNode struct {
	Field        string
	Min, Max     string
	MinInclusive bool
	MaxInclusive bool
	Operator     RangeOp
	pos          Position
}

func NewRangeNode(min, max string, pos int) *RangeNode {
	return &RangeNode{Min: min, Max: max, pos: Position(pos)}
}

func (r *RangeNode) Kind() Kind         { return KindRange }
func (r *RangeNode) Position() Position { return r.pos }
func (r *RangeNode) GetField() string   { return r.Field }
func (r *RangeNode) SetField(v string)  { r.Field = v }

func (r *RangeNode) IsShortForm() bool { return r.Operator != RangeOpNone }

// MultiTermNode is the parenthesized body of `field:(t1 t2 t3)`.
type MultiTermNode struct {
	Terms []Node
	pos   Position
}

func NewMultiTermNode(terms []Node, pos int) *MultiTermNode {
	return &MultiTermNode{Terms: terms, pos: Position(pos)}
}

func (m *MultiTermNode) Kind() Kind         { return KindMultiTerm }
func (m *MultiTermNode) Position() Position { return m.pos }

// ExistsNode is `_exists_:field`.
type ExistsNode struct {
	Field string
	pos   Position
}

func NewExistsNode(field string, pos int) *ExistsNode {
	return &ExistsNode{Field: field, pos: Position(pos)}
}

func (e *ExistsNode) Kind() Kind         { return KindExists }
func (e *ExistsNode) Position() Position { return e.pos }
func (e *ExistsNode) GetField() string   { return e.Field }
func (e *ExistsNode) SetField(v string)  { e.Field = v }

// MissingNode is `_missing_:field`.
type MissingNode struct {
	Field string
	pos   Position
}

func NewMissingNode(field string, pos int) *MissingNode {
	return &MissingNode{Field: field, pos: Position(pos)}
}

func (m *MissingNode) Kind() Kind         { return KindMissing }
func (m *MissingNode) Position() Position { return m.pos }
func (m *MissingNode) GetField() string   { return m.Field }
func (m *MissingNode) SetField(v string)  { m.Field = v }

// MatchAllNode is `*:*`.
type MatchAllNode struct {
	pos Position
}

func NewMatchAllNode(pos int) *MatchAllNode {
	return &MatchAllNode{pos: Position(pos)}
}

func (m *MatchAllNode) Kind() Kind         { return KindMatchAll }
func (m *MatchAllNode) Position() Position { return m.pos }

var (
	_ Node    = (*QueryDocument)(nil)
	_ Node    = (*GroupNode)(nil)
	_ Node    = (*BooleanQueryNode)(nil)
	_ Node    = (*NotNode)(nil)
	_ Node    = (*FieldQueryNode)(nil)
	_ Node    = (*TermNode)(nil)
	_ Node    = (*PhraseNode)(nil)
	_ Node    = (*RegexNode)(nil)
	_ Node    = (*RangeNode)(nil)
	_ Node    = (*MultiTermNode)(nil)
	_ Node    = (*ExistsNode)(nil)
	_ Node    = (*MissingNode)(nil)
	_ Node    = (*MatchAllNode)(nil)
	_ Fielded = (*FieldQueryNode)(nil)
	_ Fielded = (*RangeNode)(nil)
	_ Fielded = (*ExistsNode)(nil)
	_ Fielded = (*MissingNode)(nil)
)
