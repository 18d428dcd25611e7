// Package parser builds a typed AST from Lucene-style query text. It never
// fails fatally: malformed input still produces a best-effort partial AST
// plus a list of diagnostics, following the error-recovery design in
// spec.md §4.2.
package parser

import (
	"strconv"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/lexer"
	"github.com/lucene-ql/lqp/token"
)

// maxRecoveryDepth bounds how many tokens a single recovery sweep (e.g.
// skipping to a matching closer) will consume, so a pathological input
// cannot make recovery loop unboundedly — §8's "bounded time proportional
// to |s|" property.
const maxRecoveryDepth = 1 << 20

// Result is what Parse returns: a best-effort document, whether parsing
// was clean, and the accumulated diagnostics.
type Result struct {
	Document  *ast.QueryDocument
	IsSuccess bool
	Errors    []Error
}

// Parser holds the token stream (whitespace already filtered out) and the
// input buffer tokens were sliced from.
type Parser struct {
	input  string
	tokens []token.Token
	pos    int
	errors []Error
}

// Parse tokenizes and parses text, returning a Result that is never nil
// and whose Document is never nil for non-empty input.
func Parse(text string) *Result {
	rawTokens, lexDiags := lexer.Tokenize(text)

	p := &Parser{input: text, tokens: filterWhitespace(rawTokens)}
	for _, d := range lexDiags {
		p.errorf(d.Offset, d.Length, "%s", d.Message)
	}

	doc := p.parseDocument()

	return &Result{
		Document:  doc,
		IsSuccess: len(p.errors) == 0,
		Errors:    p.errors,
	}
}

func filterWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.WS {
			out = append(out, t)
		}
	}
	return out
}

// --- token navigation -------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF, Offset: p.endOffset()}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekKind(ahead int) token.Kind {
	i := p.pos + ahead
	if i >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[i].Kind
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) endOffset() int {
	return len(p.input)
}

func (p *Parser) text(t token.Token) string {
	return t.Text(p.input)
}

// --- grammar: Document := OrExpr? EOF ----------------------------------

func (p *Parser) parseDocument() *ast.QueryDocument {
	if p.atEOF() {
		return ast.NewQueryDocument(nil)
	}

	node := p.parseOrExpr()
	doc := ast.NewQueryDocument(node)

	if !p.atEOF() {
		// Trailing tokens the grammar couldn't consume: recover by
		// skipping one token at a time, treating the gap as implicit
		// AND joins when another primary follows (recovery rule 5).
		p.recoverTrailing(doc)
	}

	return doc
}

// recoverTrailing consumes whatever is left after the top-level OrExpr
// returns early, folding additional primaries into the document body with
// implicit AND and reporting anything it has to discard.
func (p *Parser) recoverTrailing(doc *ast.QueryDocument) {
	guard := 0
	for !p.atEOF() && guard < maxRecoveryDepth {
		guard++
		before := p.pos
		next := p.parseAndExpr()
		if next != nil {
			if doc.Query == nil {
				doc.Query = next
			} else {
				doc.Query = ast.NewBooleanQueryNode(ast.OpAnd, doc.Query, next, int(doc.Query.Position()))
			}
		}
		if p.pos == before {
			// Nothing consumable as an expression; drop one token.
			bad := p.advance()
			p.errorf(bad.Offset, bad.Length, "unexpected token %s", bad.Kind)
		}
	}
}

// --- grammar: OrExpr := AndExpr ( (OR | PIPEPIPE) AndExpr )* -----------

func (p *Parser) parseOrExpr() ast.Node {
	left := p.parseAndExpr()

	for p.cur().Kind == token.OR || p.cur().Kind == token.PIPEPIPE {
		opTok := p.advance()
		right := p.parseAndExpr()
		if right == nil {
			p.errorf(opTok.Offset, opTok.Length, "expected expression after %s", opTok.Kind)
			break
		}
		if left == nil {
			left = right
			continue
		}
		left = ast.NewBooleanQueryNode(ast.OpOr, left, right, int(left.Position()))
	}

	return left
}

// --- grammar: AndExpr := UnaryExpr ( (AND | implicit) UnaryExpr )* -----

func (p *Parser) parseAndExpr() ast.Node {
	left := p.parseUnaryExpr()

	for {
		if p.cur().Kind == token.AND {
			opTok := p.advance()
			right := p.parseUnaryExpr()
			if right == nil {
				p.errorf(opTok.Offset, opTok.Length, "expected expression after AND")
				break
			}
			if left == nil {
				left = right
				continue
			}
			left = ast.NewBooleanQueryNode(ast.OpAnd, left, right, int(left.Position()))
			continue
		}

		if p.startsPrimary(p.cur()) {
			right := p.parseUnaryExpr()
			if right == nil {
				break
			}
			if left == nil {
				left = right
				continue
			}
			left = ast.NewBooleanQueryNode(ast.OpAnd, left, right, int(left.Position()))
			continue
		}

		break
	}

	return left
}

// startsPrimary reports whether t can begin a PrimaryExpr (directly, or
// via a unary prefix), used to detect implicit AND between two adjacent
// primaries.
func (p *Parser) startsPrimary(t token.Token) bool {
	switch t.Kind {
	case token.IDENT, token.PHRASE, token.REGEX, token.LPAREN,
		token.NOT, token.PLUS, token.MINUS:
		return true
	default:
		return false
	}
}

// --- grammar: UnaryExpr := (NOT|PLUS|MINUS)? PrimaryExpr Boost? Fuzzy? -

func (p *Parser) parseUnaryExpr() ast.Node {
	var prefix ast.Prefix
	hasPrefix := false

	switch p.cur().Kind {
	case token.NOT:
		p.advance()
		prefix, hasPrefix = ast.PrefixNot, true
	case token.PLUS:
		p.advance()
		prefix, hasPrefix = ast.PrefixPlus, true
	case token.MINUS:
		p.advance()
		prefix, hasPrefix = ast.PrefixMinus, true
	}

	node := p.parsePrimaryExpr()
	if node == nil {
		if hasPrefix {
			bad := p.cur()
			p.errorf(bad.Offset, 0, "expected expression after prefix operator")
		}
		return nil
	}

	var boost *float64
	if p.cur().Kind == token.CARET {
		p.advance()
		if v, ok := p.parseNumber(); ok {
			boost = &v
		} else {
			bad := p.cur()
			p.errorf(bad.Offset, bad.Length, "expected number after '^'")
		}
	}

	var fuzzy *float64
	if p.cur().Kind == token.TILDE {
		p.advance()
		if p.cur().Kind == token.IDENT {
			if v, ok := p.parseNumber(); ok {
				fuzzy = &v
			}
		} else {
			zero := 0.0
			fuzzy = &zero
		}
	}

	if hasPrefix {
		node = p.applyPrefix(node, prefix)
	}
	if boost != nil {
		node = p.applyBoost(node, *boost)
	}
	if fuzzy != nil {
		node = p.applyFuzzy(node, *fuzzy)
	}

	return node
}

func (p *Parser) parseNumber() (float64, bool) {
	t := p.cur()
	if t.Kind != token.IDENT {
		return 0, false
	}
	text := p.text(t)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	p.advance()
	return v, true
}

// applyPrefix attaches a +/-/NOT prefix to node. Variants that carry a
// native Prefix field (Term, FieldQuery, Group) are mutated in place;
// everything else is wrapped, per the Open Question decision recorded in
// SPEC_FULL.md §8/DESIGN.md.
func (p *Parser) applyPrefix(node ast.Node, prefix ast.Prefix) ast.Node {
	switch n := node.(type) {
	case *ast.TermNode:
		n.Prefix = prefix
		return n
	case *ast.FieldQueryNode:
		n.Prefix = prefix
		return n
	case *ast.GroupNode:
		n.Prefix = prefix
		return n
	default:
		if prefix == ast.PrefixNot {
			return ast.NewNotNode(node, int(node.Position()))
		}
		g := ast.NewGroupNode(node, int(node.Position()))
		g.Prefix = prefix
		return g
	}
}

func (p *Parser) applyBoost(node ast.Node, boost float64) ast.Node {
	switch n := node.(type) {
	case *ast.TermNode:
		n.Boost = &boost
		return n
	case *ast.FieldQueryNode:
		n.Boost = &boost
		return n
	case *ast.GroupNode:
		n.Boost = &boost
		return n
	case *ast.NotNode:
		g := ast.NewGroupNode(n, int(n.Position()))
		g.Boost = &boost
		return g
	default:
		g := ast.NewGroupNode(node, int(node.Position()))
		g.Boost = &boost
		return g
	}
}

func (p *Parser) applyFuzzy(node ast.Node, slop float64) ast.Node {
	switch n := node.(type) {
	case *ast.TermNode:
		n.Proximity = &slop
		return n
	case *ast.PhraseNode:
		n.Proximity = &slop
		return n
	case *ast.FieldQueryNode:
		switch child := n.Query.(type) {
		case *ast.TermNode:
			child.Proximity = &slop
		case *ast.PhraseNode:
			child.Proximity = &slop
		}
		return n
	default:
		return node
	}
}
