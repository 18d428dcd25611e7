package parser

import (
	"strings"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/token"
)

// --- grammar: PrimaryExpr := Group | FieldExpr | Atom ------------------

func (p *Parser) parsePrimaryExpr() ast.Node {
	switch p.cur().Kind {
	case token.LPAREN:
		return p.parseGroup("")
	case token.IDENT:
		if p.peekKind(1) == token.COLON {
			return p.parseFieldExpr()
		}
		return p.parseAtom()
	case token.PHRASE, token.REGEX:
		return p.parseAtom()
	default:
		return nil
	}
}

// --- grammar: Group := '(' OrExpr ')' -----------------------------------
// field is the field name prefixing this group, if any ("" otherwise).

func (p *Parser) parseGroup(field string) ast.Node {
	open := p.advance() // consume '('

	if field != "" {
		if multi, ok := p.tryParseMultiTerm(open.Offset); ok {
			return ast.NewFieldQueryNode(field, multi, open.Offset)
		}
	}

	body := p.parseOrExpr()
	g := ast.NewGroupNode(body, open.Offset)
	g.Field = field

	if p.cur().Kind == token.RPAREN {
		p.advance()
		return g
	}

	// Unbalanced '(': consume until the matching closer or a top-level
	// boundary, per recovery rule 2.
	p.errorf(open.Offset, open.Length, "unbalanced '('")
	p.skipToClose(token.RPAREN)
	return g
}

// tryParseMultiTerm attempts to read "(" <atom>+ ")" as a MultiTermNode
// without consuming anything on failure. The caller has already consumed
// the opening '('.
func (p *Parser) tryParseMultiTerm(openOffset int) (*ast.MultiTermNode, bool) {
	save := p.pos

	var terms []ast.Node
	for {
		switch p.cur().Kind {
		case token.RPAREN:
			if len(terms) == 0 {
				p.pos = save
				return nil, false
			}
			p.advance()
			return ast.NewMultiTermNode(terms, openOffset), true
		case token.IDENT:
			if p.peekKind(1) == token.COLON {
				p.pos = save
				return nil, false
			}
			terms = append(terms, p.parseAtom())
		case token.PHRASE, token.REGEX:
			terms = append(terms, p.parseAtom())
		default:
			p.pos = save
			return nil, false
		}
	}
}

// skipToClose consumes tokens up to and including the next occurrence of
// kind at the current nesting level, or to EOF if it never appears.
func (p *Parser) skipToClose(kind token.Kind) {
	depth := 0
	guard := 0
	for !p.atEOF() && guard < maxRecoveryDepth {
		guard++
		t := p.cur()
		if isOpener(t.Kind) {
			depth++
		} else if t.Kind == kind && depth == 0 {
			p.advance()
			return
		} else if isCloser(t.Kind) {
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

func isOpener(k token.Kind) bool {
	return k == token.LPAREN || k == token.LBRACK || k == token.LBRACE
}

func isCloser(k token.Kind) bool {
	return k == token.RPAREN || k == token.RBRACK || k == token.RBRACE
}

// --- grammar: FieldExpr := IDENT ':' ( Group | Range | Atom | MultiTerm )

func (p *Parser) parseFieldExpr() ast.Node {
	fieldTok := p.advance() // IDENT
	p.advance()             // COLON
	field := p.text(fieldTok)

	switch {
	case strings.EqualFold(field, "_exists_"):
		return p.parseExistsOrMissing(fieldTok, true)
	case strings.EqualFold(field, "_missing_"):
		return p.parseExistsOrMissing(fieldTok, false)
	}

	if field == "*" && p.cur().Kind == token.IDENT && p.text(p.cur()) == "*" {
		p.advance()
		return ast.NewMatchAllNode(fieldTok.Offset)
	}

	switch p.cur().Kind {
	case token.LPAREN:
		return p.parseGroup(field)
	case token.LBRACK, token.LBRACE:
		return p.parseRangeBracket(field, fieldTok.Offset)
	case token.GT, token.GE, token.LT, token.LE:
		return p.parseRangeShort(field, fieldTok.Offset)
	case token.IDENT, token.PHRASE, token.REGEX:
		atom := p.parseAtom()
		return ast.NewFieldQueryNode(field, atom, fieldTok.Offset)
	default:
		p.errorf(fieldTok.Offset+fieldTok.Length, 1, "expected value after ':'")
		empty := ast.NewTermNode("", ast.NoPosition)
		return ast.NewFieldQueryNode(field, empty, fieldTok.Offset)
	}
}

func (p *Parser) parseExistsOrMissing(fieldTok token.Token, exists bool) ast.Node {
	if p.cur().Kind != token.IDENT {
		p.errorf(fieldTok.Offset+fieldTok.Length, 1, "expected field name after ':'")
		if exists {
			return ast.NewExistsNode("", fieldTok.Offset)
		}
		return ast.NewMissingNode("", fieldTok.Offset)
	}
	nameTok := p.advance()
	name := p.text(nameTok)
	if exists {
		return ast.NewExistsNode(name, fieldTok.Offset)
	}
	return ast.NewMissingNode(name, fieldTok.Offset)
}

// --- grammar: Atom := Phrase | Regex | Term | MatchAll ------------------

func (p *Parser) parseAtom() ast.Node {
	t := p.cur()
	switch t.Kind {
	case token.PHRASE:
		p.advance()
		return ast.NewPhraseNode(p.text(t), t.Offset)
	case token.REGEX:
		p.advance()
		return ast.NewRegexNode(p.text(t), t.Offset)
	case token.IDENT:
		p.advance()
		return ast.NewTermNode(t.Raw(p.input), t.Offset)
	default:
		return nil
	}
}

// --- grammar: Range := '[' RangeBound 'TO' RangeBound ']' | ShortRange --

func (p *Parser) parseRangeBracket(field string, pos int) ast.Node {
	openTok := p.advance() // '[' or '{'
	minInclusive := openTok.Kind == token.LBRACK

	minBound, ok := p.parseRangeBound()
	if !ok {
		p.errorf(openTok.Offset, openTok.Length, "expected range bound")
		p.skipToClose(token.RBRACK)
		r := ast.NewRangeNode("*", "*", pos)
		r.Field = field
		return ast.NewFieldQueryNode(field, r, pos)
	}

	if p.cur().Kind != token.TO {
		p.errorf(p.cur().Offset, p.cur().Length, "expected TO in range")
		p.skipToClose(token.RBRACK)
		r := ast.NewRangeNode(minBound, "*", pos)
		r.Field = field
		r.MinInclusive = minInclusive
		return ast.NewFieldQueryNode(field, r, pos)
	}
	p.advance() // TO

	maxBound, ok := p.parseRangeBound()
	if !ok {
		p.errorf(p.cur().Offset, p.cur().Length, "expected range bound after TO")
		maxBound = "*"
	}

	maxInclusive := false
	if p.cur().Kind == token.RBRACK {
		maxInclusive = true
		p.advance()
	} else if p.cur().Kind == token.RBRACE {
		maxInclusive = false
		p.advance()
	} else {
		p.errorf(p.cur().Offset, p.cur().Length, "unterminated range, expected ']' or '}'")
		p.skipToClose(token.RBRACK)
	}

	r := ast.NewRangeNode(minBound, maxBound, pos)
	r.Field = field
	r.MinInclusive = minInclusive
	r.MaxInclusive = maxInclusive
	return ast.NewFieldQueryNode(field, r, pos)
}

func (p *Parser) parseRangeBound() (string, bool) {
	t := p.cur()
	switch t.Kind {
	case token.IDENT, token.PHRASE:
		p.advance()
		return p.text(t), true
	default:
		return "", false
	}
}

func (p *Parser) parseRangeShort(field string, pos int) ast.Node {
	opTok := p.advance()
	var op ast.RangeOp
	switch opTok.Kind {
	case token.GT:
		op = ast.RangeOpGT
	case token.GE:
		op = ast.RangeOpGE
	case token.LT:
		op = ast.RangeOpLT
	case token.LE:
		op = ast.RangeOpLE
	}

	value, ok := p.parseRangeBound()
	if !ok {
		p.errorf(opTok.Offset, opTok.Length, "expected value after comparator")
		value = "*"
	}

	r := ast.NewRangeNode("", "", pos)
	r.Field = field
	r.Operator = op
	switch op {
	case ast.RangeOpGT:
		r.Min, r.MinInclusive = value, false
	case ast.RangeOpGE:
		r.Min, r.MinInclusive = value, true
	case ast.RangeOpLT:
		r.Max, r.MaxInclusive = value, false
	case ast.RangeOpLE:
		r.Max, r.MaxInclusive = value, true
	}
	return ast.NewFieldQueryNode(field, r, pos)
}
