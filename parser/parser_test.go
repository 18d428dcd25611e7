package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucene-ql/lqp/ast"
)

func TestParse_BareTerm(t *testing.T) {
	t.Parallel()
	res := Parse("hello")
	require.Empty(t, res.Errors)
	require.True(t, res.IsSuccess)
	term, ok := res.Document.Query.(*ast.TermNode)
	require.True(t, ok)
	assert.Equal(t, "hello", term.Term)
	assert.Equal(t, ast.PrefixNone, term.Prefix)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()
	res := Parse("")
	require.True(t, res.IsSuccess)
	require.Nil(t, res.Document.Query)
}

func TestParse_FieldTerm(t *testing.T) {
	t.Parallel()
	res := Parse("title:hello")
	require.Empty(t, res.Errors)
	fq, ok := res.Document.Query.(*ast.FieldQueryNode)
	require.True(t, ok)
	assert.Equal(t, "title", fq.Field)
	term, ok := fq.Query.(*ast.TermNode)
	require.True(t, ok)
	assert.Equal(t, "hello", term.Term)
}

func TestParse_Phrase(t *testing.T) {
	t.Parallel()
	res := Parse(`"hello world"`)
	require.Empty(t, res.Errors)
	phrase, ok := res.Document.Query.(*ast.PhraseNode)
	require.True(t, ok)
	assert.Equal(t, "hello world", phrase.Phrase)
}

func TestParse_Regex(t *testing.T) {
	t.Parallel()
	res := Parse(`/[a-z]+/`)
	require.Empty(t, res.Errors)
	re, ok := res.Document.Query.(*ast.RegexNode)
	require.True(t, ok)
	assert.Equal(t, "[a-z]+", re.Source)
}

func TestParse_BooleanAndOr(t *testing.T) {
	t.Parallel()
	res := Parse("a AND b OR c")
	require.Empty(t, res.Errors)
	// OR is the outermost operator: (a AND b) OR c
	or, ok := res.Document.Query.(*ast.BooleanQueryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, or.Op)
	and, ok := or.Left.(*ast.BooleanQueryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, and.Op)
	_, ok = or.Right.(*ast.TermNode)
	require.True(t, ok)
}

func TestParse_ImplicitAnd(t *testing.T) {
	t.Parallel()
	res := Parse("foo bar")
	require.Empty(t, res.Errors)
	and, ok := res.Document.Query.(*ast.BooleanQueryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, and.Op)
}

func TestParse_PrefixPlusMinus(t *testing.T) {
	t.Parallel()
	res := Parse("+foo -bar")
	require.Empty(t, res.Errors)
	and, ok := res.Document.Query.(*ast.BooleanQueryNode)
	require.True(t, ok)
	left, ok := and.Left.(*ast.TermNode)
	require.True(t, ok)
	assert.Equal(t, ast.PrefixPlus, left.Prefix)
	right, ok := and.Right.(*ast.TermNode)
	require.True(t, ok)
	assert.Equal(t, ast.PrefixMinus, right.Prefix)
}

func TestParse_NotWrapsNonNativeNode(t *testing.T) {
	t.Parallel()
	res := Parse(`NOT "hello world"`)
	require.Empty(t, res.Errors)
	not, ok := res.Document.Query.(*ast.NotNode)
	require.True(t, ok)
	_, ok = not.Child.(*ast.PhraseNode)
	require.True(t, ok)
}

func TestParse_Group(t *testing.T) {
	t.Parallel()
	res := Parse("(a OR b) AND c")
	require.Empty(t, res.Errors)
	and, ok := res.Document.Query.(*ast.BooleanQueryNode)
	require.True(t, ok)
	g, ok := and.Left.(*ast.GroupNode)
	require.True(t, ok)
	inner, ok := g.Child.(*ast.BooleanQueryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, inner.Op)
}

func TestParse_FieldGroupMultiTerm(t *testing.T) {
	t.Parallel()
	res := Parse("title:(quick brown fox)")
	require.Empty(t, res.Errors)
	fq, ok := res.Document.Query.(*ast.FieldQueryNode)
	require.True(t, ok)
	multi, ok := fq.Query.(*ast.MultiTermNode)
	require.True(t, ok)
	require.Len(t, multi.Terms, 3)
}

func TestParse_Boost(t *testing.T) {
	t.Parallel()
	res := Parse("quick^2.0")
	require.Empty(t, res.Errors)
	term, ok := res.Document.Query.(*ast.TermNode)
	require.True(t, ok)
	boost, has := term.GetBoost()
	require.True(t, has)
	assert.InDelta(t, 2.0, boost, 1e-9)
}

func TestParse_FuzzyTerm(t *testing.T) {
	t.Parallel()
	res := Parse("roam~2")
	require.Empty(t, res.Errors)
	term, ok := res.Document.Query.(*ast.TermNode)
	require.True(t, ok)
	require.NotNil(t, term.Proximity)
	assert.InDelta(t, 2.0, *term.Proximity, 1e-9)
}

func TestParse_FuzzyDefaultSlop(t *testing.T) {
	t.Parallel()
	res := Parse("roam~")
	require.Empty(t, res.Errors)
	term, ok := res.Document.Query.(*ast.TermNode)
	require.True(t, ok)
	require.NotNil(t, term.Proximity)
	assert.InDelta(t, 0.0, *term.Proximity, 1e-9)
}

func TestParse_RangeBracket(t *testing.T) {
	t.Parallel()
	res := Parse("price:[1 TO 10]")
	require.Empty(t, res.Errors)
	fq, ok := res.Document.Query.(*ast.FieldQueryNode)
	require.True(t, ok)
	r, ok := fq.Query.(*ast.RangeNode)
	require.True(t, ok)
	assert.Equal(t, "price", r.Field)
	assert.Equal(t, "1", r.Min)
	assert.Equal(t, "10", r.Max)
	assert.True(t, r.MinInclusive)
	assert.True(t, r.MaxInclusive)
	assert.False(t, r.IsShortForm())
}

func TestParse_RangeExclusive(t *testing.T) {
	t.Parallel()
	res := Parse("price:{1 TO 10}")
	require.Empty(t, res.Errors)
	fq := res.Document.Query.(*ast.FieldQueryNode)
	r := fq.Query.(*ast.RangeNode)
	assert.False(t, r.MinInclusive)
	assert.False(t, r.MaxInclusive)
}

func TestParse_RangeShortForm(t *testing.T) {
	t.Parallel()
	res := Parse("price:>=10")
	require.Empty(t, res.Errors)
	fq, ok := res.Document.Query.(*ast.FieldQueryNode)
	require.True(t, ok)
	r, ok := fq.Query.(*ast.RangeNode)
	require.True(t, ok)
	assert.Equal(t, "price", r.Field)
	assert.True(t, r.IsShortForm())
	assert.Equal(t, ast.RangeOpGE, r.Operator)
	assert.Equal(t, "10", r.Min)
	assert.True(t, r.MinInclusive)
	assert.Equal(t, "", r.Max)
	assert.NotEqual(t, ast.NoPosition, int(r.Position()))
}

func TestParse_ExistsMissing(t *testing.T) {
	t.Parallel()
	res := Parse("_exists_:title")
	require.Empty(t, res.Errors)
	exists, ok := res.Document.Query.(*ast.ExistsNode)
	require.True(t, ok)
	assert.Equal(t, "title", exists.Field)

	res = Parse("_missing_:title")
	require.Empty(t, res.Errors)
	missing, ok := res.Document.Query.(*ast.MissingNode)
	require.True(t, ok)
	assert.Equal(t, "title", missing.Field)
}

func TestParse_MatchAll(t *testing.T) {
	t.Parallel()
	res := Parse("*:*")
	require.Empty(t, res.Errors)
	_, ok := res.Document.Query.(*ast.MatchAllNode)
	require.True(t, ok)
}

func TestParse_MissingFieldValueIsError(t *testing.T) {
	t.Parallel()
	res := Parse("title:")
	require.False(t, res.IsSuccess)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "expected value after ':'")
	// Still produces a best-effort node.
	fq, ok := res.Document.Query.(*ast.FieldQueryNode)
	require.True(t, ok)
	assert.Equal(t, "title", fq.Field)
}

func TestParse_UnbalancedParen(t *testing.T) {
	t.Parallel()
	res := Parse("(a AND b")
	require.False(t, res.IsSuccess)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "unbalanced '('")
}

func TestParse_DanglingBooleanOperator(t *testing.T) {
	t.Parallel()
	res := Parse("a AND")
	require.False(t, res.IsSuccess)
	require.NotEmpty(t, res.Errors)
}

func TestParse_CombinedExample(t *testing.T) {
	t.Parallel()
	res := Parse(`title:"quick fox"^2 AND (status:active OR status:pending) AND -price:[10 TO *]`)
	require.Empty(t, res.Errors)
	require.NotNil(t, res.Document.Query)
}

func TestParse_OffsetsMonotoneAcrossErrors(t *testing.T) {
	t.Parallel()
	res := Parse("a # b")
	require.NotEmpty(t, res.Errors)
	require.NotNil(t, res.Document.Query)
	and, ok := res.Document.Query.(*ast.BooleanQueryNode)
	require.True(t, ok)
	assert.LessOrEqual(t, int(and.Position()), int(and.Left.Position()))
	assert.LessOrEqual(t, int(and.Left.Position()), int(and.Right.Position()))
}
