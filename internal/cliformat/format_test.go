package cliformat

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucene-ql/lqp/parser"
)

func TestLocate_FirstLine(t *testing.T) {
	t.Parallel()
	line, col, text := locate("status:active", 7)
	assert.Equal(t, 1, line)
	assert.Equal(t, 8, col)
	assert.Equal(t, "status:active", text)
}

func TestLocate_SecondLine(t *testing.T) {
	t.Parallel()
	input := "first line\nsecond line"
	line, col, text := locate(input, 12)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
	assert.Equal(t, "second line", text)
}

func TestLocate_ClampsOutOfRangeOffset(t *testing.T) {
	t.Parallel()
	line, col, text := locate("short", 9000)
	assert.Equal(t, 1, line)
	assert.Equal(t, len("short")+1, col)
	assert.Equal(t, "short", text)
}

func TestUnderline_AtLeastOneCaret(t *testing.T) {
	t.Parallel()
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	assert.Equal(t, "^", underline(1, 0))
	assert.Equal(t, "  ^^^", underline(3, 3))
}

func TestFormatDiagnostics_ContainsMessageAndLine(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	out := FormatDiagnostics("status:active", []Diagnostic{
		{Message: "unexpected token", Offset: 7, Length: 6},
	})
	require.NotEmpty(t, out)
	assert.Contains(t, out, "unexpected token")
	assert.Contains(t, out, "status:active")
	assert.Contains(t, out, "1:8")
}

func TestFormatDiagnostics_MultipleDiagnosticsConcatenate(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	out := FormatDiagnostics("a:b c:d", []Diagnostic{
		{Message: "first", Offset: 0, Length: 1},
		{Message: "second", Offset: 4, Length: 1},
	})
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func TestFromParserErrors_ConvertsRealParseFailure(t *testing.T) {
	t.Parallel()
	res := parser.Parse("field:(unclosed")
	require.NotEmpty(t, res.Errors)

	diags := FromParserErrors(res.Errors)
	require.Len(t, diags, len(res.Errors))
	for i, e := range res.Errors {
		assert.Equal(t, e.Message, diags[i].Message)
		assert.Equal(t, e.Offset, diags[i].Offset)
		assert.Equal(t, e.Length, diags[i].Length)
	}
}
