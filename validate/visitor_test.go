package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucene-ql/lqp/ast"
	"github.com/lucene-ql/lqp/parser"
	"github.com/lucene-ql/lqp/visitor"
)

func parse(t *testing.T, input string) *ast.QueryDocument {
	t.Helper()
	res := parser.Parse(input)
	require.Empty(t, res.Errors)
	return res.Document
}

func TestVisitor_CollectsReferencedFieldsAndOperations(t *testing.T) {
	t.Parallel()
	doc := parse(t, `status:active AND age:[1 TO 5] AND title:"hello world"`)
	result, err := Run(visitor.NewContext(nil), doc, Options{})
	require.NoError(t, err)

	assert.True(t, result.ReferencedFields["status"])
	assert.True(t, result.ReferencedFields["age"])
	assert.True(t, result.ReferencedFields["title"])
	assert.Equal(t, 3, result.Operations["field"])
	assert.Equal(t, 1, result.Operations["range"])
	assert.Equal(t, 1, result.Operations["phrase"])
	assert.Equal(t, 1, result.Operations["term"])
}

func TestVisitor_TracksMaxNodeDepth(t *testing.T) {
	t.Parallel()
	doc := parse(t, "((a))")
	result, err := Run(visitor.NewContext(nil), doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.MaxNodeDepth)
}

func TestVisitor_LeadingWildcardRecordedAsError(t *testing.T) {
	t.Parallel()
	doc := parse(t, "*foo")
	result, err := Run(visitor.NewContext(nil), doc, Options{})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "leading wildcard")
}

func TestVisitor_LeadingWildcardAllowed(t *testing.T) {
	t.Parallel()
	doc := parse(t, "*foo")
	result, err := Run(visitor.NewContext(nil), doc, Options{AllowLeadingWildcards: true})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
}

func TestVisitor_RestrictedFieldReferenced(t *testing.T) {
	t.Parallel()
	doc := parse(t, "secret:1 AND status:active")
	result, err := Run(visitor.NewContext(nil), doc, Options{RestrictedFields: []string{"secret"}})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "secret")
}

func TestVisitor_AllowedFieldsExcludesOthers(t *testing.T) {
	t.Parallel()
	doc := parse(t, "status:active AND rogue:1")
	result, err := Run(visitor.NewContext(nil), doc, Options{AllowedFields: []string{"status"}})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "rogue")
}

func TestVisitor_MaxDepthExceeded(t *testing.T) {
	t.Parallel()
	doc := parse(t, "((a))")
	result, err := Run(visitor.NewContext(nil), doc, Options{AllowedMaxNodeDepth: 1})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "max node depth")
}

func TestVisitor_ShouldThrowRaisesValidationError(t *testing.T) {
	t.Parallel()
	doc := parse(t, "*foo")
	_, err := Run(visitor.NewContext(nil), doc, Options{ShouldThrow: true})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 1)
}

func TestVisitor_RestrictedOperation(t *testing.T) {
	t.Parallel()
	doc := parse(t, `title:"hello"`)
	result, err := Run(visitor.NewContext(nil), doc, Options{RestrictedOperations: []string{"phrase"}})
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors)
}
