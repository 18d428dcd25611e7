package lqp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ReturnsDocument(t *testing.T) {
	t.Parallel()
	res := Parse("status:active")
	require.True(t, res.IsSuccess)
	require.NotNil(t, res.Document.Query)
}

func TestMustParse_PanicsOnError(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParse("field:[1 TO") })
}

func TestMustParse_ReturnsDocumentOnSuccess(t *testing.T) {
	t.Parallel()
	doc := MustParse("a AND b")
	assert.NotNil(t, doc.Query)
}

func TestEndToEnd_ResolveAndRender(t *testing.T) {
	t.Parallel()
	fm := NewFieldMap()
	fm.Set("status", "state")

	doc := MustParse("status:active")
	ctx := NewContext(nil)
	Walk(NewFieldResolver(fm), ctx, doc)

	got := BuildQueryString(ctx, doc)
	assert.Equal(t, "state:active", got)
}

func TestEndToEnd_ValidateRejectsRestrictedField(t *testing.T) {
	t.Parallel()
	doc := MustParse("secret:1")
	opts := ValidateOptions{RestrictedFields: []string{"secret"}, ShouldThrow: true}
	_, err := Validate(NewContext(nil), doc, opts)
	assert.Error(t, err)
}
