package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMap_FlatAlias(t *testing.T) {
	t.Parallel()
	fm := NewFieldMap()
	fm.Set("status", "state")

	got, ok := fm.Resolve("status")
	require.True(t, ok)
	assert.Equal(t, "state", got)

	got, ok = fm.Resolve("STATUS")
	require.True(t, ok)
	assert.Equal(t, "state", got)
}

func TestFieldMap_Unresolved(t *testing.T) {
	t.Parallel()
	fm := NewFieldMap()
	fm.Set("status", "state")

	_, ok := fm.Resolve("nonexistent")
	assert.False(t, ok)
}

func TestFieldMap_HierarchicalLongestPrefix(t *testing.T) {
	t.Parallel()
	fm := NewFieldMap()
	fm.Set("a.b", "x.y")

	got, ok := fm.Resolve("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "x.y.c", got)

	got, ok = fm.Resolve("a.b")
	require.True(t, ok)
	assert.Equal(t, "x.y", got)
}

func TestFieldMap_LongestPrefixWinsOverShorter(t *testing.T) {
	t.Parallel()
	fm := NewFieldMap()
	fm.Set("a", "short")
	fm.Set("a.b", "long")

	got, ok := fm.Resolve("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "long.c", got)

	got, ok = fm.Resolve("a.z")
	require.True(t, ok)
	assert.Equal(t, "short.z", got)
}
