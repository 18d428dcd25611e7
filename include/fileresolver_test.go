package include

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileResolver_ReadsFragment(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recent.lucene"), []byte("status:active"), 0o644))

	r := NewFileResolver(dir)
	text, ok, err := r.ResolveInclude(nil, "recent")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "status:active", text)
}

func TestFileResolver_MissingFragment(t *testing.T) {
	t.Parallel()
	r := NewFileResolver(t.TempDir())
	_, ok, err := r.ResolveInclude(nil, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileResolver_RejectsPathEscape(t *testing.T) {
	t.Parallel()
	r := NewFileResolver(t.TempDir())
	_, ok, err := r.ResolveInclude(nil, "../secrets")
	require.NoError(t, err)
	assert.False(t, ok)
}
