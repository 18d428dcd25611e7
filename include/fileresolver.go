package include

import (
	"context"
	"os"
	"path/filepath"
)

// fragmentExt is the file extension a FileResolver looks for when mapping
// an include name to a path under its root.
const fragmentExt = ".lucene"

// FileResolver resolves include names against `.lucene` fragment files
// under a root directory: name "recent" resolves root/recent.lucene.
// Names containing a path separator, and the names "." and "..", are
// rejected so an include reference can't escape root.
type FileResolver struct {
	root string
}

// NewFileResolver returns a FileResolver rooted at dir.
func NewFileResolver(dir string) *FileResolver {
	return &FileResolver{root: dir}
}

// ResolveInclude implements visitor.IncludeResolver.
func (r *FileResolver) ResolveInclude(_ context.Context, name string) (string, bool, error) {
	if !validIncludeName(name) {
		return "", false, nil
	}

	path := filepath.Join(r.root, name+fragmentExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func validIncludeName(name string) bool {
	if name == "" || name != filepath.Base(name) {
		return false
	}
	return name != "." && name != ".."
}
