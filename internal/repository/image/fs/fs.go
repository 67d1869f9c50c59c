package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	repoImage "github.com/studentnewspaper/imagemage/internal/repository/image"
)

// FileRepository resolves caller-supplied relative paths against a fixed
// root directory and opens the resulting files for streaming.
type FileRepository struct {
	root string
}

func NewFileRepository(root string) *FileRepository {
	return &FileRepository{
		root: filepath.Clean(root),
	}
}

// Resolve joins relativePath to the root and verifies that the normalized
// result still lives under it, contains no NUL byte and names an existing
// regular file. Every failure maps to ErrBadPath.
func (r *FileRepository) Resolve(relativePath string) (string, error) {
	if strings.ContainsRune(relativePath, 0) {
		return "", repoImage.ErrBadPath
	}

	fullPath := filepath.Join(r.root, relativePath)

	// Segment-aware containment check: a plain prefix test would accept a
	// sibling like /root-evil for root /root.
	if fullPath != r.root && !strings.HasPrefix(fullPath, r.root+string(filepath.Separator)) {
		return "", repoImage.ErrBadPath
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return "", repoImage.ErrBadPath
	}
	if info.IsDir() {
		return "", repoImage.ErrBadPath
	}

	return fullPath, nil
}

// Open opens a path previously produced by Resolve.
func (r *FileRepository) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
