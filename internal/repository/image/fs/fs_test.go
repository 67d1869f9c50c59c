package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repoImage "github.com/studentnewspaper/imagemage/internal/repository/image"
)

func setupRoot(t *testing.T) (string, *FileRepository) {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photo.jpg"), []byte("jpg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "pic.jpg"), []byte("jpg"), 0o644))

	// Sibling directory sharing the root's name as a prefix.
	require.NoError(t, os.MkdirAll(filepath.Join(base, "root-evil"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "root-evil", "secret.txt"), []byte("secret"), 0o644))

	return root, NewFileRepository(root)
}

func TestResolve_ValidPaths(t *testing.T) {
	root, repo := setupRoot(t)

	tests := []struct {
		name         string
		relativePath string
		want         string
	}{
		{
			name:         "file at root",
			relativePath: "photo.jpg",
			want:         filepath.Join(root, "photo.jpg"),
		},
		{
			name:         "nested file",
			relativePath: "sub/pic.jpg",
			want:         filepath.Join(root, "sub", "pic.jpg"),
		},
		{
			name:         "redundant segments normalize away",
			relativePath: "sub/../photo.jpg",
			want:         filepath.Join(root, "photo.jpg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Resolve(tt.relativePath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Rejections(t *testing.T) {
	_, repo := setupRoot(t)

	tests := []struct {
		name         string
		relativePath string
	}{
		{name: "parent traversal", relativePath: "../root-evil/secret.txt"},
		{name: "deep traversal", relativePath: "../../etc/passwd"},
		{name: "bare parent", relativePath: ".."},
		{name: "null byte", relativePath: "photo.jpg\x00.png"},
		{name: "nonexistent file", relativePath: "missing.jpg"},
		{name: "directory", relativePath: "sub"},
		{name: "root itself", relativePath: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Resolve(tt.relativePath)
			assert.ErrorIs(t, err, repoImage.ErrBadPath)
		})
	}
}

func TestResolve_SiblingPrefixRootRejected(t *testing.T) {
	_, repo := setupRoot(t)

	// Normalizes to <base>/root-evil/secret.txt, which merely shares the
	// root's string prefix.
	_, err := repo.Resolve("../root-evil/secret.txt")
	assert.ErrorIs(t, err, repoImage.ErrBadPath)
}

func TestOpen_ReadsResolvedFile(t *testing.T) {
	_, repo := setupRoot(t)

	path, err := repo.Resolve("photo.jpg")
	require.NoError(t, err)

	f, err := repo.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 3)
	_, err = f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(buf))
}
