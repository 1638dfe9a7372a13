package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

func newTestProject(t *testing.T, name string) string {
	t.Helper()

	root := t.TempDir()
	writeProjectFile(t, root, "pubspec.yaml", "name: "+name+"\n")

	return root
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolver_ExplicitPath(t *testing.T) {
	resolver := NewResolver(adapter.NewLocalSourceFSAdapter())
	root := newTestProject(t, "demo")

	got, err := resolver.Resolve([]m.Path{m.Path(root)}, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, m.Path(root), got)
}

func TestResolver_DefaultsToCwd(t *testing.T) {
	resolver := NewResolver(adapter.NewLocalSourceFSAdapter())
	root := newTestProject(t, "demo")

	got, err := resolver.Resolve(nil, m.Path(root))
	require.NoError(t, err)
	assert.Equal(t, m.Path(root), got)
}

func TestResolver_MultiplePathsFailsBeforeFilesystem(t *testing.T) {
	resolver := NewResolver(adapter.NewLocalSourceFSAdapter())

	_, err := resolver.Resolve([]m.Path{"a", "b"}, "/elsewhere")
	require.Error(t, err)

	var multiErr *m.MultipleProjectPathsError
	require.ErrorAs(t, err, &multiErr)
	assert.Contains(t, err.Error(), "only one directory should be provided")
}

func TestResolver_MissingPath(t *testing.T) {
	resolver := NewResolver(adapter.NewLocalSourceFSAdapter())
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := resolver.Resolve([]m.Path{m.Path(missing)}, "/elsewhere")
	require.Error(t, err)

	var invalidErr *m.InvalidPathError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, m.Path(missing), invalidErr.Path)
	assert.Contains(t, err.Error(), missing)
}

func TestResolver_FileInsteadOfDirectory(t *testing.T) {
	resolver := NewResolver(adapter.NewLocalSourceFSAdapter())
	root := t.TempDir()
	file := filepath.Join(root, "pubspec.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: x\n"), 0o644))

	_, err := resolver.Resolve([]m.Path{m.Path(file)}, "/elsewhere")

	var invalidErr *m.InvalidPathError
	require.ErrorAs(t, err, &invalidErr)
}

func TestResolver_NotAProject(t *testing.T) {
	resolver := NewResolver(adapter.NewLocalSourceFSAdapter())
	root := t.TempDir()

	_, err := resolver.Resolve([]m.Path{m.Path(root)}, "/elsewhere")
	require.Error(t, err)

	var notProjectErr *m.NotAProjectError
	require.ErrorAs(t, err, &notProjectErr)
	assert.Equal(t, m.Path(root), notProjectErr.Path)
	assert.Contains(t, err.Error(), "not a valid Flutter project")
}
