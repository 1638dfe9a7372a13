package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocalSourceFSAdapter_WalkVisitsNestedFiles(t *testing.T) {
	fs := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "top.dart"), "top\n")

	nested := filepath.Join(root, "nested")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	writeTestFile(t, filepath.Join(nested, "child.dart"), "child\n")

	var visited []string

	err := fs.Walk(m.Path(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			visited = append(visited, path)
		}

		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, visited, filepath.Join(root, "top.dart"))
	assert.Contains(t, visited, filepath.Join(nested, "child.dart"))
}

func TestLocalSourceFSAdapter_ReadWrite(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	path := m.Path(filepath.Join(t.TempDir(), "file.txt"))

	require.NoError(t, fs.WriteFile(path, []byte("hello"), 0o644))

	got, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestLocalSourceFSAdapter_WriteFileAtomic(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	dir := t.TempDir()
	path := m.Path(filepath.Join(dir, "generated.dart"))

	require.NoError(t, fs.WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, fs.WriteFileAtomic(path, []byte("second"), 0o644))

	got, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	// No temp files may survive the replace.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "generated.dart", entries[0].Name())
}

func TestLocalSourceFSAdapter_WriteFileAtomicMissingDir(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	path := m.Path(filepath.Join(t.TempDir(), "missing", "generated.dart"))

	err := fs.WriteFileAtomic(path, []byte("x"), 0o644)
	require.Error(t, err)
}

func TestLocalSourceFSAdapter_RemoveAllMissingIsNoop(t *testing.T) {
	fs := NewLocalSourceFSAdapter()

	assert.NoError(t, fs.RemoveAll(m.Path(filepath.Join(t.TempDir(), "absent"))))
}

func TestLocalSourceFSAdapter_Paths(t *testing.T) {
	fs := NewLocalSourceFSAdapter()

	joined := fs.JoinPath("a", "b", "c")
	assert.Equal(t, m.Path(filepath.Join("a", "b", "c")), joined)

	rel, err := fs.RelPath(m.Path("/projects/app"), m.Path("/projects/app/lib/foo.dart"))
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join("lib", "foo.dart")), rel)

	abs, err := fs.Abs(m.Path("."))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(string(abs)))
}
