package domain

import (
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

const (
	// ToolDirName is the tool-owned directory under the project root.
	ToolDirName = ".wpreview"

	// ScaffoldDirName is the scaffold sub-project directory inside ToolDirName.
	ScaffoldDirName = "widget_preview_scaffold"

	// GeneratedFileName is the aggregation file inside the scaffold's lib/.
	GeneratedFileName = "generated_preview.dart"

	dirPerm  = os.FileMode(0o750)
	filePerm = os.FileMode(0o644)
)

// Scaffold owns the on-disk scaffold directory: creation, teardown, and the
// generated file inside it. All operations on one scaffold path serialize on
// a single lock so ensure, remove and generated-file writes never interleave.
type Scaffold interface {
	// Dir returns the scaffold directory path for a project root.
	Dir(root m.Path) m.Path

	// GeneratedFile returns the aggregation file path for a project root.
	GeneratedFile(root m.Path) m.Path

	// Ensure creates the scaffold directory and its static template files if
	// absent. Safe to call repeatedly: existing templates are never clobbered.
	Ensure(root m.Path, manifest m.ProjectManifest) (m.Path, error)

	// Remove deletes the scaffold. A missing scaffold is a no-op, not an error.
	Remove(root m.Path) error

	// WriteGenerated atomically replaces the aggregation file's content.
	WriteGenerated(root m.Path, content []byte) error
}

type scaffold struct {
	fs adapter.SourceFSAdapter

	mu    sync.Mutex
	locks map[m.Path]*sync.Mutex
}

// NewScaffold constructs a Scaffold backed by the provided filesystem adapter.
func NewScaffold(fs adapter.SourceFSAdapter) Scaffold {
	return &scaffold{
		fs:    fs,
		locks: make(map[m.Path]*sync.Mutex),
	}
}

func (s *scaffold) Dir(root m.Path) m.Path {
	return s.fs.JoinPath(string(root), ToolDirName, ScaffoldDirName)
}

func (s *scaffold) GeneratedFile(root m.Path) m.Path {
	return s.fs.JoinPath(string(s.Dir(root)), SourceDirName, GeneratedFileName)
}

// lockFor returns the per-scaffold lock. Different project roots never share
// a lock.
func (s *scaffold) lockFor(root m.Path) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[root]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[root] = lock
	}

	return lock
}

func (s *scaffold) Ensure(root m.Path, manifest m.ProjectManifest) (m.Path, error) {
	lock := s.lockFor(root)
	lock.Lock()
	defer lock.Unlock()

	dir := s.Dir(root)
	libDir := s.fs.JoinPath(string(dir), SourceDirName)

	if err := s.fs.MkdirAll(libDir, dirPerm); err != nil {
		return "", errors.Wrap(err, "create scaffold directory")
	}

	templates := []struct {
		path    m.Path
		content string
	}{
		{s.fs.JoinPath(string(dir), "pubspec.yaml"), scaffoldPubspec(manifest.Name)},
		{s.fs.JoinPath(string(libDir), "widget_preview.dart"), widgetPreviewTemplate},
		{s.fs.JoinPath(string(libDir), "main.dart"), mainTemplate},
	}

	for _, tpl := range templates {
		if _, err := s.fs.FileInfo(tpl.path); err == nil {
			continue
		}

		if err := s.fs.WriteFile(tpl.path, []byte(tpl.content), filePerm); err != nil {
			return "", errors.Wrapf(err, "write scaffold template %s", tpl.path)
		}
	}

	return dir, nil
}

func (s *scaffold) Remove(root m.Path) error {
	lock := s.lockFor(root)
	lock.Lock()
	defer lock.Unlock()

	// RemoveAll on a missing path is already a no-op. The whole tool-owned
	// directory goes, not just the scaffold subdirectory.
	return s.fs.RemoveAll(s.fs.JoinPath(string(root), ToolDirName))
}

func (s *scaffold) WriteGenerated(root m.Path, content []byte) error {
	lock := s.lockFor(root)
	lock.Lock()
	defer lock.Unlock()

	path := s.GeneratedFile(root)

	if err := s.fs.WriteFileAtomic(path, content, filePerm); err != nil {
		return &m.GenerationError{Path: path, Cause: err}
	}

	return nil
}
