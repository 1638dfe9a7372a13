package domain

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

// ManifestReader loads the target project's pubspec.yaml.
type ManifestReader interface {
	Read(root m.Path) (m.ProjectManifest, error)
}

type manifestReader struct {
	fs adapter.SourceFSAdapter
}

// NewManifestReader constructs a ManifestReader backed by the provided
// filesystem adapter.
func NewManifestReader(fs adapter.SourceFSAdapter) ManifestReader {
	return &manifestReader{fs: fs}
}

func (r *manifestReader) Read(root m.Path) (m.ProjectManifest, error) {
	content, err := r.fs.ReadFile(r.fs.JoinPath(string(root), ProjectMarkerFile))
	if err != nil {
		return m.ProjectManifest{}, errors.Wrap(err, "read pubspec.yaml")
	}

	var manifest m.ProjectManifest

	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return m.ProjectManifest{}, errors.Wrap(err, "parse pubspec.yaml")
	}

	if manifest.Name == "" {
		manifest.Name = filepath.Base(string(root))
	}

	return manifest, nil
}
