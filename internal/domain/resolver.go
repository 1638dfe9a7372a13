// Package domain implements the discovery, generation and scaffold lifecycle
// logic behind the wpreview commands.
package domain

import (
	"wpreview.dev/pkg/wpreview/internal/adapter"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

// ProjectMarkerFile must exist at the root of every valid target project.
const ProjectMarkerFile = "pubspec.yaml"

// Resolver validates and normalizes the target project path.
type Resolver interface {
	// Resolve returns the absolute project root for the given positional
	// arguments. When no argument is supplied, cwd is the candidate root.
	// Pure validation: no side effects on the filesystem.
	Resolve(args []m.Path, cwd m.Path) (m.Path, error)
}

type resolver struct {
	fs adapter.SourceFSAdapter
}

// NewResolver constructs a Resolver backed by the provided filesystem adapter.
func NewResolver(fs adapter.SourceFSAdapter) Resolver {
	return &resolver{fs: fs}
}

func (r *resolver) Resolve(args []m.Path, cwd m.Path) (m.Path, error) {
	if len(args) > 1 {
		return "", &m.MultipleProjectPathsError{}
	}

	root := cwd

	if len(args) == 1 {
		info, err := r.fs.FileInfo(args[0])
		if err != nil || !info.IsDir() {
			return "", &m.InvalidPathError{Path: args[0]}
		}

		root = args[0]
	}

	abs, err := r.fs.Abs(root)
	if err != nil {
		return "", &m.InvalidPathError{Path: root}
	}

	marker := r.fs.JoinPath(string(abs), ProjectMarkerFile)
	if _, err := r.fs.FileInfo(marker); err != nil {
		return "", &m.NotAProjectError{Path: abs}
	}

	return abs, nil
}
