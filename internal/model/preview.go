// Package model defines the value types shared across the wpreview CLI.
package model

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// PreviewDeclaration identifies one preview-producing function discovered in
// the target project. Module is the declaring file's path relative to the
// project root (e.g. "lib/widgets/button.dart"); Symbol is the function name.
type PreviewDeclaration struct {
	Module Path
	Symbol string
}

// ProjectManifest carries the fields of the target project's pubspec.yaml
// that the generator needs.
type ProjectManifest struct {
	Name string `yaml:"name"`
}

// ResolutionResult captures the outcome of a package-manager invocation
// against the scaffold.
type ResolutionResult struct {
	ExitCode int
	Output   string
}
