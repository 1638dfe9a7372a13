package model

import "fmt"

// MultipleProjectPathsError reports that more than one project directory was
// supplied on the command line. It is raised before any filesystem access.
type MultipleProjectPathsError struct{}

func (e *MultipleProjectPathsError) Error() string {
	return "only one directory should be provided"
}

// InvalidPathError reports that an explicitly supplied project path does not
// exist or is not a directory.
type InvalidPathError struct {
	Path Path
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

// NotAProjectError reports that the resolved root lacks a pubspec.yaml.
type NotAProjectError struct {
	Path Path
}

func (e *NotAProjectError) Error() string {
	return fmt.Sprintf("%s is not a valid Flutter project (no pubspec.yaml found)", e.Path)
}

// ScanError reports a filesystem traversal failure during preview discovery.
// Finding zero declarations is success, not a ScanError.
type ScanError struct {
	Cause error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("preview scan failed: %v", e.Cause)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}

// GenerationError reports a failure to write the generated aggregation file.
// The atomic replace guarantees no partially written file remains.
type GenerationError struct {
	Path  Path
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// DependencyResolutionError reports a non-zero exit from the package manager.
// Output holds the subprocess's combined stdout and stderr verbatim.
type DependencyResolutionError struct {
	ExitCode int
	Output   string
}

func (e *DependencyResolutionError) Error() string {
	return fmt.Sprintf("pub get exited with status %d:\n%s", e.ExitCode, e.Output)
}
