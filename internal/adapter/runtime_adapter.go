package adapter

import (
	"context"
	"io"
	"os/exec"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

// RuntimeAdapter abstracts the long-running preview runtime that renders the
// aggregated previews. The orchestrator only hands off to it; rendering is
// entirely the runtime's concern.
type RuntimeAdapter interface {
	// Run launches the runtime against the scaffold and blocks until it exits
	// or ctx is cancelled. Cancelling ctx terminates the subprocess.
	Run(ctx context.Context, scaffold m.Path) error
}

// LocalRuntimeAdapter launches `<tool> run` in the scaffold directory.
type LocalRuntimeAdapter struct {
	tool   string
	stdout io.Writer
	stderr io.Writer
}

// NewLocalRuntimeAdapter constructs a LocalRuntimeAdapter that streams the
// runtime's output to the provided writers.
func NewLocalRuntimeAdapter(tool string, stdout, stderr io.Writer) *LocalRuntimeAdapter {
	return &LocalRuntimeAdapter{
		tool:   tool,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run launches the preview runtime and blocks until it exits.
func (a *LocalRuntimeAdapter) Run(ctx context.Context, scaffold m.Path) error {
	cmd := exec.CommandContext(ctx, a.tool, "run")
	cmd.Dir = string(scaffold)
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr

	return cmd.Run()
}
