package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

// PubRunnerAdapter abstracts the package-manager subprocess that resolves the
// scaffold's dependencies.
type PubRunnerAdapter interface {
	// Get runs `<tool> pub get` with dir as the working directory, appending
	// --offline when offline is true. The combined stdout/stderr output and
	// exit code are returned in the result; a non-zero exit is reported via
	// the result, not the error, so callers can surface the output verbatim.
	Get(ctx context.Context, dir m.Path, offline bool) (m.ResolutionResult, error)
}

// LocalPubRunnerAdapter provides a concrete implementation using os/exec.
type LocalPubRunnerAdapter struct {
	tool    string
	timeout time.Duration
}

// NewLocalPubRunnerAdapter constructs a LocalPubRunnerAdapter invoking the
// given tool (e.g. "flutter" or "dart") with a default 5 minute timeout.
func NewLocalPubRunnerAdapter(tool string) *LocalPubRunnerAdapter {
	return &LocalPubRunnerAdapter{
		tool:    tool,
		timeout: 5 * time.Minute,
	}
}

// Get runs `<tool> pub get` against the scaffold directory.
func (a *LocalPubRunnerAdapter) Get(ctx context.Context, dir m.Path, offline bool) (m.ResolutionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := pubGetArgs(offline)

	cmd := exec.CommandContext(ctx, a.tool, args...)
	cmd.Dir = string(dir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String() + stderr.String()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return m.ResolutionResult{ExitCode: exitErr.ExitCode(), Output: output}, nil
	}

	if err != nil {
		return m.ResolutionResult{}, errors.Wrapf(err, "running %s pub get", a.tool)
	}

	return m.ResolutionResult{ExitCode: 0, Output: output}, nil
}

// pubGetArgs builds the argument list for a pub get invocation.
func pubGetArgs(offline bool) []string {
	args := []string{"pub", "get"}
	if offline {
		args = append(args, "--offline")
	}

	return args
}
