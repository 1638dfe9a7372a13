package domain

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	"wpreview.dev/pkg/wpreview/internal/controller"
	m "wpreview.dev/pkg/wpreview/internal/model"
	"wpreview.dev/pkg/wpreview/pkg"
)

// Lifecycle stages, logged and surfaced on every transition.
const (
	StageValidating  = "validating project"
	StageScaffolding = "preparing scaffold"
	StageScanning    = "scanning for previews"
	StageGenerating  = "generating preview aggregate"
	StageResolving   = "resolving scaffold dependencies"
	StageRunning     = "running preview session"
	StageRemoving    = "removing scaffold"
)

// StartArgs parameterizes a start session.
type StartArgs struct {
	// Args holds the positional project-path arguments, validated by the
	// resolver (at most one is allowed).
	Args []m.Path

	// Cwd is the caller's working directory, the implicit project root when
	// no path argument is given. Injected so tests never mutate real
	// process state.
	Cwd m.Path

	// Pub requests dependency resolution after generation.
	Pub bool

	// Offline passes --offline to the package manager.
	Offline bool

	// Watch keeps the session alive: the runtime is launched and the source
	// tree is watched for changes that re-trigger scan and generation.
	Watch bool
}

// CleanArgs parameterizes a clean invocation.
type CleanArgs struct {
	Args []m.Path
	Cwd  m.Path
}

// WatcherFactory creates a source-tree watcher rooted at root. Paths for
// which skip returns true are not watched.
type WatcherFactory func(root m.Path, skip func(path string) bool) (adapter.WatcherAdapter, error)

// Orchestrator composes the resolver, scaffold manager, scanner, generator
// and dependency invoker into the start/clean command flows.
type Orchestrator interface {
	Start(ctx context.Context, args StartArgs) error
	Clean(ctx context.Context, args CleanArgs) error

	// ListPreviews resolves the project and returns a scan's declarations
	// without touching the scaffold.
	ListPreviews(ctx context.Context, args []m.Path, cwd m.Path) ([]m.PreviewDeclaration, error)
}

type orchestrator struct {
	resolver   Resolver
	manifests  ManifestReader
	scanner    Scanner
	generator  Generator
	scaffold   Scaffold
	pub        adapter.PubRunnerAdapter
	runtime    adapter.RuntimeAdapter
	newWatcher WatcherFactory
	ui         controller.UI
	debounce   time.Duration
}

// NewOrchestrator constructs an Orchestrator from its collaborators. runtime
// and newWatcher may be nil, in which case Start finishes after dependency
// resolution instead of handing off to a live session.
func NewOrchestrator(
	resolver Resolver,
	manifests ManifestReader,
	scanner Scanner,
	generator Generator,
	scaffold Scaffold,
	pub adapter.PubRunnerAdapter,
	runtime adapter.RuntimeAdapter,
	newWatcher WatcherFactory,
	ui controller.UI,
	debounce time.Duration,
) Orchestrator {
	return &orchestrator{
		resolver:   resolver,
		manifests:  manifests,
		scanner:    scanner,
		generator:  generator,
		scaffold:   scaffold,
		pub:        pub,
		runtime:    runtime,
		newWatcher: newWatcher,
		ui:         ui,
		debounce:   debounce,
	}
}

// Start drives the full preview lifecycle. Any stage failure aborts the
// command; no stage is retried.
func (o *orchestrator) Start(ctx context.Context, args StartArgs) error {
	o.stage(ctx, StageValidating)

	root, err := o.resolver.Resolve(args.Args, args.Cwd)
	if err != nil {
		return err
	}

	manifest, err := o.manifests.Read(root)
	if err != nil {
		return err
	}

	o.stage(ctx, StageScaffolding)

	scaffoldDir, err := o.scaffold.Ensure(root, manifest)
	if err != nil {
		return err
	}

	if _, err := o.regenerate(ctx, root, manifest); err != nil {
		return err
	}

	if args.Pub {
		o.stage(ctx, StageResolving)

		result, err := o.pub.Get(ctx, scaffoldDir, args.Offline)
		if err != nil {
			return err
		}

		if result.ExitCode != 0 {
			return &m.DependencyResolutionError{ExitCode: result.ExitCode, Output: result.Output}
		}
	}

	if !args.Watch || o.runtime == nil {
		return nil
	}

	o.stage(ctx, StageRunning)

	return o.runSession(ctx, root, scaffoldDir, manifest)
}

// Clean removes the scaffold. Validation failure aborts before any deletion.
func (o *orchestrator) Clean(ctx context.Context, args CleanArgs) error {
	o.stage(ctx, StageValidating)

	root, err := o.resolver.Resolve(args.Args, args.Cwd)
	if err != nil {
		return err
	}

	o.stage(ctx, StageRemoving)

	return o.scaffold.Remove(root)
}

// ListPreviews resolves and scans without touching the scaffold.
func (o *orchestrator) ListPreviews(ctx context.Context, args []m.Path, cwd m.Path) ([]m.PreviewDeclaration, error) {
	root, err := o.resolver.Resolve(args, cwd)
	if err != nil {
		return nil, err
	}

	return o.scanner.Scan(ctx, root)
}

// regenerate runs one scan-and-generate pass. The generated-file write
// serializes on the scaffold lock, so concurrent passes for the same
// scaffold never interleave their output.
func (o *orchestrator) regenerate(ctx context.Context, root m.Path, manifest m.ProjectManifest) (int, error) {
	o.stage(ctx, StageScanning)

	decls, err := o.scanner.Scan(ctx, root)
	if err != nil {
		return 0, err
	}

	o.ui.DisplayPreviewCount(ctx, len(decls))
	o.stage(ctx, StageGenerating)

	content := o.generator.Generate(manifest, decls)

	return len(decls), o.scaffold.WriteGenerated(root, content)
}

// runSession launches the preview runtime and the watch loop and blocks until
// either exits or ctx is cancelled. Cancellation stops both.
func (o *orchestrator) runSession(ctx context.Context, root, scaffoldDir m.Path, manifest m.ProjectManifest) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return o.runtime.Run(ctx, scaffoldDir)
	})

	g.Go(func() error {
		return o.watchLoop(ctx, root, manifest)
	})

	return g.Wait()
}

// watchLoop consumes debounced source-change events and re-runs scan and
// generation for each. A failed regeneration is logged but does not end the
// session; the previous generated file stays in place thanks to the atomic
// replace.
func (o *orchestrator) watchLoop(ctx context.Context, root m.Path, manifest m.ProjectManifest) error {
	if o.newWatcher == nil {
		<-ctx.Done()
		return nil
	}

	watcher, err := o.newWatcher(root, o.skipWatch(root))
	if err != nil {
		return err
	}

	defer func() {
		_ = watcher.Close()
	}()

	events := pkg.Debounce(ctx, watcher.Events(), o.debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}

			slog.Warn("source watcher error", "error", err)

		case changed, ok := <-events:
			if !ok {
				return nil
			}

			slog.Debug("source change detected", "path", changed)

			count, err := o.regenerate(ctx, root, manifest)
			if err != nil {
				slog.Error("regeneration after source change failed", "path", changed, "error", err)
				continue
			}

			o.ui.DisplayWatchEvent(ctx, changed, count)
		}
	}
}

// skipWatch excludes the tool-owned subtree from the watch set so the
// generated file never re-triggers its own regeneration.
func (o *orchestrator) skipWatch(root m.Path) func(path string) bool {
	toolRoot := filepath.Join(string(root), ToolDirName)

	return func(path string) bool {
		return strings.HasPrefix(path, toolRoot)
	}
}

func (o *orchestrator) stage(ctx context.Context, stage string) {
	slog.Debug("stage transition", "stage", stage)
	o.ui.DisplayStageInfo(ctx, stage)
}
