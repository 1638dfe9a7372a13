// Package controller provides output adapters for displaying preview
// discovery and session progress.
package controller

import (
	"context"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

// UI defines the interface for user-facing command output. Implementations
// can use different output methods; the orchestrator stays output-agnostic.
type UI interface {
	// DisplayStageInfo announces a lifecycle stage transition.
	DisplayStageInfo(ctx context.Context, stage string)

	// DisplayPreviewCount reports how many preview declarations a scan found.
	DisplayPreviewCount(ctx context.Context, count int)

	// DisplayPreviewList renders the discovered declarations as a table.
	DisplayPreviewList(ctx context.Context, decls []m.PreviewDeclaration) error

	// DisplayWatchEvent reports a regeneration triggered by a source change.
	DisplayWatchEvent(ctx context.Context, path m.Path, count int)
}
