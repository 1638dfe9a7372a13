package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

func newCapturedUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_DisplayStageInfo(t *testing.T) {
	ui, out := newCapturedUI()

	ui.DisplayStageInfo(context.Background(), "scanning for previews")

	assert.Contains(t, out.String(), "scanning for previews")
}

func TestSimpleUI_DisplayPreviewCount(t *testing.T) {
	ui, out := newCapturedUI()

	ui.DisplayPreviewCount(context.Background(), 3)
	assert.Contains(t, out.String(), "Found 3 preview(s)")

	out.Reset()

	ui.DisplayPreviewCount(context.Background(), 0)
	assert.Contains(t, out.String(), "No previews found")
}

func TestSimpleUI_DisplayPreviewList(t *testing.T) {
	ui, out := newCapturedUI()

	err := ui.DisplayPreviewList(context.Background(), []m.PreviewDeclaration{
		{Module: "lib/button.dart", Symbol: "primaryButton"},
		{Module: "lib/card.dart", Symbol: "plainCard"},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "lib/button.dart")
	assert.Contains(t, output, "primaryButton")
	assert.Contains(t, output, "lib/card.dart")
	assert.Contains(t, output, "2")
}

func TestSimpleUI_CancelledContextSuppressesOutput(t *testing.T) {
	ui, out := newCapturedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayStageInfo(ctx, "never shown")
	ui.DisplayPreviewCount(ctx, 9)

	assert.Empty(t, out.String())
}
