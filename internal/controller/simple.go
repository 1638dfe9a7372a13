package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

var (
	stageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayStageInfo announces a lifecycle stage transition.
func (s *SimpleUI) DisplayStageInfo(ctx context.Context, stage string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Println(stageStyle.Render("==> " + stage))
}

// DisplayPreviewCount reports how many preview declarations a scan found.
func (s *SimpleUI) DisplayPreviewCount(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if count == 0 {
		s.cmd.Println(dimStyle.Render("No previews found."))
		return
	}

	s.cmd.Printf("Found %d preview(s)\n", count)
}

// DisplayPreviewList renders the discovered declarations as a table.
func (s *SimpleUI) DisplayPreviewList(ctx context.Context, decls []m.PreviewDeclaration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(renderPreviewTable(decls))

	return nil
}

// DisplayWatchEvent reports a regeneration triggered by a source change.
func (s *SimpleUI) DisplayWatchEvent(ctx context.Context, path m.Path, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Printf("%s %s (%d preview(s))\n", dimStyle.Render("regenerated after change:"), path, count)
}

func renderPreviewTable(decls []m.PreviewDeclaration) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "Symbol"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, decl := range decls {
		table.Append([]string{string(decl.Module), decl.Symbol})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(decls))})
	table.Render()

	return tableBuffer.String()
}
