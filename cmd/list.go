package cmd

import (
	"github.com/spf13/cobra"

	"wpreview.dev/pkg/wpreview/internal/controller"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [project-path]",
		Short: "List discovered preview declarations",
		Long:  "Scan the project and print every @Preview-annotated function without touching the scaffold.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}

			cwd, err := workingDir()
			if err != nil {
				return err
			}

			decls, err := orchestrator.ListPreviews(cmd.Context(), parsePaths(args), cwd)
			if err != nil {
				return err
			}

			return controller.NewSimpleUI(cmd).DisplayPreviewList(cmd.Context(), decls)
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
