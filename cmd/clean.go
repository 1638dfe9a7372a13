package cmd

import (
	"github.com/spf13/cobra"

	"wpreview.dev/pkg/wpreview/internal/domain"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [project-path]",
		Short: "Remove the widget preview scaffold",
		Long: `Delete the scaffold directory created by start. Running clean on a project
with no scaffold is a no-op. Stop any running start session first; cleaning
under a live session is not supported.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}

			cwd, err := workingDir()
			if err != nil {
				return err
			}

			return orchestrator.Clean(cmd.Context(), domain.CleanArgs{
				Args: parsePaths(args),
				Cwd:  cwd,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
