package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wpreview.dev/pkg/wpreview/internal/domain"
)

var startPubFlag bool
var startOfflineFlag bool

// startCmd represents the start command.
var startCmd = newStartCmd()

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [project-path]",
		Short: "Start a widget preview session",
		Long: `Scan the project for @Preview-annotated functions, generate the preview
scaffold, resolve its dependencies, and launch the preview runtime. The
source tree is watched while the session runs; changed previews are picked
up without restarting.

The project root is the current directory unless a path is given.`,
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

			// SIGINT/SIGTERM end the session: the watch loop stops and the
			// runtime subprocess is released before returning.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return orchestrator.Start(ctx, domain.StartArgs{
				Args:    parsePaths(args),
				Cwd:     cwd,
				Pub:     startPubFlag,
				Offline: startOfflineFlag,
				Watch:   true,
			})
		},
	}

	configureStartFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func configureStartFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&startPubFlag, pubFlagName, true, "run pub get against the scaffold before starting")
	cmd.Flags().BoolVar(&startOfflineFlag, offlineFlagName, false, "resolve scaffold dependencies without network access")
}
