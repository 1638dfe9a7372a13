// Package cmd provides the root command and CLI setup for wpreview.
package cmd

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	"wpreview.dev/pkg/wpreview/internal/controller"
	"wpreview.dev/pkg/wpreview/internal/domain"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

// excludePatterns is a root-level flag that filters scanned files.
var excludePatterns []string

// verboseFlag enables debug logging.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

const rootLongDescription = `wpreview previews isolated widgets of a Flutter application without running
the full application. It scans the project for @Preview-annotated functions,
aggregates them into a throwaway scaffold sub-project, and launches a preview
session that stays in sync with your source tree.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wpreview",
		Short: "Flutter widget preview tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file location (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// buildOrchestrator assembles the component graph for a command invocation.
// Tests swap this out to inject fakes.
var buildOrchestrator = func(cmd *cobra.Command) (domain.Orchestrator, error) {
	exclude, err := compileExcludePatterns(viper.GetStringSlice(excludeConfigKey))
	if err != nil {
		return nil, err
	}

	pubTool := viper.GetString(pubToolConfigKey)
	debounce := time.Duration(viper.GetInt(watchDebounceKey)) * time.Millisecond

	fs := adapter.NewLocalSourceFSAdapter()

	newWatcher := func(root m.Path, skip func(path string) bool) (adapter.WatcherAdapter, error) {
		return adapter.NewFSNotifyWatcher(root, skip)
	}

	return domain.NewOrchestrator(
		domain.NewResolver(fs),
		domain.NewManifestReader(fs),
		domain.NewScanner(fs, exclude),
		domain.NewGenerator(),
		domain.NewScaffold(fs),
		adapter.NewLocalPubRunnerAdapter(pubTool),
		adapter.NewLocalRuntimeAdapter(pubTool, cmd.OutOrStdout(), cmd.ErrOrStderr()),
		newWatcher,
		controller.NewSimpleUI(cmd),
		debounce,
	), nil
}

func compileExcludePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func workingDir() (m.Path, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working directory: %w", err)
	}

	return m.Path(cwd), nil
}
