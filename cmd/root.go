package cmd

import (
	"github.com/compozy/releasetag/pkg/version"
	"github.com/spf13/cobra"
)

var rootOpts struct {
	dir      string
	logLevel string
	logJSON  bool
}

var rootCmd = &cobra.Command{
	Use:   "releasetag",
	Short: "A CLI tool for tagging multi-module releases",
	Long: `releasetag tags the current release commit with the branch name, the BOM version
and every product version, then pushes the tags to the private and public remotes.`,
	Version:      version.Summary(),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.dir, "dir", "", "Working tree to tag (defaults to work_dir from config)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&rootOpts.logJSON, "log-json", false, "Emit logs as JSON")
}

func Execute() error {
	return rootCmd.Execute()
}
