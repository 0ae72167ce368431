package cmd

import (
	"fmt"
	"runtime"

	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the version number of mediaindex",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mediaindex version: %s %s/%s\nBuildTime: %s, Commit: %s\n", config.Version, runtime.GOOS, runtime.GOARCH, config.BuildTime, config.GitCommit)
	},
}
