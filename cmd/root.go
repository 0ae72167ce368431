package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mediaindex",
	Short:        "Telegram bot indexing the media of private channels",
	SilenceUsage: true,
	RunE:         Run,
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.AddCommand(checkCmd, initdbCmd, versionCmd)
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
