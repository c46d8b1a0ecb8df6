package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/pkg/config"
)

// NewRootCommand assembles the mailforge command tree.
func NewRootCommand(version string) *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "mailforge",
		Short:         "Visual email template editor back end",
		Long:          `mailforge edits email templates as component trees and renders them to HTML, React Email source or plain text.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "load environment variables from these files before reading configuration")

	root.AddCommand(
		NewServeCommand(),
		NewRenderCommand(),
		NewNewCommand(),
		NewBlocksCommand(),
	)
	return root
}
