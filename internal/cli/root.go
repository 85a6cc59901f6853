package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the blog CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "goblog",
		Short:        "A minimal multi-user blog",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewInitDBCommand())

	return cmd
}
