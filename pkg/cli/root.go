package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "uidocs",
		Short:         "uidocs - API documentation generator for annotated AngularJS sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Configuration file (default: uidocs.yaml in the current directory)")
	root.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")

	// Add subcommands
	root.AddCommand(newGenerateCommand())
	root.AddCommand(newCheckCommand())

	return root
}
