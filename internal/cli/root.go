// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "portalsync",
		Short: "portalsync - refresh the customer portal mirror from the ERP",
		Long: `portalsync copies customers, order headers and order detail lines from the ERP
database into the customer portal's mirror database. Every run replaces the
mirror tables with a fresh snapshot, one table after another.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to a YAML settings file (environment variables override it)")

	rootCmd.AddCommand(NewSyncCmd(opts), NewCheckCmd(opts), NewHistoryCmd(opts))

	return rootCmd
}
