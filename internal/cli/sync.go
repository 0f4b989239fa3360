package cli

import (
	"github.com/spf13/cobra"
)

// Options are the flags shared by the sub-commands.
type Options struct {
	ConfigFile  string
	NoWait      bool
	WindowYears int
	Limit       int64
}

func NewSyncCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replace the mirror's customer, order header and order detail tables with the ERP's current data",
		RunE: func(c *cobra.Command, args []string) error {
			return runSync(c, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoWait, "no-wait", false, "Do not wait for a key press before exiting")
	cmd.Flags().IntVarP(&opts.WindowYears, "window-years", "w", 0, "Trailing window of orders to copy, in years (overrides SYNC_WINDOW_YEARS)")

	return cmd
}

func NewCheckCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test both database connections and report row counts",
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c, opts)
		},
	}
}

func NewHistoryCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent sync runs recorded in MongoDB",
		RunE: func(c *cobra.Command, args []string) error {
			return runHistory(c, opts)
		},
	}

	cmd.Flags().Int64VarP(&opts.Limit, "limit", "n", 10, "Number of runs to show")

	return cmd
}
