package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/BartekS5/portalsync/internal/config"
	"github.com/BartekS5/portalsync/internal/etl"
	"github.com/BartekS5/portalsync/internal/history"
	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/logger"
)

func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.WindowYears > 0 {
		cfg.WindowYears = opts.WindowYears
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openHistory connects to the history store. It returns a nil store when
// history is not configured.
func openHistory(ctx context.Context, cfg *config.Config) (*history.Store, func(), error) {
	if !cfg.HistoryEnabled() {
		return nil, func() {}, nil
	}
	client, err := database.ConnectMongo(ctx, cfg.MongoConnString)
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return history.NewStore(client, cfg.MongoDatabase), closeFn, nil
}

func runSync(cmd *cobra.Command, opts *Options) error {
	out := cmd.OutOrStdout()
	defer waitForKey(cmd.InOrStdin(), out, !opts.NoWait && isInteractive())

	cfg, err := loadConfig(opts)
	if err != nil {
		printFailure(out, "Sync Failed", err)
		return err
	}
	defer logger.Close()

	ctx := context.Background()

	var rec etl.Recorder
	store, closeHistory, err := openHistory(ctx, cfg)
	if err != nil {
		logger.Warnf("Run history disabled: %v", err)
	} else if store != nil {
		defer closeHistory()
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warnf("%v", err)
		}
		rec = store
	}

	report, err := etl.NewPipeline(cfg, rec).Run(ctx)
	printReport(out, report)
	if err != nil {
		printFailure(out, "Sync Failed", err)
		return err
	}
	fmt.Fprintf(out, "Sync Completed Successfully: %s\n", report.FinishedAt.Format(time.DateTime))
	return nil
}

func runCheck(cmd *cobra.Command, opts *Options) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(opts)
	if err != nil {
		printFailure(out, "Check Failed", err)
		return err
	}
	defer logger.Close()

	report, err := etl.NewPipeline(cfg, nil).Check(context.Background())
	if err != nil {
		printFailure(out, "Check Failed", err)
		return err
	}

	fmt.Fprintf(out, "ERP connection OK - %d active customers\n", report.ActiveCustomers)
	for _, t := range etl.DefaultTables {
		fmt.Fprintf(out, "Mirror connection OK - %s has %d rows\n", t.Name(), report.MirrorRows[t.Name()])
	}
	return nil
}

func runHistory(cmd *cobra.Command, opts *Options) error {
	out := cmd.OutOrStdout()
	runs, err := loadHistory(opts)
	if err != nil {
		printFailure(out, "History Failed", err)
		return err
	}
	printHistory(out, runs)
	return nil
}

func loadHistory(opts *Options) ([]history.RunDocument, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	defer logger.Close()

	if !cfg.HistoryEnabled() {
		return nil, errors.New("MONGO_CONNECTION_STRING environment variable not set; run history is disabled")
	}

	ctx := context.Background()
	store, closeHistory, err := openHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeHistory()

	return store.Recent(ctx, opts.Limit)
}

func printReport(w io.Writer, report *etl.RunReport) {
	if report == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tDELETED\tLOADED\tSTATE\tDURATION")
	for _, t := range report.Tables {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", t.Table, t.Deleted, t.Loaded, t.State, t.Duration.Round(time.Millisecond))
	}
	tw.Flush()
	fmt.Fprintf(w, "Run %s took %s\n", report.RunID, report.Duration().Round(time.Millisecond))
}

// printFailure writes the error followed by each underlying cause.
func printFailure(w io.Writer, title string, err error) {
	causes := etl.Causes(err)
	if len(causes) == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", title, causes[0])
	for _, c := range causes[1:] {
		fmt.Fprintf(w, "  caused by: %s\n", c)
	}
}

func printHistory(w io.Writer, runs []history.RunDocument) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tDURATION\tROWS\tFAILED TABLE")
	for _, r := range runs {
		rows := 0
		for _, t := range r.Tables {
			rows += t.Loaded
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Status,
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second), rows, r.FailedTable)
	}
	tw.Flush()
}
