package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/carrental/core/runlog"
)

var historyFlags struct {
	since    time.Duration
	modified bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded solver runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only runs newer than this duration")
	historyCmd.Flags().BoolVar(&historyFlags.modified, "modified", false, "filter on the reward variant")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := runlog.Open(cfg.RunLog)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("run log is disabled")
	}
	defer func() { _ = store.Close() }()

	var q runlog.RunQuery
	if historyFlags.since > 0 {
		q.Start = time.Now().Add(-historyFlags.since)
	}
	if cmd.Flags().Changed("modified") {
		q.Modified = &historyFlags.modified
	}
	recs, err := store.Query(context.Background(), q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tMODIFIED\tCONVERGED\tITERATIONS\tSWEEPS\tDURATION")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%d\t%d\t%s\n",
			r.ID, r.Timestamp.Format(time.RFC3339), r.Params.Solver.Modified, r.Converged,
			r.Iterations, r.Sweeps, time.Duration(r.DurationMS)*time.Millisecond)
	}
	return tw.Flush()
}
