package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/infra/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent synthesis runs from the SQLite ledger",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

func init() {
	historyCmd.Flags().String("db", "", "ledger path, defaults to metrics.history_path")
	historyCmd.Flags().Int("limit", 20, "number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func listHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.Metrics.HistoryPath
	}
	if path == "" {
		return fmt.Errorf("no ledger: set --db or metrics.history_path")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer store.Close()
	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	return writeHistory(cmd.OutOrStdout(), runs)
}

func writeHistory(w io.Writer, runs []coremetrics.RunEvent) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "time\trun\tmethod\tstrategy\tstep\tdraw-offs\tvolume [L]\tstatus")
	for _, r := range runs {
		status := "ok"
		if r.Failed() {
			status = r.Err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%ds\t%d\t%.1f\t%s\n",
			r.Time.Format("2006-01-02 15:04:05"), r.RunID, r.Method, r.Strategy,
			r.StepSeconds, r.Drawoffs, r.VolumeL, status)
	}
	return tw.Flush()
}
