package cmd

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/opendhw/core/model"
	"github.com/kilianp07/opendhw/core/profile"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the built-in diurnal probability tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeTables(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func writeTables(w io.Writer) error {
	for _, day := range []model.DayType{model.Weekday, model.Weekend} {
		table, err := profile.TableFor(day)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\nfrom\tto\thours\tprobability\n", day)
		hour := 0.0
		for _, p := range table {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\n", clock(hour), clock(hour+p.DurationHours), p.DurationHours, p.Probability)
			hour += p.DurationHours
		}
		fmt.Fprintln(tw)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// clock formats decimal hours since midnight as HH:MM.
func clock(hours float64) string {
	d := time.Duration(math.Round(hours*60)) * time.Minute
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
