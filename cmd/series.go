package cmd

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/visit-sim/sim"
	"github.com/inference-sim/visit-sim/sim/trace"
)

var (
	seriesFrom    string // First business date (inclusive)
	seriesTo      string // Last business date (inclusive)
	seriesFormat  string // csv, json or yaml
	seriesWorkers int    // Concurrent date evaluations
	seriesTrace   string // all or anomalies
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Simulate every business date in a range",
	Long:  "Simulate the sensor for every date in [--from, --to] and write one record per day to stdout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseDateRange(seriesFrom, seriesTo)
		if err != nil {
			return err
		}
		if !trace.IsValidTraceLevel(seriesTrace) {
			return fmt.Errorf("unknown trace level %q; valid: all, anomalies", seriesTrace)
		}

		sensor, err := sensorOpts.resolve(cmd)
		if err != nil {
			return err
		}

		st, err := sensor.Trace(cmd.Context(), from, to, seriesWorkers, trace.TraceLevel(seriesTrace))
		if err != nil {
			return err
		}
		logrus.Infof("Simulated %s..%s: %d records, %d filtered", from, to, len(st.Records), st.Skipped)
		return writeSeries(cmd.OutOrStdout(), seriesFormat, st.Records)
	},
}

// parseDateRange parses the inclusive --from/--to pair.
func parseDateRange(fromRaw, toRaw string) (sim.BusinessDate, sim.BusinessDate, error) {
	from, err := sim.ParseBusinessDate(fromRaw)
	if err != nil {
		return sim.BusinessDate{}, sim.BusinessDate{}, fmt.Errorf("--from: %w", err)
	}
	to, err := sim.ParseBusinessDate(toRaw)
	if err != nil {
		return sim.BusinessDate{}, sim.BusinessDate{}, fmt.Errorf("--to: %w", err)
	}
	if to.Before(from) {
		return sim.BusinessDate{}, sim.BusinessDate{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return from, to, nil
}

func init() {
	seriesCmd.Flags().StringVar(&seriesFrom, "from", "", "First business date (YYYY-MM-DD)")
	seriesCmd.Flags().StringVar(&seriesTo, "to", "", "Last business date, inclusive (YYYY-MM-DD)")
	seriesCmd.Flags().StringVar(&seriesFormat, "format", formatCSV, "Output format (csv, json, yaml)")
	seriesCmd.Flags().IntVar(&seriesWorkers, "workers", runtime.NumCPU(), "Dates simulated concurrently")
	seriesCmd.Flags().StringVar(&seriesTrace, "trace", string(trace.TraceLevelAll), "Days to emit (all, anomalies)")
	_ = seriesCmd.MarkFlagRequired("from")
	_ = seriesCmd.MarkFlagRequired("to")
}
