package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inference-sim/visit-sim/sim"
)

// defaultBusinessDate is simulated when count gets no date argument.
const defaultBusinessDate = "2023-10-25"

var (
	countBase bool // Skip the reliability gate
	countJSON bool // Emit a JSON record instead of the bare count
)

var countCmd = &cobra.Command{
	Use:   "count [YYYY-MM-DD]",
	Short: "Print the simulated visitor count for one business date",
	Long:  "Print the visitor count the sensor reports for a business date (default " + defaultBusinessDate + "). Closed days print \"closed\".",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := defaultBusinessDate
		if len(args) == 1 {
			raw = args[0]
		}
		date, err := sim.ParseBusinessDate(raw)
		if err != nil {
			return err
		}

		sensor, err := sensorOpts.resolve(cmd)
		if err != nil {
			return err
		}

		reading := sensor.VisitCount(date)
		if countBase {
			reading = sensor.BaseCount(date)
		}
		return writeReading(cmd.OutOrStdout(), sensor, sim.DailyReading{Date: date, Reading: reading}, countJSON)
	},
}

// writeReading prints one day's reading, either bare or as a JSON record.
func writeReading(w io.Writer, sensor *sim.VisitSensor, dr sim.DailyReading, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, dr.Reading)
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(dr.Record(sensor.ID().String()))
}

func init() {
	countCmd.Flags().BoolVar(&countBase, "base", false, "Print the base count without sensor failures")
	countCmd.Flags().BoolVar(&countJSON, "json", false, "Print a JSON record")
}
