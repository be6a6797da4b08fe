package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/visit-sim/sim/trace"
)

// Output formats accepted by --format.
const (
	formatCSV  = "csv"
	formatJSON = "json"
	formatYAML = "yaml"
)

var csvHeader = []string{"sensor_id", "date", "weekday", "count", "closed", "condition"}

// writeSeries encodes day records in the requested format.
func writeSeries(w io.Writer, format string, records []trace.DayRecord) error {
	switch format {
	case formatCSV:
		return writeSeriesCSV(w, records)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q; valid: csv, json, yaml", format)
	}
}

// writeSeriesCSV writes one row per record; closed days leave count empty.
func writeSeriesCSV(w io.Writer, records []trace.DayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		count := ""
		if r.Count != nil {
			count = strconv.FormatInt(*r.Count, 10)
		}
		row := []string{r.SensorID, r.Date, r.Weekday, count, strconv.FormatBool(r.Closed), r.Condition}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
