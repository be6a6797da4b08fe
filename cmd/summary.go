package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inference-sim/visit-sim/sim"
	"github.com/inference-sim/visit-sim/sim/trace"
)

var (
	summaryFrom    string
	summaryTo      string
	summaryWorkers int
	summaryColor   bool
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	anomalyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the simulated readings over a date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseDateRange(summaryFrom, summaryTo)
		if err != nil {
			return err
		}
		sensor, err := sensorOpts.resolve(cmd)
		if err != nil {
			return err
		}
		st, err := sensor.Trace(cmd.Context(), from, to, summaryWorkers, trace.TraceLevelAll)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		title := fmt.Sprintf("Sensor %s, %s to %s", sensor.Name(), from, to)
		_, err = io.WriteString(out, renderSummary(title, trace.Summarize(st), shouldUseColor(out, summaryColor)))
		return err
	},
}

// renderSummary formats a summary as an aligned two-column table.
func renderSummary(title string, s *trace.TraceSummary, color bool) string {
	style := func(st lipgloss.Style, v string) string {
		if !color {
			return v
		}
		return st.Render(v)
	}

	rows := [][2]string{
		{"Days", fmt.Sprint(s.TotalDays)},
		{"Open days", fmt.Sprint(s.OpenDays)},
		{"Closed days", fmt.Sprint(s.ClosedDays)},
		{"Nominal days", fmt.Sprint(s.NominalDays)},
		{"Broken days", fmt.Sprint(s.BrokenDays)},
		{"Malfunction days", fmt.Sprint(s.MalfunctionDays)},
		{"Mean count", fmt.Sprintf("%.1f", s.MeanCount)},
		{"Min count", fmt.Sprint(s.MinCount)},
		{"Max count", fmt.Sprint(s.MaxCount)},
	}
	for wd := sim.Monday; wd <= sim.Sunday; wd++ {
		if mean, ok := s.WeekdayMeans[wd.String()]; ok {
			rows = append(rows, [2]string{"Mean " + wd.String(), fmt.Sprintf("%.1f", mean)})
		}
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, len(r[0]))
	}

	var b strings.Builder
	b.WriteString(style(titleStyle, title))
	b.WriteByte('\n')
	for _, r := range rows {
		value := style(valueStyle, r[1])
		if (r[0] == "Broken days" || r[0] == "Malfunction days") && r[1] != "0" {
			value = style(anomalyStyle, r[1])
		}
		b.WriteString(style(labelStyle, r[0]+strings.Repeat(" ", labelWidth-len(r[0]))))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	return b.String()
}

// fdWriter is an output stream backed by a file descriptor.
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// shouldUseColor reports whether the summary table gets lipgloss styling.
// NO_COLOR always wins; --color forces styling onto pipes and files.
func shouldUseColor(out io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	f, ok := out.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "First business date (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "Last business date, inclusive (YYYY-MM-DD)")
	summaryCmd.Flags().IntVar(&summaryWorkers, "workers", runtime.NumCPU(), "Dates simulated concurrently")
	summaryCmd.Flags().BoolVar(&summaryColor, "color", false, "Force styled output")
	_ = summaryCmd.MarkFlagRequired("from")
	_ = summaryCmd.MarkFlagRequired("to")
}
