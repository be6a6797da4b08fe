package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/visit-sim/sim"
)

const (
	// Reference mall entrance used when no preset or flag says otherwise.
	defaultMeanVisits = 1500
	defaultStdVisits  = 150
)

var (
	logLevel   string      // Log verbosity level
	sensorOpts sensorFlags // Sensor parameters shared by every subcommand
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "visit-sim",
	Short:        "Deterministic visitor-count simulator for a store entrance sensor",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// sensorFlags holds the sensor-related persistent flags.
type sensorFlags struct {
	meanVisits             float64
	stdVisits              float64
	breakProbability       float64
	malfunctionProbability float64
	configPath             string
	sensorName             string
}

func (f *sensorFlags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.Float64Var(&f.meanVisits, "mean", defaultMeanVisits, "Expected visitors on an unmodified weekday")
	fs.Float64Var(&f.stdVisits, "std", defaultStdVisits, "Standard deviation of daily visitors")
	fs.Float64Var(&f.breakProbability, "break-prob", sim.DefaultBreakProbability, "Daily probability of a full sensor outage")
	fs.Float64Var(&f.malfunctionProbability, "malfunction-prob", sim.DefaultMalfunctionProbability, "Daily probability of a degraded reading")
	fs.StringVar(&f.configPath, "config", "", "Sensor preset file (.yaml, .yml or .toml)")
	fs.StringVar(&f.sensorName, "sensor", "", "Preset name in --config (defaults to the file's default)")
}

// resolve builds the sensor from built-in defaults, then the preset file,
// then any flag the user set explicitly.
func (f *sensorFlags) resolve(cmd *cobra.Command) (*sim.VisitSensor, error) {
	cfg := sim.NewSensorConfig(defaultMeanVisits, defaultStdVisits)
	name := ""

	if f.configPath != "" {
		file, err := LoadSensorFile(f.configPath)
		if err != nil {
			return nil, err
		}
		preset, presetName, err := file.Lookup(f.sensorName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.configPath, err)
		}
		cfg = preset.Apply(cfg)
		name = presetName
		logrus.Infof("Using sensor preset %q from %s", presetName, f.configPath)
	} else if f.sensorName != "" {
		return nil, fmt.Errorf("--sensor %q requires --config", f.sensorName)
	}

	// Explicit flags win over presets
	flags := cmd.Flags()
	if flags.Changed("mean") {
		cfg.MeanVisits = f.meanVisits
	}
	if flags.Changed("std") {
		cfg.StdVisits = f.stdVisits
	}
	if flags.Changed("break-prob") {
		cfg.BreakProbability = f.breakProbability
	}
	if flags.Changed("malfunction-prob") {
		cfg.MalfunctionProbability = f.malfunctionProbability
	}

	sensor, err := sim.NewVisitSensor(name, cfg)
	if err != nil {
		logrus.Errorf("Invalid sensor configuration: %v", err)
		return nil, err
	}
	logrus.Infof("Sensor %s (%s): mean=%g std=%g break=%g malfunction=%g",
		sensor.Name(), sensor.ID(), cfg.MeanVisits, cfg.StdVisits, cfg.BreakProbability, cfg.MalfunctionProbability)
	return sensor, nil
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	sensorOpts.register(rootCmd)

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(summaryCmd)
}
