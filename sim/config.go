package sim

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultBreakProbability is the daily chance of a full sensor outage.
	DefaultBreakProbability = 0.015
	// DefaultMalfunctionProbability is the daily chance of a degraded reading.
	// Break days are drawn from the bottom of the same range.
	DefaultMalfunctionProbability = 0.035
)

var (
	// ErrInvalidConfig wraps every out-of-range sensor parameter.
	ErrInvalidConfig = errors.New("invalid sensor config")
	// ErrProbabilityOrder reports a break probability above the malfunction
	// probability, which makes part of the malfunction range unreachable.
	ErrProbabilityOrder = errors.New("break probability exceeds malfunction probability")
)

// SensorConfig groups the parameters of one simulated counting device.
type SensorConfig struct {
	// MeanVisits is the expected visitor count on an unmodified weekday.
	MeanVisits float64 `yaml:"mean_visits" toml:"mean_visits" json:"mean_visits"`
	// StdVisits is the spread of the normal distribution (>= 0).
	StdVisits float64 `yaml:"std_visits" toml:"std_visits" json:"std_visits"`
	// BreakProbability is the daily chance of a full outage, in [0, 1].
	BreakProbability float64 `yaml:"break_probability" toml:"break_probability" json:"break_probability"`
	// MalfunctionProbability is the daily chance of degradation, in [0, 1].
	MalfunctionProbability float64 `yaml:"malfunction_probability" toml:"malfunction_probability" json:"malfunction_probability"`
}

// NewSensorConfig returns a config with the default failure probabilities.
func NewSensorConfig(meanVisits, stdVisits float64) SensorConfig {
	return SensorConfig{
		MeanVisits:             meanVisits,
		StdVisits:              stdVisits,
		BreakProbability:       DefaultBreakProbability,
		MalfunctionProbability: DefaultMalfunctionProbability,
	}
}

// Validate checks that all fields are finite and in range.
// A break probability above the malfunction probability is reported as
// ErrProbabilityOrder instead of being silently reinterpreted.
func (c SensorConfig) Validate() error {
	if err := validateFinite("mean_visits", c.MeanVisits); err != nil {
		return err
	}
	if err := validateFinite("std_visits", c.StdVisits); err != nil {
		return err
	}
	if c.StdVisits < 0 {
		return fmt.Errorf("%w: std_visits must be non-negative, got %f", ErrInvalidConfig, c.StdVisits)
	}
	if err := validateProbability("break_probability", c.BreakProbability); err != nil {
		return err
	}
	if err := validateProbability("malfunction_probability", c.MalfunctionProbability); err != nil {
		return err
	}
	if c.BreakProbability > c.MalfunctionProbability {
		return fmt.Errorf("%w: break_probability=%g, malfunction_probability=%g",
			ErrProbabilityOrder, c.BreakProbability, c.MalfunctionProbability)
	}
	return nil
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidConfig, name, val)
	}
	return nil
}

func validateProbability(name string, val float64) error {
	if err := validateFinite(name, val); err != nil {
		return err
	}
	if val < 0 || val > 1 {
		return fmt.Errorf("%w: %s must be in [0, 1], got %f", ErrInvalidConfig, name, val)
	}
	return nil
}
