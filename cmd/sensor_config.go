package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/visit-sim/sim"
)

// SensorFile represents a sensor preset file.
// All top-level sections must be listed to satisfy strict parsing.
type SensorFile struct {
	Default string                  `yaml:"default" toml:"default"`
	Sensors map[string]SensorPreset `yaml:"sensors" toml:"sensors"`
}

// SensorPreset holds the parameters of one named sensor.
// Nil fields keep the value they are applied over.
type SensorPreset struct {
	MeanVisits             *float64 `yaml:"mean_visits" toml:"mean_visits"`
	StdVisits              *float64 `yaml:"std_visits" toml:"std_visits"`
	BreakProbability       *float64 `yaml:"break_probability" toml:"break_probability"`
	MalfunctionProbability *float64 `yaml:"malfunction_probability" toml:"malfunction_probability"`
}

// LoadSensorFile parses a YAML or TOML preset file, chosen by extension.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadSensorFile(path string) (*SensorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sensor file: %w", err)
	}

	var file SensorFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return nil, fmt.Errorf("parsing sensor file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("parsing sensor file %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parsing sensor file %s: file is empty", path)
			}
			return nil, fmt.Errorf("parsing sensor file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported sensor file extension %q; use .yaml, .yml or .toml", ext)
	}
	return &file, nil
}

// Names returns the preset names in sorted order.
func (f *SensorFile) Names() []string {
	names := make([]string, 0, len(f.Sensors))
	for name := range f.Sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named preset, or the file's default when name is empty.
// A file with a single preset and no default uses that preset.
func (f *SensorFile) Lookup(name string) (SensorPreset, string, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" {
		if len(f.Sensors) != 1 {
			return SensorPreset{}, "", fmt.Errorf("no sensor selected; use --sensor with one of: %s", strings.Join(f.Names(), ", "))
		}
		name = f.Names()[0]
	}
	preset, ok := f.Sensors[name]
	if !ok {
		return SensorPreset{}, "", fmt.Errorf("unknown sensor %q; available: %s", name, strings.Join(f.Names(), ", "))
	}
	return preset, name, nil
}

// Apply overlays the preset's set fields on cfg.
func (p SensorPreset) Apply(cfg sim.SensorConfig) sim.SensorConfig {
	if p.MeanVisits != nil {
		cfg.MeanVisits = *p.MeanVisits
	}
	if p.StdVisits != nil {
		cfg.StdVisits = *p.StdVisits
	}
	if p.BreakProbability != nil {
		cfg.BreakProbability = *p.BreakProbability
	}
	if p.MalfunctionProbability != nil {
		cfg.MalfunctionProbability = *p.MalfunctionProbability
	}
	return cfg
}
