package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// malfunctionFactor deflates a reading far enough that downstream checks can spot it.
const malfunctionFactor = 0.2

// DefaultSensorName names a sensor built without a preset.
const DefaultSensorName = "default"

// sensorNamespace scopes the name-based sensor ids.
var sensorNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/inference-sim/visit-sim/sensors"))

// BaseCountFunc produces the undegraded reading for a date.
type BaseCountFunc func(d BusinessDate) Reading

// ComputeBaseCount simulates the visitors counted on d by a healthy sensor.
// The normal sample is always drawn, even on closed days, so every date
// consumes exactly one value from its stream.
func ComputeBaseCount(cfg SensorConfig, d BusinessDate) Reading {
	sample := visitSample(cfg, SeedKeyFor(d))
	wd := d.Weekday()
	if wd.IsClosed() {
		return Closed()
	}
	return Count(int64(math.Floor(adjustForWeekday(sample, wd))))
}

// adjustForWeekday applies the day's traffic multiplier to a raw sample.
func adjustForWeekday(sample float64, wd Weekday) float64 {
	return sample * wd.TrafficMultiplier()
}

// ApplyReliability layers sensor failures on top of base.
// One uniform roll decides the day: below BreakProbability the sensor is
// broken and base is never called, below MalfunctionProbability the base
// reading is deflated, otherwise it is returned unchanged.
func ApplyReliability(cfg SensorConfig, d BusinessDate, base BaseCountFunc) Reading {
	r := reliabilityDraw(SeedKeyFor(d))
	reading := gate(cfg, r, func() Reading { return base(d) })
	if reading.Condition.IsAnomaly() {
		logrus.Debugf("sensor %s on %s (roll=%.4f)", reading.Condition, d, r)
	}
	return reading
}

// gate maps a reliability roll to a reading. base is evaluated lazily.
func gate(cfg SensorConfig, r float64, base func() Reading) Reading {
	if r < cfg.BreakProbability {
		return Count(0).withCondition(ConditionBroken)
	}
	reading := base()
	if r < cfg.MalfunctionProbability {
		return deflate(reading).withCondition(ConditionMalfunction)
	}
	return reading.withCondition(ConditionNominal)
}

// deflate scales a count by malfunctionFactor. Closed days stay closed.
func deflate(r Reading) Reading {
	n, ok := r.Value()
	if !ok {
		return r
	}
	return Count(int64(math.Floor(float64(n) * malfunctionFactor)))
}

// GetVisitCount returns the reading reported by the sensor on d.
func GetVisitCount(cfg SensorConfig, d BusinessDate) Reading {
	return ApplyReliability(cfg, d, func(d BusinessDate) Reading {
		return ComputeBaseCount(cfg, d)
	})
}

// VisitSensor is a named, validated simulated counting device.
// It holds no mutable state and is safe for concurrent use.
type VisitSensor struct {
	name string
	id   uuid.UUID
	cfg  SensorConfig
}

// NewVisitSensor validates cfg and returns a sensor called name.
// An empty name uses DefaultSensorName.
func NewVisitSensor(name string, cfg SensorConfig) (*VisitSensor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sensor %q: %w", name, err)
	}
	if name == "" {
		name = DefaultSensorName
	}
	return &VisitSensor{
		name: name,
		id:   SensorID(name),
		cfg:  cfg,
	}, nil
}

// SensorID derives a stable identifier from a sensor name.
func SensorID(name string) uuid.UUID {
	return uuid.NewSHA1(sensorNamespace, []byte(name))
}

// Name returns the sensor name.
func (s *VisitSensor) Name() string { return s.name }

// ID returns the name-derived sensor id.
func (s *VisitSensor) ID() uuid.UUID { return s.id }

// Config returns a copy of the sensor configuration.
func (s *VisitSensor) Config() SensorConfig { return s.cfg }

// BaseCount returns the reading a healthy sensor would report on d.
func (s *VisitSensor) BaseCount(d BusinessDate) Reading {
	return ComputeBaseCount(s.cfg, d)
}

// VisitCount returns the reading the sensor reports on d, failures included.
func (s *VisitSensor) VisitCount(d BusinessDate) Reading {
	return GetVisitCount(s.cfg, d)
}
