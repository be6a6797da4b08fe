// Package trace provides reading-trace recording for multi-day sensor runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Condition values as they appear in records.
const (
	ConditionNominal     = "nominal"
	ConditionBroken      = "broken"
	ConditionMalfunction = "malfunction"
)

// DayRecord captures the reading reported by one sensor on one business date.
type DayRecord struct {
	SensorID  string `json:"sensor_id" yaml:"sensor_id"`
	Date      string `json:"date" yaml:"date"`
	Weekday   string `json:"weekday" yaml:"weekday"`
	Count     *int64 `json:"count" yaml:"count"` // nil when the store was closed
	Closed    bool   `json:"closed" yaml:"closed"`
	Condition string `json:"condition" yaml:"condition"`
}

// IsAnomaly reports whether the sensor was broken or malfunctioning.
func (r DayRecord) IsAnomaly() bool {
	return r.Condition == ConditionBroken || r.Condition == ConditionMalfunction
}
