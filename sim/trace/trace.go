package trace

// TraceLevel controls which days are kept in a trace.
type TraceLevel string

const (
	// TraceLevelAll records every simulated day.
	TraceLevelAll TraceLevel = "all"
	// TraceLevelAnomalies records only broken and malfunctioning days.
	TraceLevelAnomalies TraceLevel = "anomalies"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelAll:       true,
	TraceLevelAnomalies: true,
	"":                  true, // empty defaults to all
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level    TraceLevel
	SensorID string // stamped on records that do not carry one
}

// SensorTrace collects day records for one sensor.
type SensorTrace struct {
	Config  TraceConfig
	Records []DayRecord
	Skipped int // days filtered out by Level
}

// NewSensorTrace creates a SensorTrace ready for recording.
func NewSensorTrace(config TraceConfig) *SensorTrace {
	return &SensorTrace{
		Config:  config,
		Records: make([]DayRecord, 0),
	}
}

// Record appends a day record unless the trace level filters it out.
func (st *SensorTrace) Record(record DayRecord) {
	if st.Config.Level == TraceLevelAnomalies && !record.IsAnomaly() {
		st.Skipped++
		return
	}
	if record.SensorID == "" {
		record.SensorID = st.Config.SensorID
	}
	st.Records = append(st.Records, record)
}
