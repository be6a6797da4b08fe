package trace

// TraceSummary aggregates statistics from a SensorTrace.
// Count statistics only consider nominal open days, so degraded readings
// do not skew them.
type TraceSummary struct {
	TotalDays       int
	OpenDays        int
	ClosedDays      int
	NominalDays     int
	BrokenDays      int
	MalfunctionDays int

	MeanCount float64
	MinCount  int64
	MaxCount  int64

	WeekdayMeans map[string]float64 // weekday name → mean nominal count
}

// Summarize computes aggregate statistics from a SensorTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SensorTrace) *TraceSummary {
	summary := &TraceSummary{
		WeekdayMeans: make(map[string]float64),
	}
	if st == nil {
		return summary
	}

	weekdaySums := make(map[string]int64)
	weekdayDays := make(map[string]int)
	var total int64
	counted := 0

	for _, r := range st.Records {
		summary.TotalDays++
		if r.Closed {
			summary.ClosedDays++
		} else {
			summary.OpenDays++
		}
		switch r.Condition {
		case ConditionBroken:
			summary.BrokenDays++
			continue
		case ConditionMalfunction:
			summary.MalfunctionDays++
			continue
		default:
			summary.NominalDays++
		}
		if r.Closed || r.Count == nil {
			continue
		}

		n := *r.Count
		if counted == 0 || n < summary.MinCount {
			summary.MinCount = n
		}
		if counted == 0 || n > summary.MaxCount {
			summary.MaxCount = n
		}
		total += n
		counted++
		weekdaySums[r.Weekday] += n
		weekdayDays[r.Weekday]++
	}

	if counted > 0 {
		summary.MeanCount = float64(total) / float64(counted)
	}
	for day, sum := range weekdaySums {
		summary.WeekdayMeans[day] = float64(sum) / float64(weekdayDays[day])
	}

	return summary
}
