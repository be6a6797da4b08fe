package sim

import (
	"encoding/json"
	"strconv"
)

// ClosedSentinel is the integer the legacy CSV feeds used for a closed day.
// Only Reading.Int exposes it; readings themselves are tagged.
const ClosedSentinel = -1

// Condition describes the health of the sensor on the simulated day.
type Condition string

const (
	// ConditionNominal is a clean reading.
	ConditionNominal Condition = "nominal"
	// ConditionBroken is a full-day outage; the count is forced to zero.
	ConditionBroken Condition = "broken"
	// ConditionMalfunction is a partial failure; the count is deflated.
	ConditionMalfunction Condition = "malfunction"
)

// IsAnomaly reports whether the sensor misbehaved.
func (c Condition) IsAnomaly() bool {
	return c == ConditionBroken || c == ConditionMalfunction
}

// Reading is the result of simulating one day: either a visitor count or
// the closed marker, together with the sensor condition that produced it.
// Counts may be negative for extreme mean/spread combinations.
type Reading struct {
	closed    bool
	count     int64
	Condition Condition
}

// Count returns a nominal reading of n visitors.
func Count(n int64) Reading {
	return Reading{count: n, Condition: ConditionNominal}
}

// Closed returns a nominal reading for a day without opening hours.
func Closed() Reading {
	return Reading{closed: true, Condition: ConditionNominal}
}

// IsClosed reports whether the store was closed.
func (r Reading) IsClosed() bool {
	return r.closed
}

// Value returns the visitor count; ok is false for a closed day.
func (r Reading) Value() (n int64, ok bool) {
	if r.closed {
		return 0, false
	}
	return r.count, true
}

// Int flattens the reading to an integer, mapping closed to ClosedSentinel.
func (r Reading) Int() int64 {
	if r.closed {
		return ClosedSentinel
	}
	return r.count
}

func (r Reading) withCondition(c Condition) Reading {
	r.Condition = c
	return r
}

// String renders the count, or "closed".
func (r Reading) String() string {
	if r.closed {
		return "closed"
	}
	return strconv.FormatInt(r.count, 10)
}

type readingJSON struct {
	Count     *int64    `json:"count"`
	Closed    bool      `json:"closed"`
	Condition Condition `json:"condition"`
}

// MarshalJSON renders a closed day with a null count.
func (r Reading) MarshalJSON() ([]byte, error) {
	out := readingJSON{Closed: r.closed, Condition: r.Condition}
	if n, ok := r.Value(); ok {
		out.Count = &n
	}
	return json.Marshal(out)
}
