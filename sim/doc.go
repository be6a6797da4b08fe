// Package sim provides the deterministic visitor-count simulator for a single
// entrance sensor.
//
// # Reading Guide
//
// Start with these files:
//   - sensor.go: base-count generation, the reliability gate, and VisitSensor
//   - reading.go: the tagged Reading result (count or closed) and its Condition
//   - date.go: BusinessDate, the sole input and seed source
//
// # Determinism
//
// Every computation derives its seed from the business date ordinal and
// builds its own generator (rng.go). The same date and configuration always
// produce the same Reading, and readings for different dates can be computed
// concurrently (series.go).
//
// # Sub-packages
//
//   - sim/trace/: day records and aggregate summaries for multi-day runs
package sim
