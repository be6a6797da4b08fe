package sim

import (
	"math/rand"
)

// === SeedKey ===

// SeedKey identifies the random stream of one business date.
// Two computations with the same SeedKey and identical configuration
// MUST produce identical readings.
type SeedKey int64

// SeedKeyFor derives the seed of d from the date alone (its ordinal).
func SeedKeyFor(d BusinessDate) SeedKey {
	return SeedKey(d.Ordinal())
}

// NewRNG returns a freshly seeded generator positioned at the start of the
// key's stream. Each call returns an independent instance, so concurrent
// callers never share generator state.
func (k SeedKey) NewRNG() *rand.Rand {
	return rand.New(rand.NewSource(int64(k)))
}

// === Draws ===

// Both draws below restart the date's stream: the reliability roll and the
// visit sample are the first value of two separate generators.

// visitSample draws the unadjusted visitor count for the date.
func visitSample(cfg SensorConfig, key SeedKey) float64 {
	return key.NewRNG().NormFloat64()*cfg.StdVisits + cfg.MeanVisits
}

// reliabilityDraw draws the uniform roll in [0, 1) that gates break and malfunction.
func reliabilityDraw(key SeedKey) float64 {
	return key.NewRNG().Float64()
}
