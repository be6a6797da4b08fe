package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/visit-sim/sim/internal/testutil"
)

// mallConfig is the reference device used by the command-line defaults.
var mallConfig = NewSensorConfig(1500, 150)

func decade(t *testing.T) []BusinessDate {
	t.Helper()
	var out []BusinessDate
	for _, day := range testutil.DateRange(t, testutil.Day(2015, time.January, 1), testutil.Day(2024, time.December, 31)) {
		out = append(out, DateOf(day))
	}
	return out
}

// === Base-count generator ===

func TestComputeBaseCount_SundayAlwaysClosed(t *testing.T) {
	for _, d := range decade(t) {
		if d.Weekday() != Sunday {
			continue
		}
		r := ComputeBaseCount(mallConfig, d)
		require.Truef(t, r.IsClosed(), "%s: Sunday base count = %s, want closed", d, r)
	}
}

func TestComputeBaseCount_OpenDaysNeverClosed(t *testing.T) {
	for _, d := range decade(t) {
		if d.Weekday() == Sunday {
			continue
		}
		r := ComputeBaseCount(mallConfig, d)
		require.Falsef(t, r.IsClosed(), "%s: open day reported closed", d)
	}
}

func TestComputeBaseCount_FloorsAdjustedSample(t *testing.T) {
	// GIVEN one date per open weekday
	monday := MustBusinessDate(2023, time.October, 23)
	for i := 0; i < 6; i++ {
		d := monday.AddDays(i)

		// WHEN the base count is computed
		got, ok := ComputeBaseCount(mallConfig, d).Value()
		require.True(t, ok)

		// THEN it is the floor of the date's sample times the weekday multiplier
		sample := visitSample(mallConfig, SeedKeyFor(d))
		want := int64(math.Floor(sample * d.Weekday().TrafficMultiplier()))
		assert.Equal(t, want, got, "date %s", d)
	}
}

func TestComputeBaseCount_NegativeSamplesNotClamped(t *testing.T) {
	// GIVEN a mean far below zero
	cfg := NewSensorConfig(-500, 10)

	// WHEN an open weekday is simulated
	n, ok := ComputeBaseCount(cfg, MustBusinessDate(2023, time.October, 23)).Value()

	// THEN the negative count is returned as-is
	require.True(t, ok)
	assert.Less(t, n, int64(0))
}

func TestComputeBaseCount_MeanTracksConfig(t *testing.T) {
	// BDD: over many Mondays the base count averages to the configured mean,
	// and Saturdays to the mean times 1.35
	var mondays, saturdays []float64
	for _, d := range decade(t) {
		n, ok := ComputeBaseCount(mallConfig, d).Value()
		switch d.Weekday() {
		case Monday:
			require.True(t, ok)
			mondays = append(mondays, float64(n))
		case Saturday:
			require.True(t, ok)
			saturdays = append(saturdays, float64(n))
		}
	}
	testutil.AssertMeanNear(t, "monday mean", 1500, mean(mondays), 0.03)
	testutil.AssertMeanNear(t, "saturday mean", 1500*1.35, mean(saturdays), 0.03)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestAdjustForWeekday_Monotonic(t *testing.T) {
	// GIVEN a fixed positive sample
	const sample = 1432.7

	sat := adjustForWeekday(sample, Saturday)
	fri := adjustForWeekday(sample, Friday)
	wed := adjustForWeekday(sample, Wednesday)

	// THEN Saturday >= Friday >= Wednesday >= every unmodified day
	assert.GreaterOrEqual(t, sat, fri)
	assert.GreaterOrEqual(t, fri, wed)
	for _, wd := range []Weekday{Monday, Tuesday, Thursday} {
		assert.GreaterOrEqual(t, wed, adjustForWeekday(sample, wd))
		assert.Equal(t, sample, adjustForWeekday(sample, wd))
	}
}

// === Reliability gate ===

func countingBase(r Reading, calls *int) func() Reading {
	return func() Reading {
		*calls++
		return r
	}
}

func TestGate_BreakDominance(t *testing.T) {
	for _, roll := range []float64{0, 0.001, 0.0149999} {
		// GIVEN a roll below the break probability and a huge base count
		calls := 0
		got := gate(mallConfig, roll, countingBase(Count(1_000_000), &calls))

		// THEN the sensor reports exactly zero without evaluating the base count
		n, ok := got.Value()
		require.True(t, ok)
		assert.Equal(t, int64(0), n, "roll %v", roll)
		assert.Equal(t, ConditionBroken, got.Condition)
		assert.Equal(t, 0, calls, "base count evaluated on a broken day")
	}
}

func TestGate_BreakDominance_OverridesClosedDay(t *testing.T) {
	calls := 0
	got := gate(mallConfig, 0.01, countingBase(Closed(), &calls))
	assert.False(t, got.IsClosed())
	assert.Equal(t, int64(0), got.Int())
	assert.Equal(t, ConditionBroken, got.Condition)
}

func TestGate_MalfunctionDeflation(t *testing.T) {
	tests := []struct {
		name string
		base int64
		want int64
	}{
		{"typical", 1653, 330},
		{"exact multiple", 1500, 300},
		{"small", 4, 0},
		{"negative floors down", -7, -2},
	}
	for _, tt := range tests {
		for _, roll := range []float64{0.015, 0.02, 0.0349999} {
			calls := 0
			got := gate(mallConfig, roll, countingBase(Count(tt.base), &calls))
			assert.Equal(t, tt.want, got.Int(), "%s roll=%v", tt.name, roll)
			assert.Equal(t, ConditionMalfunction, got.Condition)
			assert.Equal(t, 1, calls)
		}
	}
}

func TestGate_MalfunctionOnClosedDay_StaysClosed(t *testing.T) {
	calls := 0
	got := gate(mallConfig, 0.02, countingBase(Closed(), &calls))
	assert.True(t, got.IsClosed())
	assert.Equal(t, ConditionMalfunction, got.Condition)
}

func TestGate_CleanReading(t *testing.T) {
	for _, roll := range []float64{0.035, 0.5, 0.9999} {
		calls := 0
		got := gate(mallConfig, roll, countingBase(Count(1653), &calls))
		assert.Equal(t, int64(1653), got.Int())
		assert.Equal(t, ConditionNominal, got.Condition)
		assert.Equal(t, 1, calls)
	}
}

func TestApplyReliability_PassesDateToBase(t *testing.T) {
	cfg := SensorConfig{MeanVisits: 1, StdVisits: 0}
	d := MustBusinessDate(2023, time.October, 25)
	var seen BusinessDate
	ApplyReliability(cfg, d, func(got BusinessDate) Reading {
		seen = got
		return Count(7)
	})
	assert.Equal(t, d, seen)
}

// === Public entry point ===

func TestGetVisitCount_Deterministic(t *testing.T) {
	for _, d := range decade(t) {
		a := GetVisitCount(mallConfig, d)
		b := GetVisitCount(mallConfig, d)
		require.Equal(t, a, b, "date %s", d)
	}
}

func TestGetVisitCount_ConsistentWithRoll(t *testing.T) {
	// BDD: for every date the reported reading is the base count routed
	// through the date's own reliability roll
	broken, malfunction := 0, 0
	for _, d := range decade(t) {
		roll := reliabilityDraw(SeedKeyFor(d))
		base := ComputeBaseCount(mallConfig, d)
		got := GetVisitCount(mallConfig, d)

		switch {
		case roll < mallConfig.BreakProbability:
			broken++
			require.Equal(t, ConditionBroken, got.Condition, "date %s", d)
			require.Equal(t, int64(0), got.Int())
		case roll < mallConfig.MalfunctionProbability:
			malfunction++
			require.Equal(t, ConditionMalfunction, got.Condition, "date %s", d)
			require.Equal(t, deflate(base).Int(), got.Int())
		default:
			require.Equal(t, ConditionNominal, got.Condition, "date %s", d)
			require.Equal(t, base.Int(), got.Int())
			require.Equal(t, base.IsClosed(), got.IsClosed())
		}
	}

	// AND both failure modes occur at roughly their configured rates
	days := float64(len(decade(t)))
	assert.InDelta(t, 0.015, float64(broken)/days, 0.01, "break rate")
	assert.InDelta(t, 0.020, float64(malfunction)/days, 0.012, "malfunction rate")
}

func TestGetVisitCount_SundayAboveMalfunctionThreshold_Closed(t *testing.T) {
	checked := 0
	for _, d := range decade(t) {
		if d.Weekday() != Sunday || reliabilityDraw(SeedKeyFor(d)) < mallConfig.MalfunctionProbability {
			continue
		}
		got := GetVisitCount(mallConfig, d)
		require.True(t, got.IsClosed(), "date %s", d)
		require.Equal(t, ConditionNominal, got.Condition)
		checked++
	}
	assert.Greater(t, checked, 400)
}

func TestGetVisitCount_ReferenceWednesday(t *testing.T) {
	// GIVEN the reference device and a Wednesday
	d := MustBusinessDate(2023, time.October, 25)
	require.Equal(t, Wednesday, d.Weekday())

	// WHEN simulated repeatedly
	first := GetVisitCount(mallConfig, d)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, GetVisitCount(mallConfig, d))
	}

	// THEN the base count sits within six spreads of 1500 * 1.10
	base, ok := ComputeBaseCount(mallConfig, d).Value()
	require.True(t, ok)
	assert.InDelta(t, 1650, float64(base), 6*150*1.10)

	// AND the reported value is the base count, its deflation, or a break
	switch first.Condition {
	case ConditionNominal:
		assert.Equal(t, base, first.Int())
	case ConditionMalfunction:
		assert.Equal(t, int64(math.Floor(float64(base)*0.2)), first.Int())
	case ConditionBroken:
		assert.Equal(t, int64(0), first.Int())
	}
}

func TestGetVisitCount_ExtremeProbabilities(t *testing.T) {
	days := decade(t)[:60]

	never := SensorConfig{MeanVisits: 1500, StdVisits: 150}
	for _, d := range days {
		assert.Equal(t, ConditionNominal, GetVisitCount(never, d).Condition)
	}

	always := SensorConfig{MeanVisits: 1500, StdVisits: 150, BreakProbability: 1, MalfunctionProbability: 1}
	for _, d := range days {
		assert.Equal(t, ConditionBroken, GetVisitCount(always, d).Condition)
	}

	degraded := SensorConfig{MeanVisits: 1500, StdVisits: 150, BreakProbability: 0, MalfunctionProbability: 1}
	for _, d := range days {
		got := GetVisitCount(degraded, d)
		assert.Equal(t, ConditionMalfunction, got.Condition)
		assert.Equal(t, deflate(ComputeBaseCount(degraded, d)).Int(), got.Int())
	}
}

// === VisitSensor ===

func TestNewVisitSensor_ValidatesConfig(t *testing.T) {
	_, err := NewVisitSensor("bad", SensorConfig{MeanVisits: 1, StdVisits: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewVisitSensor("inverted", SensorConfig{MeanVisits: 1, BreakProbability: 0.5, MalfunctionProbability: 0.1})
	assert.ErrorIs(t, err, ErrProbabilityOrder)
}

func TestNewVisitSensor_DefaultName(t *testing.T) {
	s, err := NewVisitSensor("", mallConfig)
	require.NoError(t, err)
	assert.Equal(t, DefaultSensorName, s.Name())
	assert.Equal(t, SensorID(DefaultSensorName), s.ID())
	assert.Equal(t, mallConfig, s.Config())
}

func TestSensorID_StablePerName(t *testing.T) {
	a := SensorID("mall-east")
	assert.Equal(t, a, SensorID("mall-east"))
	assert.NotEqual(t, a, SensorID("mall-west"))
	assert.EqualValues(t, 5, a.Version())
}

func TestVisitSensor_DelegatesToPackageFunctions(t *testing.T) {
	s, err := NewVisitSensor("mall-east", mallConfig)
	require.NoError(t, err)
	for _, d := range decade(t)[:30] {
		assert.Equal(t, ComputeBaseCount(mallConfig, d), s.BaseCount(d))
		assert.Equal(t, GetVisitCount(mallConfig, d), s.VisitCount(d))
	}
}
