// Package testutil provides shared test infrastructure for the visit simulator.
// It consolidates date-range helpers and assertion helpers used across
// the sim/ test packages.
package testutil

import (
	"math"
	"testing"
	"time"
)

// DateRange returns every calendar day in [from, to] as UTC midnights.
func DateRange(t *testing.T, from, to time.Time) []time.Time {
	t.Helper()
	if to.Before(from) {
		t.Fatalf("DateRange: end %s before start %s", to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Day builds a UTC midnight for year/month/day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AssertMeanNear fails the test when an observed mean of simulated counts
// strays from the expected mean by more than relTol of the expectation.
// A zero expectation is compared absolutely.
func AssertMeanNear(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	scale := math.Abs(want)
	if scale == 0 {
		scale = 1
	}
	if rel := math.Abs(got-want) / scale; rel > relTol {
		t.Errorf("%s: mean %.2f, want %.2f within %.1f%% (off by %.2f%%)", name, got, want, relTol*100, rel*100)
	}
}
