package sim

import (
	"fmt"
	"time"
)

// DateLayout is the textual form of a BusinessDate (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01,
// counting 0001-01-01 as day 1.
const unixEpochOrdinal = 719163

const secondsPerDay = 24 * 60 * 60

// BusinessDate is a calendar day with no time component.
// It is the only input of the simulator and the only source of its seed.
type BusinessDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewBusinessDate returns the date for year/month/day.
// Out-of-range components are rejected rather than normalized.
func NewBusinessDate(year int, month time.Month, day int) (BusinessDate, error) {
	if year < 1 || year > 9999 {
		return BusinessDate{}, fmt.Errorf("year %d out of range [1, 9999]", year)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return BusinessDate{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, int(month), day)
	}
	return BusinessDate{Year: year, Month: month, Day: day}, nil
}

// MustBusinessDate is NewBusinessDate for literals known to be valid.
func MustBusinessDate(year int, month time.Month, day int) BusinessDate {
	d, err := NewBusinessDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseBusinessDate parses a YYYY-MM-DD string.
func ParseBusinessDate(s string) (BusinessDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return BusinessDate{}, fmt.Errorf("invalid business date %q: want YYYY-MM-DD", s)
	}
	d, err := NewBusinessDate(t.Year(), t.Month(), t.Day())
	if err != nil {
		return BusinessDate{}, fmt.Errorf("invalid business date %q: %w", s, err)
	}
	return d, nil
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) BusinessDate {
	return BusinessDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d BusinessDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Ordinal returns the proleptic Gregorian day number, 0001-01-01 being 1.
func (d BusinessDate) Ordinal() int64 {
	return d.midnight().Unix()/secondsPerDay + unixEpochOrdinal
}

// Weekday returns the day of week, Monday first.
func (d BusinessDate) Weekday() Weekday {
	return Weekday((int(d.midnight().Weekday()) + 6) % 7)
}

// AddDays returns the date n days later (earlier when n is negative).
func (d BusinessDate) AddDays(n int) BusinessDate {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d BusinessDate) Before(other BusinessDate) bool {
	return d.Ordinal() < other.Ordinal()
}

// DaysUntil returns the number of days from d to other (negative if other is earlier).
func (d BusinessDate) DaysUntil(other BusinessDate) int64 {
	return other.Ordinal() - d.Ordinal()
}

// IsZero reports whether d is the zero value.
func (d BusinessDate) IsZero() bool {
	return d == BusinessDate{}
}

func (d BusinessDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d BusinessDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *BusinessDate) UnmarshalText(text []byte) error {
	parsed, err := ParseBusinessDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
