package sim

import "strconv"

// Weekday is a day of the week numbered from Monday (0) to Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// trafficMultipliers scales the sampled visit count on busier days.
// Days not listed use 1.0.
var trafficMultipliers = map[Weekday]float64{
	Wednesday: 1.10,
	Friday:    1.25,
	Saturday:  1.35,
}

// TrafficMultiplier returns the visit multiplier applied on w.
func (w Weekday) TrafficMultiplier() float64 {
	if m, ok := trafficMultipliers[w]; ok {
		return m
	}
	return 1.0
}

// IsClosed reports whether the store has no opening hours on w.
func (w Weekday) IsClosed() bool {
	return w == Sunday
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return weekdayNames[w]
}

