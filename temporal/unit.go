package temporal

import "fmt"

// Unit is a duration unit. Larger units sort first.
type Unit int

const (
	UnitAuto Unit = iota
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond
)

var unitNames = [...]string{
	UnitAuto:        "auto",
	UnitYear:        "year",
	UnitMonth:       "month",
	UnitWeek:        "week",
	UnitDay:         "day",
	UnitHour:        "hour",
	UnitMinute:      "minute",
	UnitSecond:      "second",
	UnitMillisecond: "millisecond",
	UnitMicrosecond: "microsecond",
	UnitNanosecond:  "nanosecond",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit accepts a unit name in singular or plural form.
func ParseUnit(s string) (Unit, error) {
	for u, name := range unitNames {
		if s == name || (u != int(UnitAuto) && s == name+"s") {
			return Unit(u), nil
		}
	}
	return UnitAuto, fmt.Errorf("unknown unit %q: %w", s, ErrRange)
}

// isCalendarUnit reports whether u is a unit whose length depends on the calendar.
func (u Unit) isCalendarUnit() bool {
	return u == UnitYear || u == UnitMonth || u == UnitWeek
}

// isDateUnit reports whether u is a calendar unit or day.
func (u Unit) isDateUnit() bool {
	return u.isCalendarUnit() || u == UnitDay
}

// nanoseconds returns the fixed length of a time unit.
func (u Unit) nanoseconds() int64 {
	switch u {
	case UnitHour:
		return 3_600_000_000_000
	case UnitMinute:
		return 60_000_000_000
	case UnitSecond:
		return 1_000_000_000
	case UnitMillisecond:
		return 1_000_000
	case UnitMicrosecond:
		return 1_000
	case UnitNanosecond:
		return 1
	}
	panic(fmt.Sprintf("temporal: %v has no fixed length", u))
}

// largerUnit returns the larger of two units.
func largerUnit(a, b Unit) Unit {
	if a == UnitAuto {
		return b
	}
	if b == UnitAuto {
		return a
	}
	return min(a, b)
}
