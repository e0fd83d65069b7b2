package temporal

import (
	"errors"
	"fmt"

	"github.com/ngrash/go-temporal/internal/isodate"
)

// Calendar adds durations to dates and measures the distance between dates. Implementations must be safe for
// concurrent use.
type Calendar interface {
	// ID identifies the calendar. Values with equal IDs are interchangeable.
	ID() string

	// DateAdd adds the years, months, weeks and days of duration to date. Clock fields add whole 24-hour days.
	// A zero AddOptions means the caller expressed no preference.
	DateAdd(date PlainDate, duration Duration, options AddOptions) (PlainDate, error)

	// DateUntil returns the duration from one to two with no unit larger than largestUnit, which is one of
	// UnitYear, UnitMonth, UnitWeek, UnitDay or UnitAuto (days).
	DateUntil(one, two PlainDate, largestUnit Unit) (Duration, error)
}

// ISO8601Calendar is the proleptic Gregorian calendar.
var ISO8601Calendar Calendar = isoCalendar{}

func calendarOrISO(c Calendar) Calendar {
	if c == nil {
		return ISO8601Calendar
	}
	return c
}

type isoCalendar struct{}

func (isoCalendar) ID() string { return "iso8601" }

func (isoCalendar) DateAdd(date PlainDate, duration Duration, options AddOptions) (PlainDate, error) {
	balanced, err := BalanceTimeDuration(duration.timeDuration(), UnitDay)
	if err != nil {
		return PlainDate{}, err
	}
	f := duration.Fields()
	d, err := isodate.Add(date.iso, f.Years, f.Months, f.Weeks, f.Days+balanced.Days, options.constrain())
	if errors.Is(err, isodate.ErrDayOutOfRange) {
		return PlainDate{}, fmt.Errorf("%v + %v: %w: %w", date, duration, err, ErrRange)
	}
	if err != nil {
		return PlainDate{}, fmt.Errorf("%v + %v: %v: %w", date, duration, err, ErrRange)
	}
	result, err := NewPlainDate(d.Year, d.Month, d.Day, date.Calendar())
	if err != nil {
		return PlainDate{}, fmt.Errorf("%v + %v: %w", date, duration, ErrRange)
	}
	return result, nil
}

func (isoCalendar) DateUntil(one, two PlainDate, largestUnit Unit) (Duration, error) {
	var unit isodate.Unit
	switch largestUnit {
	case UnitYear:
		unit = isodate.Year
	case UnitMonth:
		unit = isodate.Month
	case UnitWeek:
		unit = isodate.Week
	case UnitDay, UnitAuto:
		unit = isodate.Day
	default:
		return Duration{}, fmt.Errorf("largest unit %v not allowed for dates: %w", largestUnit, ErrRange)
	}
	years, months, weeks, days := isodate.Until(one.iso, two.iso, unit)
	return NewDuration(DurationFields{Years: years, Months: months, Weeks: weeks, Days: days})
}
