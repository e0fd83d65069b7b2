package temporal

import (
	"fmt"
	"math/big"

	"github.com/ngrash/go-temporal/internal/isodate"
)

// DifferenceZonedDateTime returns the duration from ns1 to ns2 as seen in timeZone and calendar, with no unit
// larger than largestUnit.
//
// For a time unit the result is exact time. Otherwise years, months and weeks come from calendar.DateUntil on
// the wall-clock dates, are added back with calendar.DateAdd, and the time that is left is split into civil days
// and clock fields by NormalizedTimeDurationToDays. All fields of the result have the same sign.
//
// precalculated, if not nil, must be the wall-clock time of ns1.
func DifferenceZonedDateTime(ns1, ns2 Instant, timeZone TimeZone, calendar Calendar, largestUnit Unit, precalculated *PlainDateTime) (Duration, error) {
	calendar = calendarOrISO(calendar)
	if !largestUnit.isDateUnit() {
		return differenceInstant(ns1, ns2, largestUnit)
	}
	if ns1.Equal(ns2) {
		return Duration{}, nil
	}

	var start PlainDateTime
	if precalculated != nil {
		start = *precalculated
	} else {
		var err error
		start, err = GetPlainDateTimeFor(timeZone, ns1, calendar)
		if err != nil {
			return Duration{}, err
		}
	}
	end, err := GetPlainDateTimeFor(timeZone, ns2, calendar)
	if err != nil {
		return Duration{}, err
	}

	dateDifference, _, err := differenceISODateTime(start, end, calendar, largestUnit)
	if err != nil {
		return Duration{}, err
	}

	intermediate, err := AddZonedDateTime(ns1, timeZone, calendar, dateDifference.calendarDuration(), NormalizedTimeDuration{}, AddOptions{}, &start)
	if err != nil {
		return Duration{}, err
	}
	relativeTo := ZonedDateTime{instant: intermediate, timeZone: timeZone, calendar: calendar}
	result, err := NormalizedTimeDurationToDays(intermediate.until(ns2), relativeTo, nil)
	if err != nil {
		return Duration{}, err
	}

	fields, err := BalanceTimeDuration(result.Remainder, UnitHour)
	if err != nil {
		return Duration{}, err
	}
	fields.Years = dateDifference.Years()
	fields.Months = dateDifference.Months()
	fields.Weeks = dateDifference.Weeks()
	fields.Days = result.Days
	d, err := NewDuration(fields)
	if err != nil {
		return Duration{}, fmt.Errorf("difference of %v and %v in %s: %w", ns1, ns2, timeZone.ID(), err)
	}
	return d, nil
}

// differenceISODateTime returns the date part of the difference between two wall-clock times and the time of day
// that is left over. When the time of day runs against the dates, one day is borrowed from the date part.
func differenceISODateTime(one, two PlainDateTime, calendar Calendar, largestUnit Unit) (Duration, NormalizedTimeDuration, error) {
	timeDuration := NormalizedTimeDuration{ns: big.NewInt(two.time.nanosecondOfDay() - one.time.nanosecondOfDay())}
	timeSign := timeDuration.Sign()
	dateSign := two.date.iso.Compare(one.date.iso)

	adjusted := one.date
	if timeSign == -dateSign && timeSign != 0 {
		adjusted.iso = isodate.Balance(one.date.iso.Year, one.date.iso.Month, int64(one.date.iso.Day-timeSign))
		var err error
		timeDuration, err = timeDuration.AddDays(int64(-timeSign))
		if err != nil {
			return Duration{}, NormalizedTimeDuration{}, err
		}
	}

	dateLargestUnit := largerUnit(UnitDay, largestUnit)
	dateDifference, err := calendar.DateUntil(adjusted, two.date, dateLargestUnit)
	if err != nil {
		return Duration{}, NormalizedTimeDuration{}, fmt.Errorf("calendar %s: %w", calendar.ID(), err)
	}
	return dateDifference, timeDuration, nil
}
