package temporal

import (
	"fmt"

	"github.com/ngrash/go-temporal/internal/isodate"
)

// AddZonedDateTime adds a duration to instant as seen in timeZone and calendar. The years, months, weeks and days
// of dateDuration are added to the wall-clock date through the calendar, the result is resolved with
// DisambiguationCompatible, and norm is then added as exact time.
//
// precalculated, if not nil, must be the wall-clock time of instant; it saves one time zone query.
func AddZonedDateTime(instant Instant, timeZone TimeZone, calendar Calendar, dateDuration Duration, norm NormalizedTimeDuration, options AddOptions, precalculated *PlainDateTime) (Instant, error) {
	calendar = calendarOrISO(calendar)
	if dateDuration.dateDuration().IsZero() {
		return instant.Add(norm)
	}

	var start PlainDateTime
	if precalculated != nil {
		start = *precalculated
	} else {
		var err error
		start, err = GetPlainDateTimeFor(timeZone, instant, calendar)
		if err != nil {
			return Instant{}, err
		}
	}

	if dateDuration.calendarDuration().IsZero() {
		intermediate, err := addDaysToZonedDateTime(instant, start, timeZone, calendar, dateDuration.Days())
		if err != nil {
			return Instant{}, err
		}
		return intermediate.instant.Add(norm)
	}

	added, err := calendar.DateAdd(start.date, dateDuration.dateDuration(), options)
	if err != nil {
		return Instant{}, fmt.Errorf("calendar %s: %w", calendar.ID(), err)
	}
	intermediate, err := combineDateAndTime(added, start.time)
	if err != nil {
		return Instant{}, err
	}
	intermediateInstant, err := GetInstantFor(timeZone, intermediate, DisambiguationCompatible)
	if err != nil {
		return Instant{}, err
	}
	return intermediateInstant.Add(norm)
}

// zonedResult is an instant together with its wall-clock time.
type zonedResult struct {
	instant  Instant
	dateTime PlainDateTime
}

// addDaysToZonedDateTime moves the wall-clock date of instant by days ISO days, keeping the time of day, and
// resolves the result with DisambiguationCompatible. Adding zero days queries nothing.
func addDaysToZonedDateTime(instant Instant, dateTime PlainDateTime, timeZone TimeZone, calendar Calendar, days int64) (zonedResult, error) {
	if days == 0 {
		return zonedResult{instant: instant, dateTime: dateTime}, nil
	}
	d, err := isodate.Add(dateTime.date.iso, 0, 0, 0, days, true)
	if err != nil {
		return zonedResult{}, fmt.Errorf("%v + %d days: %v: %w", dateTime.date, days, err, ErrRange)
	}
	moved, err := combineDateAndTime(PlainDate{iso: d, calendar: calendar}, dateTime.time)
	if err != nil {
		return zonedResult{}, err
	}
	result, err := GetInstantFor(timeZone, moved, DisambiguationCompatible)
	if err != nil {
		return zonedResult{}, err
	}
	return zonedResult{instant: result, dateTime: moved}, nil
}

// Add returns d + other. Durations with calendar units need options.RelativeTo; without it, days count as
// 24 hours.
func (d Duration) Add(other Duration, options DurationArithmeticOptions) (Duration, error) {
	return addDurations(d, other, options.RelativeTo)
}

// Subtract returns d − other.
func (d Duration) Subtract(other Duration, options DurationArithmeticOptions) (Duration, error) {
	return addDurations(d, other.Negated(), options.RelativeTo)
}

func addDurations(one, two Duration, relativeTo RelativeTo) (Duration, error) {
	largestUnit := largerUnit(one.defaultLargestUnit(), two.defaultLargestUnit())
	norm1 := one.timeDuration()
	norm2 := two.timeDuration()

	switch {
	case relativeTo.zoned != nil:
		return addDurationsZoned(one, two, norm1, norm2, largestUnit, *relativeTo.zoned)
	case relativeTo.plain != nil:
		return addDurationsPlain(one, two, norm1, norm2, largestUnit, *relativeTo.plain)
	}

	if largestUnit.isCalendarUnit() {
		return Duration{}, fmt.Errorf("adding durations with %v requires a relative anchor: %w", largestUnit, ErrRange)
	}
	norm1, err := norm1.AddDays(one.Days())
	if err != nil {
		return Duration{}, err
	}
	norm2, err = norm2.AddDays(two.Days())
	if err != nil {
		return Duration{}, err
	}
	norm, err := norm1.Add(norm2)
	if err != nil {
		return Duration{}, err
	}
	fields, err := BalanceTimeDuration(norm, largestUnit)
	if err != nil {
		return Duration{}, err
	}
	return NewDuration(fields)
}

func addDurationsPlain(one, two Duration, norm1, norm2 NormalizedTimeDuration, largestUnit Unit, start PlainDate) (Duration, error) {
	calendar := start.Calendar()
	intermediate, err := calendar.DateAdd(start, one.dateDuration(), AddOptions{})
	if err != nil {
		return Duration{}, fmt.Errorf("calendar %s: %w", calendar.ID(), err)
	}
	end, err := calendar.DateAdd(intermediate, two.dateDuration(), AddOptions{})
	if err != nil {
		return Duration{}, fmt.Errorf("calendar %s: %w", calendar.ID(), err)
	}
	dateDifference, err := calendar.DateUntil(start, end, largerUnit(UnitDay, largestUnit))
	if err != nil {
		return Duration{}, fmt.Errorf("calendar %s: %w", calendar.ID(), err)
	}

	norm, err := norm1.Add(norm2)
	if err == nil {
		norm, err = norm.AddDays(dateDifference.Days())
	}
	if err != nil {
		return Duration{}, err
	}
	fields, err := BalanceTimeDuration(norm, largestUnit)
	if err != nil {
		return Duration{}, err
	}
	fields.Years = dateDifference.Years()
	fields.Months = dateDifference.Months()
	fields.Weeks = dateDifference.Weeks()
	return NewDuration(fields)
}

func addDurationsZoned(one, two Duration, norm1, norm2 NormalizedTimeDuration, largestUnit Unit, start ZonedDateTime) (Duration, error) {
	timeZone := start.timeZone
	calendar := start.Calendar()

	var precalculated *PlainDateTime
	if largestUnit.isDateUnit() {
		dt, err := GetPlainDateTimeFor(timeZone, start.instant, calendar)
		if err != nil {
			return Duration{}, err
		}
		precalculated = &dt
	}

	intermediate, err := AddZonedDateTime(start.instant, timeZone, calendar, one.dateDuration(), norm1, AddOptions{}, precalculated)
	if err != nil {
		return Duration{}, err
	}
	end, err := AddZonedDateTime(intermediate, timeZone, calendar, two.dateDuration(), norm2, AddOptions{}, nil)
	if err != nil {
		return Duration{}, err
	}

	if !largestUnit.isDateUnit() {
		return differenceInstant(start.instant, end, largestUnit)
	}
	return DifferenceZonedDateTime(start.instant, end, timeZone, calendar, largestUnit, precalculated)
}
