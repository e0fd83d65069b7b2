package temporal

import "fmt"

// TimeDurationDays is the result of NormalizedTimeDurationToDays.
type TimeDurationDays struct {
	// Days is the number of whole civil days, with the sign of the duration or zero.
	Days int64
	// Remainder is the time left over after the whole days, with the sign of the duration or zero.
	Remainder NormalizedTimeDuration
	// DayLength is the length of the day following the last whole day. It is always positive.
	DayLength NormalizedTimeDuration
}

// NormalizedTimeDurationToDays splits norm, measured from relativeTo, into whole civil days of relativeTo's time
// zone and a remainder. Days that are longer or shorter than 24 hours because of offset transitions count as one
// day each.
//
// precalculated, if not nil, must be the wall-clock time of relativeTo. A zero norm yields zero days and the
// length of relativeTo's current day.
//
// A time zone whose answers contradict each other can make the day count or remainder disagree in sign with
// norm, which is ErrSignInconsistency, or produce a day of 2^53 nanoseconds or more, which is
// ErrUnsafeDayLength.
func NormalizedTimeDurationToDays(norm NormalizedTimeDuration, relativeTo ZonedDateTime, precalculated *PlainDateTime) (TimeDurationDays, error) {
	sign := norm.Sign()
	if sign == 0 {
		length, err := relativeTo.DayLength()
		if err != nil {
			return TimeDurationDays{}, err
		}
		return TimeDurationDays{DayLength: length}, nil
	}

	timeZone := relativeTo.timeZone
	calendar := relativeTo.Calendar()
	start := relativeTo.instant
	end, err := start.Add(norm)
	if err != nil {
		return TimeDurationDays{}, err
	}

	var startDateTime PlainDateTime
	if precalculated != nil {
		startDateTime = *precalculated
	} else {
		startDateTime, err = GetPlainDateTimeFor(timeZone, start, calendar)
		if err != nil {
			return TimeDurationDays{}, err
		}
	}
	endDateTime, err := GetPlainDateTimeFor(timeZone, end, calendar)
	if err != nil {
		return TimeDurationDays{}, err
	}

	// Estimate the day count from the wall-clock dates. The last day is incomplete if its time of day has not
	// been reached yet.
	days := endDateTime.date.iso.EpochDays() - startDateTime.date.iso.EpochDays()
	timeSign := startDateTime.time.Compare(endDateTime.time)
	switch {
	case days > 0 && timeSign > 0:
		days--
	case days < 0 && timeSign < 0:
		days++
	}

	relative, err := addDaysToZonedDateTime(start, startDateTime, timeZone, calendar, days)
	if err != nil {
		return TimeDurationDays{}, err
	}

	// A repeated wall-clock time can put the estimate past the end.
	if sign > 0 {
		for days > 0 && relative.instant.Compare(end) > 0 {
			days--
			relative, err = addDaysToZonedDateTime(start, startDateTime, timeZone, calendar, days)
			if err != nil {
				return TimeDurationDays{}, err
			}
		}
	}

	norm = relative.instant.until(end)

	var dayLength NormalizedTimeDuration
	for {
		farther, err := addDaysToZonedDateTime(relative.instant, relative.dateTime, timeZone, calendar, int64(sign))
		if err != nil {
			return TimeDurationDays{}, err
		}
		dayLength = relative.instant.until(farther.instant)
		if dayLength.Abs().nanoseconds().Cmp(maxSafeInteger) >= 0 {
			return TimeDurationDays{}, fmt.Errorf("day after %v in %s lasts %v: %w",
				relative.dateTime, timeZone.ID(), dayLength, ErrUnsafeDayLength)
		}
		if dayLength.Sign() != sign {
			return TimeDurationDays{}, fmt.Errorf("day after %v in %s lasts %v: %w",
				relative.dateTime, timeZone.ID(), dayLength, ErrSignInconsistency)
		}
		less, err := norm.Sub(dayLength)
		if err != nil {
			return TimeDurationDays{}, err
		}
		if less.Sign()*sign < 0 {
			break
		}
		norm = less
		relative = farther
		days += int64(sign)
	}

	if (days < 0 && sign > 0) || (days > 0 && sign < 0) {
		return TimeDurationDays{}, fmt.Errorf("%d days for a duration of sign %d: %w", days, sign, ErrSignInconsistency)
	}
	if norm.Sign() != 0 && norm.Sign() != sign {
		return TimeDurationDays{}, fmt.Errorf("remainder %v for a duration of sign %d: %w", norm, sign, ErrSignInconsistency)
	}
	return TimeDurationDays{Days: days, Remainder: norm, DayLength: dayLength.Abs()}, nil
}
