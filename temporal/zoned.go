package temporal

import (
	"fmt"
	"math/big"

	"github.com/ngrash/go-temporal/internal/isodate"
)

// ZonedDateTime is an instant seen through a time zone and a calendar.
type ZonedDateTime struct {
	instant  Instant
	timeZone TimeZone
	calendar Calendar
}

// NewZonedDateTime returns the zoned date-time epochNanoseconds after the epoch. A nil calendar means
// ISO8601Calendar; the time zone is required.
func NewZonedDateTime(epochNanoseconds *big.Int, timeZone TimeZone, calendar Calendar) (ZonedDateTime, error) {
	instant, err := NewInstant(epochNanoseconds)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTimeOf(instant, timeZone, calendar)
}

// ZonedDateTimeOf returns instant seen through timeZone and calendar.
func ZonedDateTimeOf(instant Instant, timeZone TimeZone, calendar Calendar) (ZonedDateTime, error) {
	if timeZone == nil {
		return ZonedDateTime{}, fmt.Errorf("nil time zone: %w", ErrConstruction)
	}
	return ZonedDateTime{instant: instant, timeZone: timeZone, calendar: calendarOrISO(calendar)}, nil
}

// Instant returns the exact time of z.
func (z ZonedDateTime) Instant() Instant { return z.instant }

// TimeZone returns the time zone z is seen through.
func (z ZonedDateTime) TimeZone() TimeZone { return z.timeZone }

// Calendar returns the calendar of z. The zero value reports ISO8601Calendar.
func (z ZonedDateTime) Calendar() Calendar { return calendarOrISO(z.calendar) }

// EpochNanoseconds returns the nanoseconds since the Unix epoch.
func (z ZonedDateTime) EpochNanoseconds() *big.Int { return z.instant.EpochNanoseconds() }

// Equal reports whether z and o denote the same instant in time zones and calendars with the same IDs.
func (z ZonedDateTime) Equal(o ZonedDateTime) bool {
	return z.instant.Equal(o.instant) &&
		z.timeZone.ID() == o.timeZone.ID() &&
		z.Calendar().ID() == o.Calendar().ID()
}

// String formats z as epoch nanoseconds followed by the time zone and calendar IDs.
func (z ZonedDateTime) String() string {
	return fmt.Sprintf("%v[%s][%s]", z.instant, z.timeZone.ID(), z.Calendar().ID())
}

// WithTimeZone returns the same instant in another time zone.
func (z ZonedDateTime) WithTimeZone(timeZone TimeZone) (ZonedDateTime, error) {
	return ZonedDateTimeOf(z.instant, timeZone, z.calendar)
}

// WithCalendar returns the same instant in another calendar.
func (z ZonedDateTime) WithCalendar(calendar Calendar) ZonedDateTime {
	z.calendar = calendarOrISO(calendar)
	return z
}

// PlainDateTime returns the wall-clock time of z.
func (z ZonedDateTime) PlainDateTime() (PlainDateTime, error) {
	return GetPlainDateTimeFor(z.timeZone, z.instant, z.Calendar())
}

// OffsetNanoseconds returns the UTC offset in effect at z.
func (z ZonedDateTime) OffsetNanoseconds() (int64, error) {
	return offsetNanosecondsFor(z.timeZone, z.instant)
}

// Add adds duration to z. Years, months, weeks and days follow the wall clock through the calendar; clock
// fields are exact time. options are passed to the calendar.
func (z ZonedDateTime) Add(duration Duration, options AddOptions) (ZonedDateTime, error) {
	instant, err := AddZonedDateTime(z.instant, z.timeZone, z.Calendar(), duration.dateDuration(), duration.timeDuration(), options, nil)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: instant, timeZone: z.timeZone, calendar: z.calendar}, nil
}

// Subtract adds the negation of duration to z.
func (z ZonedDateTime) Subtract(duration Duration, options AddOptions) (ZonedDateTime, error) {
	return z.Add(duration.Negated(), options)
}

// Until returns the duration from z to o. Both must have the same time zone and calendar IDs.
func (z ZonedDateTime) Until(o ZonedDateTime, options DifferenceOptions) (Duration, error) {
	return z.difference(o, options)
}

// Since returns the duration from o to z, computed from z's point of view and negated.
func (z ZonedDateTime) Since(o ZonedDateTime, options DifferenceOptions) (Duration, error) {
	d, err := z.difference(o, options)
	if err != nil {
		return Duration{}, err
	}
	return d.Negated(), nil
}

func (z ZonedDateTime) difference(o ZonedDateTime, options DifferenceOptions) (Duration, error) {
	largestUnit := options.LargestUnit
	if largestUnit == UnitAuto {
		largestUnit = UnitHour
	}
	if !largestUnit.isDateUnit() {
		return differenceInstant(z.instant, o.instant, largestUnit)
	}
	if z.timeZone.ID() != o.timeZone.ID() {
		return Duration{}, fmt.Errorf("time zones %s and %s differ: %w", z.timeZone.ID(), o.timeZone.ID(), ErrRange)
	}
	if z.Calendar().ID() != o.Calendar().ID() {
		return Duration{}, fmt.Errorf("calendars %s and %s differ: %w", z.Calendar().ID(), o.Calendar().ID(), ErrRange)
	}
	return DifferenceZonedDateTime(z.instant, o.instant, z.timeZone, z.Calendar(), largestUnit, nil)
}

// StartOfDay returns the first instant of z's calendar day.
func (z ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	dt, err := z.PlainDateTime()
	if err != nil {
		return ZonedDateTime{}, err
	}
	start, err := startOfDay(z.timeZone, dt.date.iso, z.Calendar())
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: start, timeZone: z.timeZone, calendar: z.calendar}, nil
}

// DayLength returns the exact length of z's calendar day, from its start to the start of the next day.
func (z ZonedDateTime) DayLength() (NormalizedTimeDuration, error) {
	dt, err := z.PlainDateTime()
	if err != nil {
		return NormalizedTimeDuration{}, err
	}
	today, err := startOfDay(z.timeZone, dt.date.iso, z.Calendar())
	if err != nil {
		return NormalizedTimeDuration{}, err
	}
	next, err := isodate.Add(dt.date.iso, 0, 0, 0, 1, true)
	if err != nil {
		return NormalizedTimeDuration{}, fmt.Errorf("day after %v: %v: %w", dt.date, err, ErrRange)
	}
	tomorrow, err := startOfDay(z.timeZone, next, z.Calendar())
	if err != nil {
		return NormalizedTimeDuration{}, err
	}
	length := today.until(tomorrow)
	if length.Abs().nanoseconds().Cmp(maxSafeInteger) >= 0 {
		return NormalizedTimeDuration{}, fmt.Errorf("day %v in %s lasts %v: %w", dt.date, z.timeZone.ID(), length, ErrUnsafeDayLength)
	}
	return length, nil
}

// HoursInDay returns DayLength in hours.
func (z ZonedDateTime) HoursInDay() (float64, error) {
	length, err := z.DayLength()
	if err != nil {
		return 0, err
	}
	hours, _ := new(big.Rat).SetFrac(length.nanoseconds(), big.NewInt(UnitHour.nanoseconds())).Float64()
	return hours, nil
}

// startOfDay returns the first instant of date in timeZone. If midnight falls into a gap, the day starts when
// the gap ends.
func startOfDay(timeZone TimeZone, date isodate.Date, calendar Calendar) (Instant, error) {
	midnight, err := combineDateAndTime(PlainDate{iso: date, calendar: calendar}, PlainTime{})
	if err != nil {
		return Instant{}, err
	}
	return GetInstantFor(timeZone, midnight, DisambiguationCompatible)
}
