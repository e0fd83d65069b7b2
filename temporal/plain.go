package temporal

import (
	"fmt"
	"math/big"

	"github.com/ngrash/go-temporal/internal/isodate"
)

// PlainDate is a calendar date without a time or time zone. Fields are ISO 8601 fields; the calendar decides how
// durations are added to it.
type PlainDate struct {
	iso      isodate.Date
	calendar Calendar
}

// NewPlainDate returns the ISO date year-month-day in calendar. A nil calendar means ISO8601Calendar.
func NewPlainDate(year, month, day int, calendar Calendar) (PlainDate, error) {
	if !isodate.IsValid(year, month, day) {
		return PlainDate{}, fmt.Errorf("%04d-%02d-%02d is not a date: %w", year, month, day, ErrConstruction)
	}
	d := isodate.Date{Year: year, Month: month, Day: day}
	if !isoDateTimeWithinLimits(d, PlainTime{Hour: 12}) {
		return PlainDate{}, fmt.Errorf("%v outside of supported range: %w", d, ErrConstruction)
	}
	return PlainDate{iso: d, calendar: calendarOrISO(calendar)}, nil
}

func (d PlainDate) Year() int  { return d.iso.Year }
func (d PlainDate) Month() int { return d.iso.Month }
func (d PlainDate) Day() int   { return d.iso.Day }

// Calendar returns the calendar of d.
func (d PlainDate) Calendar() Calendar {
	return calendarOrISO(d.calendar)
}

// Compare orders dates by their ISO fields, ignoring the calendar.
func (d PlainDate) Compare(o PlainDate) int {
	return d.iso.Compare(o.iso)
}

// Equal reports whether d and o are the same date in calendars with the same ID.
func (d PlainDate) Equal(o PlainDate) bool {
	return d.iso == o.iso && d.Calendar().ID() == o.Calendar().ID()
}

// Add adds duration to d using its calendar.
func (d PlainDate) Add(duration Duration, options AddOptions) (PlainDate, error) {
	return d.Calendar().DateAdd(d, duration, options)
}

// Until returns the duration from d to o using the calendar of d.
func (d PlainDate) Until(o PlainDate, largestUnit Unit) (Duration, error) {
	if d.Calendar().ID() != o.Calendar().ID() {
		return Duration{}, fmt.Errorf("calendars %q and %q differ: %w", d.Calendar().ID(), o.Calendar().ID(), ErrRange)
	}
	return d.Calendar().DateUntil(d, o, largestUnit)
}

func (d PlainDate) String() string {
	return d.iso.String()
}

// PlainTime is a wall-clock time of day.
type PlainTime struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Microsecond int
	Nanosecond  int
}

func (t PlainTime) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59 &&
		t.Millisecond >= 0 && t.Millisecond <= 999 &&
		t.Microsecond >= 0 && t.Microsecond <= 999 &&
		t.Nanosecond >= 0 && t.Nanosecond <= 999
}

// nanosecondOfDay returns the nanoseconds since midnight.
func (t PlainTime) nanosecondOfDay() int64 {
	return int64(t.Hour)*UnitHour.nanoseconds() +
		int64(t.Minute)*UnitMinute.nanoseconds() +
		int64(t.Second)*UnitSecond.nanoseconds() +
		int64(t.Millisecond)*UnitMillisecond.nanoseconds() +
		int64(t.Microsecond)*UnitMicrosecond.nanoseconds() +
		int64(t.Nanosecond)
}

// Compare orders times of day.
func (t PlainTime) Compare(o PlainTime) int {
	a, b := t.nanosecondOfDay(), o.nanosecondOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t PlainTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d%03d%03d", t.Hour, t.Minute, t.Second, t.Millisecond, t.Microsecond, t.Nanosecond)
}

func plainTimeFromNanosecondOfDay(ns int64) PlainTime {
	var t PlainTime
	t.Nanosecond = int(ns % 1000)
	ns /= 1000
	t.Microsecond = int(ns % 1000)
	ns /= 1000
	t.Millisecond = int(ns % 1000)
	ns /= 1000
	t.Second = int(ns % 60)
	ns /= 60
	t.Minute = int(ns % 60)
	t.Hour = int(ns / 60)
	return t
}

// PlainDateTime is a calendar date and wall-clock time without a time zone.
type PlainDateTime struct {
	date PlainDate
	time PlainTime
}

// NewPlainDateTime combines date fields and a time of day. A nil calendar means ISO8601Calendar.
func NewPlainDateTime(year, month, day int, t PlainTime, calendar Calendar) (PlainDateTime, error) {
	if !isodate.IsValid(year, month, day) {
		return PlainDateTime{}, fmt.Errorf("%04d-%02d-%02d is not a date: %w", year, month, day, ErrConstruction)
	}
	if !t.valid() {
		return PlainDateTime{}, fmt.Errorf("%+v is not a time of day: %w", t, ErrConstruction)
	}
	d := isodate.Date{Year: year, Month: month, Day: day}
	if !isoDateTimeWithinLimits(d, t) {
		return PlainDateTime{}, fmt.Errorf("%vT%v outside of supported range: %w", d, t, ErrConstruction)
	}
	return PlainDateTime{date: PlainDate{iso: d, calendar: calendarOrISO(calendar)}, time: t}, nil
}

// combineDateAndTime joins a date with a time of day.
func combineDateAndTime(date PlainDate, t PlainTime) (PlainDateTime, error) {
	if !isoDateTimeWithinLimits(date.iso, t) {
		return PlainDateTime{}, fmt.Errorf("%vT%v outside of supported range: %w", date, t, ErrRange)
	}
	return PlainDateTime{date: date, time: t}, nil
}

func (dt PlainDateTime) Date() PlainDate { return dt.date }
func (dt PlainDateTime) Time() PlainTime { return dt.time }
func (dt PlainDateTime) Year() int       { return dt.date.iso.Year }
func (dt PlainDateTime) Month() int      { return dt.date.iso.Month }
func (dt PlainDateTime) Day() int        { return dt.date.iso.Day }

// Calendar returns the calendar of dt.
func (dt PlainDateTime) Calendar() Calendar { return dt.date.Calendar() }

// Compare orders date-times by their ISO fields, ignoring the calendar.
func (dt PlainDateTime) Compare(o PlainDateTime) int {
	if c := dt.date.Compare(o.date); c != 0 {
		return c
	}
	return dt.time.Compare(o.time)
}

// Equal reports whether dt and o have the same fields and calendar ID.
func (dt PlainDateTime) Equal(o PlainDateTime) bool {
	return dt.date.Equal(o.date) && dt.time == o.time
}

func (dt PlainDateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}

// UTCEpochNanoseconds returns the instant dt would denote if it were a UTC wall-clock time. TimeZone
// implementations subtract their offset from it to find candidate instants.
func (dt PlainDateTime) UTCEpochNanoseconds() *big.Int {
	return utcEpochNanoseconds(dt.date.iso, dt.time)
}

// addNanoseconds shifts dt by ns nanoseconds of wall-clock time.
func (dt PlainDateTime) addNanoseconds(ns int64) (PlainDateTime, error) {
	utc := dt.UTCEpochNanoseconds()
	utc.Add(utc, big.NewInt(ns))
	return plainDateTimeFromUTCEpochNanoseconds(utc, dt.Calendar())
}

func utcEpochNanoseconds(d isodate.Date, t PlainTime) *big.Int {
	ns := big.NewInt(d.EpochDays())
	ns.Mul(ns, bigNsPerDay)
	return ns.Add(ns, big.NewInt(t.nanosecondOfDay()))
}

// plainDateTimeFromUTCEpochNanoseconds reads ns as a UTC wall-clock time.
func plainDateTimeFromUTCEpochNanoseconds(ns *big.Int, calendar Calendar) (PlainDateTime, error) {
	days, rem := new(big.Int).DivMod(ns, bigNsPerDay, new(big.Int))
	if !days.IsInt64() {
		return PlainDateTime{}, fmt.Errorf("%v ns outside of supported range: %w", ns, ErrRange)
	}
	d := isodate.FromEpochDays(days.Int64())
	t := plainTimeFromNanosecondOfDay(rem.Int64())
	if !isoDateTimeWithinLimits(d, t) {
		return PlainDateTime{}, fmt.Errorf("%vT%v outside of supported range: %w", d, t, ErrRange)
	}
	return PlainDateTime{date: PlainDate{iso: d, calendar: calendar}, time: t}, nil
}

var (
	// Date-times may be up to one day beyond the instant range so that every instant has a wall-clock time in
	// every time zone.
	minDateTime = new(big.Int).Sub(minInstant, bigNsPerDay)
	maxDateTime = new(big.Int).Add(maxInstant, bigNsPerDay)
)

// isoDateTimeWithinLimits reports whether a date-time is representable.
func isoDateTimeWithinLimits(d isodate.Date, t PlainTime) bool {
	// Quick reject before the cycle arithmetic.
	if d.Year < -300_000 || d.Year > 300_000 {
		return false
	}
	ns := utcEpochNanoseconds(d, t)
	return ns.Cmp(minDateTime) > 0 && ns.Cmp(maxDateTime) < 0
}
