// Package isodate implements civil date math in the proleptic Gregorian calendar.
//
// Dates are counted in days relative to 1970-01-01. The cycle arithmetic follows the Go standard library's time
// package but works on plain integers so that it can be used without a time.Location and far outside the range
// of time.Time.
package isodate

import (
	"errors"
	"fmt"
	"time"
)

// ErrDayOutOfRange is returned when a day does not exist in its month and the caller asked to reject rather than
// constrain it.
var ErrDayOutOfRange = errors.New("day out of range for month")

// Date is a calendar date. Month and Day are 1-based.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// EpochDays returns the number of days from 1970-01-01 to d.
func (d Date) EpochDays() int64 {
	return EpochDays(d.Year, d.Month, d.Day)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return Weekday(d.EpochDays())
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

const (
	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1

	// absoluteZeroYear is a year far enough in the past that every supported date is after it. Counting from
	// there keeps the cycle arithmetic in unsigned integers.
	absoluteZeroYear = -292277022399
)

// unixDays is the number of days from the absolute zero year to 1970-01-01.
var unixDays = daysSinceAbsoluteZero(1970)

// daysBefore[m] counts the days before month m+1 in a non-leap year.
var daysBefore = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// daysSinceAbsoluteZero returns the number of days from the absolute zero year to the start of year.
// This is (year - absoluteZeroYear) * 365 plus the leap days in between.
func daysSinceAbsoluteZero(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Non-leap years.
	d += 365 * y

	return d
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year, month int) int {
	if month == 2 {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// IsValid reports whether year, month and day name an existing date.
func IsValid(year, month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= DaysInMonth(year, month)
}

// EpochDays returns the number of days from 1970-01-01 to the given date, which must be valid.
func EpochDays(year, month, day int) int64 {
	d := daysSinceAbsoluteZero(year) + uint64(daysBefore[month-1]) + uint64(day-1)
	if month > 2 && IsLeapYear(year) {
		d++
	}
	return int64(d - unixDays)
}

// FromEpochDays is the inverse of EpochDays.
func FromEpochDays(days int64) Date {
	d := uint64(days) + unixDays

	// 400-year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles. The last cycle has one extra leap year, so on the last day of that year,
	// day / daysPer100Years will be 4 instead of 3.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// 4-year cycles, same correction as above.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year := int(int64(y) + absoluteZeroYear)
	yday := int(d)

	if IsLeapYear(year) {
		switch {
		case yday > 31+29-1:
			yday--
		case yday == 31+29-1:
			return Date{year, 2, 29}
		}
	}

	month := yday / 31
	end := daysBefore[month+1]
	var begin int
	if yday >= end {
		month++
		begin = end
	} else {
		begin = daysBefore[month]
	}
	return Date{year, month + 1, yday - begin + 1}
}

// Weekday returns the day of the week of the given epoch day. 1970-01-01 was a Thursday.
func Weekday(epochDays int64) time.Weekday {
	return time.Weekday(floorMod(epochDays+int64(time.Thursday), 7))
}

// DayOfYear returns the 1-based ordinal of the date within its year.
func DayOfYear(year, month, day int) int {
	n := daysBefore[month-1] + day
	if month > 2 && IsLeapYear(year) {
		n++
	}
	return n
}

// BalanceYearMonth normalizes a month number outside 1..12 into the year.
func BalanceYearMonth(year, month int64) (int64, int) {
	m := month - 1
	return year + floorDiv(m, 12), int(floorMod(m, 12)) + 1
}

// Balance normalizes a day number outside the month into a valid date.
func Balance(year, month int, day int64) Date {
	return FromEpochDays(EpochDays(year, month, 1) + day - 1)
}

// Constrain clamps month and day into their valid ranges.
func Constrain(year, month, day int) Date {
	month = clamp(month, 1, 12)
	return Date{year, month, clamp(day, 1, DaysInMonth(year, month))}
}

// Add adds years and months to d, regulates the day against the resulting month, then adds weeks and days.
// If constrain is false, a day that does not exist in the resulting month is ErrDayOutOfRange.
func Add(d Date, years, months, weeks, days int64, constrain bool) (Date, error) {
	y, m := BalanceYearMonth(int64(d.Year)+years, int64(d.Month)+months)
	if y < minYear || y > maxYear {
		return Date{}, fmt.Errorf("year %d outside of supported range", y)
	}
	day := d.Day
	if dim := DaysInMonth(int(y), m); day > dim {
		if !constrain {
			return Date{}, fmt.Errorf("%04d-%02d-%02d: %w", y, m, day, ErrDayOutOfRange)
		}
		day = dim
	}
	if abs(weeks) > maxDays/7 || abs(days) > maxDays {
		return Date{}, fmt.Errorf("%d weeks and %d days outside of supported range", weeks, days)
	}
	extra := days + 7*weeks
	if abs(extra) > maxDays {
		return Date{}, fmt.Errorf("%d days outside of supported range", extra)
	}
	return Balance(int(y), m, int64(day)+extra), nil
}

// The supported range is far wider than anything a caller can construct from a valid instant; it only keeps the
// cycle arithmetic away from integer overflow.
const (
	minYear = -1_000_000_000
	maxYear = 1_000_000_000
	maxDays = 365 * 1_000_000_000
)

// Unit is the largest unit a date difference is expressed in.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

// Until returns the difference from one to two in years, months, weeks and days, with no unit larger than
// largest. The parts are all non-negative or all non-positive.
func Until(one, two Date, largest Unit) (years, months, weeks, days int64) {
	if largest == Day || largest == Week {
		days = two.EpochDays() - one.EpochDays()
		if largest == Week {
			weeks = days / 7
			days %= 7
		}
		return 0, 0, weeks, days
	}

	s := int64(-one.Compare(two))
	if s == 0 {
		return 0, 0, 0, 0
	}

	years = int64(two.Year - one.Year)
	mid, _ := Add(one, years, 0, 0, 0, true)
	midSign := int64(-mid.Compare(two))
	if midSign == 0 {
		if largest == Year {
			return years, 0, 0, 0
		}
		return 0, years * 12, 0, 0
	}

	months = int64(two.Month - one.Month)
	if midSign != s {
		years -= s
		months += s * 12
	}
	mid, _ = Add(one, years, months, 0, 0, true)
	midSign = int64(-mid.Compare(two))
	if midSign == 0 {
		if largest == Year {
			return years, months, 0, 0
		}
		return 0, months + years*12, 0, 0
	}
	if midSign != s {
		months -= s
		if months == -s {
			years -= s
			months = 11 * s
		}
		mid, _ = Add(one, years, months, 0, 0, true)
	}

	switch {
	case mid.Month == two.Month:
		days = int64(two.Day - mid.Day)
	case s < 0:
		days = -int64(mid.Day) - int64(DaysInMonth(two.Year, two.Month)-two.Day)
	default:
		days = int64(two.Day) + int64(DaysInMonth(mid.Year, mid.Month)-mid.Day)
	}

	if largest == Month {
		months += years * 12
		years = 0
	}
	return years, months, 0, days
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
