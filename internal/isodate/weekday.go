package isodate

import "time"

// LastWeekday returns the last day of month in year that falls on weekday.
func LastWeekday(year, month int, weekday time.Weekday) Date {
	last := DaysInMonth(year, month)
	offset := floorMod(int64(Date{year, month, last}.Weekday()-weekday), 7)
	return Date{year, month, last - int(offset)}
}

// WeekdayOnOrAfter returns the first date on or after year-month-day that falls on weekday.
// The result may be in the following month or year.
func WeekdayOnOrAfter(year, month, day int, weekday time.Weekday) Date {
	d := EpochDays(year, month, day)
	return FromEpochDays(d + floorMod(int64(weekday-Weekday(d)), 7))
}

// WeekdayOnOrBefore returns the last date on or before year-month-day that falls on weekday.
// The result may be in the preceding month or year.
func WeekdayOnOrBefore(year, month, day int, weekday time.Weekday) Date {
	d := EpochDays(year, month, day)
	return FromEpochDays(d - floorMod(int64(Weekday(d)-weekday), 7))
}

// NthWeekday returns the n-th (1-based) occurrence of weekday in month. n = 5 means the last occurrence, as in
// POSIX TZ rules.
func NthWeekday(year, month, n int, weekday time.Weekday) Date {
	if n >= 5 {
		return LastWeekday(year, month, weekday)
	}
	return WeekdayOnOrAfter(year, month, 1+7*(n-1), weekday)
}
