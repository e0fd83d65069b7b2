package isodate

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEpochDays(t *testing.T) {
	cases := []struct {
		date Date
		want int64
	}{
		{Date{1970, 1, 1}, 0},
		{Date{1969, 12, 31}, -1},
		{Date{2000, 1, 1}, 10957},
		{Date{2024, 1, 1}, 19723},
		{Date{2024, 2, 29}, 19782},
		{Date{1600, 1, 1}, -135140},
	}
	for _, c := range cases {
		if got := c.date.EpochDays(); got != c.want {
			t.Errorf("%v.EpochDays() = %d, want %d", c.date, got, c.want)
		}
		if diff := cmp.Diff(c.date, FromEpochDays(c.want)); diff != "" {
			t.Errorf("FromEpochDays(%d) mismatch (-want +got):\n%s", c.want, diff)
		}
	}
}

func TestFromEpochDaysRoundTrip(t *testing.T) {
	prev := FromEpochDays(-1_000_001)
	for d := int64(-1_000_000); d <= 1_000_000; d++ {
		got := FromEpochDays(d)
		if !IsValid(got.Year, got.Month, got.Day) {
			t.Fatalf("FromEpochDays(%d) = %v, not a valid date", d, got)
		}
		if back := got.EpochDays(); back != d {
			t.Fatalf("FromEpochDays(%d).EpochDays() = %d", d, back)
		}
		if prev.Compare(got) != -1 {
			t.Fatalf("FromEpochDays(%d) = %v is not after %v", d, got, prev)
		}
		prev = got
	}
}

func TestWeekday(t *testing.T) {
	cases := []struct {
		date Date
		want time.Weekday
	}{
		{Date{1970, 1, 1}, time.Thursday},
		{Date{1969, 12, 28}, time.Sunday},
		{Date{2024, 2, 29}, time.Thursday},
		{Date{2000, 1, 1}, time.Saturday},
		{Date{1600, 1, 1}, time.Saturday},
	}
	for _, c := range cases {
		if got := c.date.Weekday(); got != c.want {
			t.Errorf("%v.Weekday() = %v, want %v", c.date, got, c.want)
		}
	}
}

func TestWeekdayRules(t *testing.T) {
	type in = ruleInput
	cases := []struct {
		name string
		rule func(ruleInput) Date
		in   in
		want Date
	}{
		{"last", lastRule, in{2021, 3, 0, time.Sunday}, Date{2021, 3, 28}},
		{"last leap day", lastRule, in{2020, 2, 0, time.Saturday}, Date{2020, 2, 29}},

		{"after leap day", afterRule, in{2020, 2, 28, time.Saturday}, Date{2020, 2, 29}},
		{"after leap day in a non-leap year", afterRule, in{2021, 2, 28, time.Saturday}, Date{2021, 3, 6}},
		{"after on the exact day", afterRule, in{2021, 3, 28, time.Sunday}, Date{2021, 3, 28}},
		{"after later in the month", afterRule, in{2021, 3, 15, time.Sunday}, Date{2021, 3, 21}},
		{"after in the next month", afterRule, in{2021, 3, 30, time.Sunday}, Date{2021, 4, 4}},
		{"after in the next year", afterRule, in{2021, 12, 30, time.Sunday}, Date{2022, 1, 2}},

		{"before on the exact day", beforeRule, in{2021, 3, 28, time.Sunday}, Date{2021, 3, 28}},
		{"before earlier in the month", beforeRule, in{2021, 3, 15, time.Sunday}, Date{2021, 3, 14}},
		{"before in the last month", beforeRule, in{2021, 3, 5, time.Sunday}, Date{2021, 2, 28}},
		{"before in the last year", beforeRule, in{2021, 1, 2, time.Sunday}, Date{2020, 12, 27}},

		{"second sunday", nthRule, in{2024, 3, 2, time.Sunday}, Date{2024, 3, 10}},
		{"first sunday", nthRule, in{2024, 11, 1, time.Sunday}, Date{2024, 11, 3}},
		{"fifth means last", nthRule, in{2024, 10, 5, time.Sunday}, Date{2024, 10, 27}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, c.rule(c.in)); diff != "" {
				t.Errorf("%+v mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

type ruleInput struct {
	Year    int
	Month   int
	Day     int
	Weekday time.Weekday
}

func lastRule(in ruleInput) Date {
	return LastWeekday(in.Year, in.Month, in.Weekday)
}

func afterRule(in ruleInput) Date {
	return WeekdayOnOrAfter(in.Year, in.Month, in.Day, in.Weekday)
}

func beforeRule(in ruleInput) Date {
	return WeekdayOnOrBefore(in.Year, in.Month, in.Day, in.Weekday)
}

func nthRule(in ruleInput) Date {
	return NthWeekday(in.Year, in.Month, in.Day, in.Weekday)
}

func TestAdd(t *testing.T) {
	cases := []struct {
		name                       string
		date                       Date
		years, months, weeks, days int64
		constrain                  bool
		want                       Date
		wantErr                    error
	}{
		{"month end constrained", Date{2020, 1, 31}, 0, 1, 0, 0, true, Date{2020, 2, 29}, nil},
		{"month end rejected", Date{2020, 1, 31}, 0, 1, 0, 0, false, Date{}, ErrDayOutOfRange},
		{"months into next year", Date{2019, 12, 31}, 0, 2, 0, 0, true, Date{2020, 2, 29}, nil},
		{"leap day plus a year", Date{2020, 2, 29}, 1, 0, 0, 0, true, Date{2021, 2, 28}, nil},
		{"weeks and days", Date{2020, 1, 1}, 0, 0, 1, 3, true, Date{2020, 1, 11}, nil},
		{"back over leap day", Date{2020, 3, 1}, 0, 0, 0, -1, true, Date{2020, 2, 29}, nil},
		{"back into last year", Date{2020, 1, 15}, 0, -1, 0, 0, true, Date{2019, 12, 15}, nil},
		{"days regulate after months", Date{2020, 1, 31}, 0, 1, 0, 1, true, Date{2020, 3, 1}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Add(c.date, c.years, c.months, c.weeks, c.days, c.constrain)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("Add() error = %v, want %v", err, c.wantErr)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("Add() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUntil(t *testing.T) {
	type parts struct{ Years, Months, Weeks, Days int64 }
	cases := []struct {
		one, two Date
		largest  Unit
		want     parts
	}{
		{Date{2020, 1, 31}, Date{2020, 3, 1}, Month, parts{0, 1, 0, 1}},
		{Date{2020, 1, 31}, Date{2020, 3, 1}, Year, parts{0, 1, 0, 1}},
		{Date{2019, 1, 31}, Date{2020, 3, 1}, Year, parts{1, 1, 0, 1}},
		{Date{2019, 1, 31}, Date{2020, 3, 1}, Month, parts{0, 13, 0, 1}},
		{Date{2020, 3, 1}, Date{2020, 1, 31}, Month, parts{0, -1, 0, -1}},
		{Date{2020, 1, 1}, Date{2020, 1, 20}, Week, parts{0, 0, 2, 5}},
		{Date{2020, 1, 20}, Date{2020, 1, 1}, Week, parts{0, 0, -2, -5}},
		{Date{2019, 12, 31}, Date{2020, 3, 1}, Day, parts{0, 0, 0, 61}},
		{Date{2020, 2, 29}, Date{2024, 2, 29}, Year, parts{4, 0, 0, 0}},
		{Date{2020, 2, 29}, Date{2020, 2, 29}, Year, parts{}},
	}
	for _, c := range cases {
		y, m, w, d := Until(c.one, c.two, c.largest)
		if diff := cmp.Diff(c.want, parts{y, m, w, d}); diff != "" {
			t.Errorf("Until(%v, %v, %v) mismatch (-want +got):\n%s", c.one, c.two, c.largest, diff)
		}
	}
}

func TestUntilAddRoundTrip(t *testing.T) {
	start := Date{2019, 1, 31}
	for d := int64(0); d < 800; d += 3 {
		end := FromEpochDays(start.EpochDays() + d)
		for _, largest := range []Unit{Day, Week, Month, Year} {
			y, m, w, days := Until(start, end, largest)
			got, err := Add(start, y, m, w, days, true)
			if err != nil {
				t.Fatalf("Add(%v, %d, %d, %d, %d): %v", start, y, m, w, days, err)
			}
			if got != end {
				t.Errorf("Add(%v, Until(%v, %v)) = %v", start, end, largest, got)
			}
		}
	}
}
