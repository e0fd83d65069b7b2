package zoneinfo

import (
	"cmp"
	"slices"
	"time"

	"github.com/ngrash/go-temporal/internal/isodate"
	"github.com/ngrash/go-temporal/tzdata"
)

const secondsPerDay = 86400

// rule is a yearly recurring change of local time type. It covers both the rule lines of the tz source and the
// start and end rules of POSIX TZ strings.
type rule struct {
	from, to int
	month    time.Month
	day      tzdata.Day
	// julian marks POSIX Jn days, which count days of the year without February 29.
	julian bool
	at     time.Duration
	atForm tzdata.TimeForm
	// save is the daylight saving amount in seconds in effect after the rule fires.
	save int64
	typ  LocalTimeType
}

// date returns the day the rule fires in year. Day numbers beyond the end of month roll over into the following
// months so that POSIX day-of-year rules can be expressed as days of January.
func (r rule) date(year int) isodate.Date {
	switch r.day.Form {
	case tzdata.DayFormLast:
		return isodate.LastWeekday(year, int(r.month), r.day.Day)
	case tzdata.DayFormAfter:
		return isodate.WeekdayOnOrAfter(year, int(r.month), r.day.Num, r.day.Day)
	case tzdata.DayFormBefore:
		return isodate.WeekdayOnOrBefore(year, int(r.month), r.day.Num, r.day.Day)
	default:
		n := r.day.Num
		if r.julian && isodate.IsLeapYear(year) && n >= 60 {
			n++
		}
		return isodate.Balance(year, int(r.month), int64(n))
	}
}

// local returns the rule's firing time in year as seconds since the epoch in the rule's own time form.
func (r rule) local(year int) int64 {
	return r.date(year).EpochDays()*secondsPerDay + int64(r.at/time.Second)
}

// utc returns the Unix time at which the rule fires in year, for a zone with standard offset stdOffset that
// observes save seconds of daylight saving time just before the rule fires.
func (r rule) utc(year int, stdOffset, save int64) int64 {
	local := r.local(year)
	switch r.atForm {
	case tzdata.UniversalTime:
		return local
	case tzdata.StandardTime:
		return local - stdOffset
	default:
		return local - stdOffset - save
	}
}

// ruleSet is a set of rules sharing one standard offset.
type ruleSet struct {
	stdOffset int64
	rules     []rule
}

// active returns the rules in effect in year, in the order they fire.
func (s *ruleSet) active(year int) []rule {
	var out []rule
	for _, r := range s.rules {
		if r.from <= year && year <= r.to {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b rule) int {
		return cmp.Compare(a.local(year), b.local(year))
	})
	return out
}

// transitions returns the changes of local time type caused by the rules in year. The save in effect at the
// start of the year is the one of the last rule of the previous year.
func (s *ruleSet) transitions(year int) []Transition {
	var save int64
	if prev := s.active(year - 1); len(prev) > 0 {
		save = prev[len(prev)-1].save
	}
	var out []Transition
	for _, r := range s.active(year) {
		out = append(out, Transition{At: r.utc(year, s.stdOffset, save), Type: r.typ})
		save = r.save
	}
	return out
}

// between returns the transitions t with lo < t.At <= hi in ascending order.
func (s *ruleSet) between(lo, hi int64) []Transition {
	if len(s.rules) == 0 || hi <= lo {
		return nil
	}
	var out []Transition
	for y := yearOf(lo) - 1; y <= yearOf(hi)+1; y++ {
		for _, t := range s.transitions(y) {
			if lo < t.At && t.At <= hi {
				out = append(out, t)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Transition) int { return cmp.Compare(a.At, b.At) })
	return out
}

// yearOf returns the UTC year of the Unix time sec.
func yearOf(sec int64) int {
	days := sec / secondsPerDay
	if sec%secondsPerDay < 0 {
		days--
	}
	return isodate.FromEpochDays(days).Year
}
