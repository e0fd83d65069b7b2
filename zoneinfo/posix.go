package zoneinfo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ngrash/go-temporal/internal/isodate"
	"github.com/ngrash/go-temporal/tzdata"
)

// ParsePOSIX returns a zone that follows the TZ string tz at all times, for example "EST5EDT,M3.2.0,M11.1.0".
// The zone is named tz.
func ParsePOSIX(tz string) (*Zone, error) {
	std, set, err := parsePOSIX(tz)
	if err != nil {
		return nil, err
	}
	z := &Zone{name: tz, initial: std, extend: set, footer: tz}
	if err := z.check(); err != nil {
		return nil, err
	}
	return z, nil
}

// parsePOSIX parses a TZ string as found in TZif footers. Rule times may range from -167 to 167 hours as
// allowed since version 3.
func parsePOSIX(tz string) (LocalTimeType, *ruleSet, error) {
	invalid := func(what string) error {
		return fmt.Errorf("TZ string %q: invalid %s", tz, what)
	}
	stdName, s, ok := posixName(tz)
	if !ok {
		return LocalTimeType{}, nil, invalid("standard time designation")
	}
	// POSIX offsets count hours west of Greenwich.
	stdWest, s, ok := posixOffset(s, 24)
	if !ok {
		return LocalTimeType{}, nil, invalid("standard time offset")
	}
	std := LocalTimeType{Offset: int32(-stdWest), Abbrev: stdName}
	set := &ruleSet{stdOffset: int64(-stdWest)}
	if s == "" {
		return std, set, nil
	}

	dstName, s, ok := posixName(s)
	if !ok {
		return LocalTimeType{}, nil, invalid("daylight saving time designation")
	}
	dstWest := stdWest - 3600
	if s != "" && s[0] != ',' {
		if dstWest, s, ok = posixOffset(s, 24); !ok {
			return LocalTimeType{}, nil, invalid("daylight saving time offset")
		}
	}
	if s == "" {
		// US rules apply when none are given.
		s = ",M3.2.0,M11.1.0"
	}
	if s[0] != ',' {
		return LocalTimeType{}, nil, invalid("rule")
	}
	start, s, ok := posixRule(s[1:])
	if !ok || s == "" || s[0] != ',' {
		return LocalTimeType{}, nil, invalid("start rule")
	}
	end, s, ok := posixRule(s[1:])
	if !ok || s != "" {
		return LocalTimeType{}, nil, invalid("end rule")
	}
	start.save = int64(stdWest - dstWest)
	start.typ = LocalTimeType{Offset: int32(-dstWest), DST: true, Abbrev: dstName}
	end.typ = std
	set.rules = []rule{start, end}
	return std, set, nil
}

// posixName returns the designation at the start of s: three or more letters, or any characters between
// angle brackets.
func posixName(s string) (name, rest string, ok bool) {
	if strings.HasPrefix(s, "<") {
		i := strings.IndexByte(s, '>')
		if i < 4 {
			return "", "", false
		}
		return s[1:i], s[i+1:], true
	}
	i := strings.IndexFunc(s, func(r rune) bool { return !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z') })
	if i < 0 {
		i = len(s)
	}
	if i < 3 {
		return "", "", false
	}
	return s[:i], s[i:], true
}

// posixOffset returns the signed [+-]hh[:mm[:ss]] value at the start of s in seconds.
func posixOffset(s string, maxHours int) (int, string, bool) {
	neg := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		s, neg = s[1:], true
	}
	hours, s, ok := posixNum(s, 0, maxHours)
	if !ok {
		return 0, "", false
	}
	off := hours * 3600
	for _, unit := range []int{60, 1} {
		if !strings.HasPrefix(s, ":") {
			break
		}
		var n int
		if n, s, ok = posixNum(s[1:], 0, 59); !ok {
			return 0, "", false
		}
		off += n * unit
	}
	if neg {
		off = -off
	}
	return off, s, true
}

// posixRule parses Jn, n or Mm.w.d followed by an optional /time.
func posixRule(s string) (rule, string, bool) {
	r := rule{from: math.MinInt, to: math.MaxInt, month: time.January, at: 2 * time.Hour, atForm: tzdata.WallClock}
	var ok bool
	switch {
	case strings.HasPrefix(s, "J"):
		var n int
		if n, s, ok = posixNum(s[1:], 1, 365); !ok {
			return rule{}, "", false
		}
		r.day = tzdata.Day{Form: tzdata.DayFormNum, Num: n}
		r.julian = true
	case strings.HasPrefix(s, "M"):
		var m, w, d int
		if m, s, ok = posixNum(s[1:], 1, 12); !ok || !strings.HasPrefix(s, ".") {
			return rule{}, "", false
		}
		if w, s, ok = posixNum(s[1:], 1, 5); !ok || !strings.HasPrefix(s, ".") {
			return rule{}, "", false
		}
		if d, s, ok = posixNum(s[1:], 0, 6); !ok {
			return rule{}, "", false
		}
		r.month = time.Month(m)
		if w == 5 {
			r.day = tzdata.Day{Form: tzdata.DayFormLast, Day: time.Weekday(d)}
		} else {
			r.day = tzdata.Day{Form: tzdata.DayFormAfter, Num: 1 + 7*(w-1), Day: time.Weekday(d)}
		}
	default:
		var n int
		if n, s, ok = posixNum(s, 0, 365); !ok {
			return rule{}, "", false
		}
		r.day = tzdata.Day{Form: tzdata.DayFormNum, Num: n + 1}
	}
	if strings.HasPrefix(s, "/") {
		var at int
		if at, s, ok = posixOffset(s[1:], 167); !ok {
			return rule{}, "", false
		}
		r.at = time.Duration(at) * time.Second
	}
	return r, s, true
}

// posixNum parses the decimal number at the start of s, which must be within [min, max].
func posixNum(s string, min, max int) (int, string, bool) {
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i < 0 {
		i = len(s)
	}
	if i == 0 || i > 3 {
		return 0, "", false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n < min || n > max {
		return 0, "", false
	}
	return n, s[i:], true
}

// formatPOSIXFixed returns the TZ string of a zone that always observes typ.
func formatPOSIXFixed(typ LocalTimeType) string {
	var b strings.Builder
	writePOSIXName(&b, typ.Abbrev)
	writePOSIXOffset(&b, -int64(typ.Offset))
	return b.String()
}

// formatPOSIX returns the TZ string of a rule set with one daylight saving and one standard time rule. It
// reports false when the rules have another shape or fall on days a TZ string cannot express.
func formatPOSIX(set *ruleSet) (string, bool) {
	if len(set.rules) != 2 {
		return "", false
	}
	start, end := set.rules[0], set.rules[1]
	if start.save == 0 {
		start, end = end, start
	}
	if start.save == 0 || end.save != 0 {
		return "", false
	}
	var b strings.Builder
	writePOSIXName(&b, end.typ.Abbrev)
	writePOSIXOffset(&b, -int64(end.typ.Offset))
	writePOSIXName(&b, start.typ.Abbrev)
	if start.save != 3600 {
		writePOSIXOffset(&b, -int64(start.typ.Offset))
	}
	for _, r := range []struct {
		rule
		before int64
	}{{start, 0}, {end, start.save}} {
		b.WriteByte(',')
		if !writePOSIXDate(&b, r.rule) {
			return "", false
		}
		wall := int64(r.at / time.Second)
		switch r.atForm {
		case tzdata.UniversalTime:
			wall += set.stdOffset + r.before
		case tzdata.StandardTime:
			wall += r.before
		}
		if wall != 7200 {
			b.WriteByte('/')
			writePOSIXOffset(&b, wall)
		}
	}
	return b.String(), true
}

func writePOSIXName(b *strings.Builder, name string) {
	if n, rest, ok := posixName(name); ok && n == name && rest == "" {
		b.WriteString(name)
		return
	}
	b.WriteString("<" + name + ">")
}

func writePOSIXOffset(b *strings.Builder, sec int64) {
	if sec < 0 {
		b.WriteByte('-')
		sec = -sec
	}
	b.WriteString(strconv.FormatInt(sec/3600, 10))
	if sec%3600 != 0 {
		fmt.Fprintf(b, ":%02d", sec/60%60)
		if sec%60 != 0 {
			fmt.Fprintf(b, ":%02d", sec%60)
		}
	}
}

func writePOSIXDate(b *strings.Builder, r rule) bool {
	switch r.day.Form {
	case tzdata.DayFormLast:
		fmt.Fprintf(b, "M%d.5.%d", r.month, r.day.Day)
	case tzdata.DayFormAfter:
		if (r.day.Num-1)%7 != 0 || r.day.Num > 22 {
			return false
		}
		fmt.Fprintf(b, "M%d.%d.%d", r.month, (r.day.Num-1)/7+1, r.day.Day)
	case tzdata.DayFormNum:
		const commonYear = 2001
		switch {
		case r.julian:
			fmt.Fprintf(b, "J%d", r.day.Num)
		case r.day.Num <= isodate.DaysInMonth(commonYear, int(r.month)):
			fmt.Fprintf(b, "J%d", isodate.DayOfYear(commonYear, int(r.month), r.day.Num))
		case r.month == time.January:
			fmt.Fprintf(b, "%d", r.day.Num-1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}
