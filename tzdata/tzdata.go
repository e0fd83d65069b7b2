// Package tzdata parses the Rule, Zone and Link lines of the IANA tz source files
// (https://www.iana.org/time-zones) as described in zic(8).
package tzdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// File holds the lines of one or more tz source files in the order they appear.
type File struct {
	Zones []Zone
	Rules []Rule
	Links []Link
}

// Zone returns the zone called name, following links.
func (f File) Zone(name string) (Zone, bool) {
	for range len(f.Links) + 1 {
		for _, z := range f.Zones {
			if z.Name == name {
				return z, true
			}
		}
		target, ok := f.linkTarget(name)
		if !ok {
			break
		}
		name = target
	}
	return Zone{}, false
}

func (f File) linkTarget(name string) (string, bool) {
	for _, l := range f.Links {
		if l.Name == name {
			return l.Target, true
		}
	}
	return "", false
}

// RuleSet returns the rules called name in source order.
func (f File) RuleSet(name string) []Rule {
	var rules []Rule
	for _, r := range f.Rules {
		if r.Name == name {
			rules = append(rules, r)
		}
	}
	return rules
}

// Merge appends the lines of o to f.
func (f *File) Merge(o File) {
	f.Zones = append(f.Zones, o.Zones...)
	f.Rules = append(f.Rules, o.Rules...)
	f.Links = append(f.Links, o.Links...)
}

type parseError struct {
	lineNumber int
	line       string
	err        error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.lineNumber, e.line, e.err)
}

func (e *parseError) Unwrap() error { return e.err }

// Parse reads tz source from r.
func Parse(r io.Reader) (File, error) {
	var (
		f          File
		lineNumber int
		// zone is the zone whose continuation lines are expected next, or nil.
		zone *Zone
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields := splitLine(line)
		if fields == nil {
			continue
		}
		fail := func(kind string, err error) error {
			return &parseError{lineNumber, line, fmt.Errorf("parse %s: %w", kind, err)}
		}

		if zone != nil {
			l, err := parseZoneLine(fields)
			if err != nil {
				return f, fail("zone continuation", err)
			}
			zone.Lines = append(zone.Lines, l)
			if !l.Until.Defined {
				f.Zones = append(f.Zones, *zone)
				zone = nil
			}
			continue
		}

		switch {
		case isAbbrev(fields[0], "Zone", "Z"):
			if len(fields) < 2 {
				return f, fail("zone", errors.New("missing name"))
			}
			name, err := parseZoneName(fields[1])
			if err != nil {
				return f, fail("zone", err)
			}
			l, err := parseZoneLine(fields[2:])
			if err != nil {
				return f, fail("zone", err)
			}
			z := Zone{Name: name, Lines: []ZoneLine{l}}
			if l.Until.Defined {
				zone = &z
			} else {
				f.Zones = append(f.Zones, z)
			}
		case isAbbrev(fields[0], "Rule", "R"):
			rule, err := parseRuleLine(fields)
			if err != nil {
				return f, fail("rule", err)
			}
			f.Rules = append(f.Rules, rule)
		case isAbbrev(fields[0], "Link", "L"):
			if len(fields) != 3 {
				return f, fail("link", fmt.Errorf("expected 3 fields, got %d", len(fields)))
			}
			f.Links = append(f.Links, Link{Target: fields[1], Name: fields[2]})
		case isAbbrev(fields[0], "Leap", "Le"), isAbbrev(fields[0], "Expires", "E"):
			// Leap seconds are not modelled.
		default:
			return f, &parseError{lineNumber, line, errors.New("unexpected line")}
		}
	}
	if err := scanner.Err(); err != nil {
		return f, fmt.Errorf("scanner: %w", err)
	}
	if zone != nil {
		return f, fmt.Errorf("zone %s: missing continuation line", zone.Name)
	}
	return f, nil
}

// splitLine returns the fields of line, or nil for blank and comment lines. Double quotes may enclose white
// space and sharp characters.
func splitLine(line string) []string {
	var (
		fields []string
		field  strings.Builder
		quoted bool
		inside bool
	)
scan:
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
			inside = true
		case quoted:
			field.WriteRune(c)
		case c == '#':
			break scan
		case strings.ContainsRune(" \f\r\n\t\v", c):
			if inside {
				fields = append(fields, field.String())
				field.Reset()
				inside = false
			}
		default:
			field.WriteRune(c)
			inside = true
		}
	}
	if inside {
		fields = append(fields, field.String())
	}
	return fields
}

// Year is a year in the proleptic Gregorian calendar, or MinYear or MaxYear.
type Year int

const (
	// MinYear means the indefinite past.
	MinYear Year = math.MinInt
	// MaxYear means the indefinite future.
	MaxYear Year = math.MaxInt
)

func (y Year) String() string {
	switch y {
	case MinYear:
		return "<indefinite past>"
	case MaxYear:
		return "<indefinite future>"
	}
	return strconv.Itoa(int(y))
}

// TimeForm tells against which clock a time of day is measured.
type TimeForm int

const (
	WallClock TimeForm = iota
	StandardTime
	DaylightSavingTime
	UniversalTime
)

func (f TimeForm) String() string {
	switch f {
	case WallClock:
		return "WallClock"
	case StandardTime:
		return "StandardTime"
	case DaylightSavingTime:
		return "DaylightSavingTime"
	case UniversalTime:
		return "UniversalTime"
	}
	return "<UNDEFINED>"
}

// Time is a duration since 00:00 together with its clock.
type Time struct {
	time.Duration
	Form TimeForm
}

// DayForm is the form of an ON column.
type DayForm int

const (
	// DayFormNum is a fixed day of the month: "5".
	DayFormNum DayForm = iota
	// DayFormLast is the last weekday of the month: "lastSun".
	DayFormLast
	// DayFormAfter is the first weekday on or after Num: "Sun>=8".
	DayFormAfter
	// DayFormBefore is the last weekday on or before Num: "Sun<=25".
	DayFormBefore
)

func (f DayForm) String() string {
	switch f {
	case DayFormNum:
		return "Num"
	case DayFormLast:
		return "Last"
	case DayFormAfter:
		return "After"
	case DayFormBefore:
		return "Before"
	}
	return "<UNDEFINED>"
}

// Day is the ON column of a rule or the day of an UNTIL column.
type Day struct {
	Form DayForm
	Num  int
	Day  time.Weekday
}

// Rule is a rule line.
//
//	Rule  NAME  FROM  TO    -  IN   ON       AT     SAVE   LETTER/S
//	Rule  US    1967  1973  -  Apr  lastSun  2:00w  1:00d  D
type Rule struct {
	Name   string
	From   Year
	To     Year
	In     time.Month
	On     Day
	At     Time
	Save   Time
	Letter string
}

// Link makes Name an alias of Target.
type Link struct {
	Target string
	Name   string
}

// Zone is a zone line together with its continuation lines.
type Zone struct {
	Name  string
	Lines []ZoneLine
}

// ZoneLine is the STDOFF, RULES, FORMAT and UNTIL columns of a zone or continuation line.
//
//	Zone  NAME        STDOFF  RULES   FORMAT  [UNTIL]
//	Zone  Asia/Amman  2:00    Jordan  EE%sT   2017 Oct 27 01:00
type ZoneLine struct {
	Offset time.Duration
	Rules  ZoneRules
	Format string
	Until  Until
}

// ZoneRulesForm is the form of the RULES column.
type ZoneRulesForm int

const (
	// ZoneRulesStandard ("-") means standard time always applies.
	ZoneRulesStandard ZoneRulesForm = iota
	// ZoneRulesName refers to the rules called Name.
	ZoneRulesName
	// ZoneRulesTime adds a fixed amount of time to standard time.
	ZoneRulesTime
)

// ZoneRules is the RULES column of a zone line.
type ZoneRules struct {
	Form ZoneRulesForm
	Name string
	Time Time
}

// Until is the UNTIL column of a zone line. Omitted trailing fields take their earliest value; the zero value
// means the line applies indefinitely.
type Until struct {
	Defined bool
	Year    int
	Month   time.Month
	Day     Day
	Time    Time
}

func parseZoneName(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty name")
	}
	for _, part := range strings.Split(s, "/") {
		if part == "." || part == ".." {
			return "", fmt.Errorf("name %q contains a dot component", s)
		}
	}
	return s, nil
}

// parseZoneLine parses STDOFF RULES FORMAT [UNTIL].
func parseZoneLine(fields []string) (ZoneLine, error) {
	if len(fields) < 3 || len(fields) > 7 {
		return ZoneLine{}, fmt.Errorf("expected 3 to 7 fields, got %d", len(fields))
	}
	var (
		z    ZoneLine
		errs []error
		err  error
	)
	if z.Offset, err = parseTimeOfDay(fields[0]); err != nil {
		errs = append(errs, fmt.Errorf("STDOFF %q: %w", fields[0], err))
	}
	z.Rules = parseZoneRules(fields[1])
	if z.Format = fields[2]; z.Format == "" {
		errs = append(errs, errors.New("FORMAT: empty"))
	}
	if len(fields) > 3 {
		if z.Until, err = parseUntil(fields[3:]); err != nil {
			errs = append(errs, fmt.Errorf("UNTIL %q: %w", strings.Join(fields[3:], " "), err))
		}
	}
	return z, errors.Join(errs...)
}

func parseZoneRules(s string) ZoneRules {
	if s == "-" || s == "" {
		return ZoneRules{Form: ZoneRulesStandard}
	}
	if t, err := parseSave(s); err == nil {
		return ZoneRules{Form: ZoneRulesTime, Time: t}
	}
	return ZoneRules{Form: ZoneRulesName, Name: s}
}

func parseUntil(fields []string) (Until, error) {
	u := Until{Month: time.January, Day: Day{Form: DayFormNum, Num: 1}}
	var err error
	if u.Year, err = strconv.Atoi(fields[0]); err != nil {
		return u, fmt.Errorf("year: %w", err)
	}
	if len(fields) > 1 {
		if u.Month, err = parseMonth(fields[1]); err != nil {
			return u, err
		}
	}
	if len(fields) > 2 {
		if u.Day, err = parseDay(fields[2]); err != nil {
			return u, fmt.Errorf("day: %w", err)
		}
	}
	if len(fields) > 3 {
		if u.Time, err = parseAt(fields[3]); err != nil {
			return u, fmt.Errorf("time: %w", err)
		}
	}
	u.Defined = true
	return u, nil
}

func parseRuleLine(fields []string) (Rule, error) {
	if len(fields) != 10 {
		return Rule{}, fmt.Errorf("expected 10 fields, got %d", len(fields))
	}
	var (
		r    Rule
		errs []error
		err  error
	)
	if r.Name, err = parseRuleName(fields[1]); err != nil {
		errs = append(errs, fmt.Errorf("NAME %q: %w", fields[1], err))
	}
	if r.From, err = parseYear(fields[2], 0); err != nil {
		errs = append(errs, fmt.Errorf("FROM %q: %w", fields[2], err))
	}
	if r.To, err = parseYear(fields[3], r.From); err != nil {
		errs = append(errs, fmt.Errorf("TO %q: %w", fields[3], err))
	}
	if r.In, err = parseMonth(fields[5]); err != nil {
		errs = append(errs, fmt.Errorf("IN: %w", err))
	}
	if r.On, err = parseDay(fields[6]); err != nil {
		errs = append(errs, fmt.Errorf("ON %q: %w", fields[6], err))
	}
	if r.At, err = parseAt(fields[7]); err != nil {
		errs = append(errs, fmt.Errorf("AT %q: %w", fields[7], err))
	}
	if r.Save, err = parseSave(fields[8]); err != nil {
		errs = append(errs, fmt.Errorf("SAVE %q: %w", fields[8], err))
	}
	if r.Letter = fields[9]; r.Letter == "-" {
		r.Letter = ""
	}
	return r, errors.Join(errs...)
}

func parseRuleName(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty name")
	}
	if c := s[0]; c >= '0' && c <= '9' || c == '-' || c == '+' {
		return "", fmt.Errorf("name starts with %q", c)
	}
	if strings.ContainsAny(s, "!$%&'()*,/:;<=>?@[\\]^`{|}~") {
		return "", errors.New("name contains a special character")
	}
	return s, nil
}

// parseYear parses FROM and TO columns; "only" repeats from.
func parseYear(s string, from Year) (Year, error) {
	l := strings.ToLower(s)
	switch {
	case isAbbrev(l, "minimum", "mi"):
		return MinYear, nil
	case isAbbrev(l, "maximum", "ma"):
		return MaxYear, nil
	case isAbbrev(l, "only", "o"):
		return from, nil
	}
	n, err := strconv.Atoi(s)
	return Year(n), err
}

var months = [...]struct{ name, min string }{
	{"january", "ja"}, {"february", "f"}, {"march", "mar"}, {"april", "ap"}, {"may", "may"}, {"june", "jun"},
	{"july", "jul"}, {"august", "au"}, {"september", "s"}, {"october", "o"}, {"november", "n"}, {"december", "d"},
}

func parseMonth(s string) (time.Month, error) {
	l := strings.ToLower(s)
	for i, m := range months {
		if isAbbrev(l, m.name, m.min) {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

var weekdays = [...]struct{ name, min string }{
	{"sunday", "su"}, {"monday", "m"}, {"tuesday", "tu"}, {"wednesday", "w"},
	{"thursday", "th"}, {"friday", "f"}, {"saturday", "sa"},
}

func parseWeekday(s string) (time.Weekday, error) {
	l := strings.ToLower(s)
	for i, d := range weekdays {
		if isAbbrev(l, d.name, d.min) {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func isAbbrev(s, long, min string) bool {
	return strings.HasPrefix(s, min) && strings.HasPrefix(long, s)
}

// parseDay parses "5", "lastSun", "Sun>=8" and "Sun<=25".
func parseDay(s string) (Day, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 31 {
			return Day{}, fmt.Errorf("day %d out of range", n)
		}
		return Day{Form: DayFormNum, Num: n}, nil
	}
	if rest, ok := strings.CutPrefix(s, "last"); ok {
		wd, err := parseWeekday(rest)
		return Day{Form: DayFormLast, Day: wd}, err
	}
	for op, form := range map[string]DayForm{">=": DayFormAfter, "<=": DayFormBefore} {
		left, right, ok := strings.Cut(s, op)
		if !ok {
			continue
		}
		wd, err := parseWeekday(left)
		if err != nil {
			return Day{}, err
		}
		n, err := strconv.Atoi(right)
		if err != nil {
			return Day{}, fmt.Errorf("day of month %q: %w", right, err)
		}
		return Day{Form: form, Day: wd, Num: n}, nil
	}
	return Day{}, errors.New("expected a day, lastWeekday, weekday>=day or weekday<=day")
}

func parseAt(s string) (Time, error) {
	if s == "" {
		return Time{}, errors.New("empty time")
	}
	form := WallClock
	switch s[len(s)-1] {
	case 'w':
		s = s[:len(s)-1]
	case 's':
		form, s = StandardTime, s[:len(s)-1]
	case 'u', 'g', 'z':
		form, s = UniversalTime, s[:len(s)-1]
	}
	d, err := parseTimeOfDay(s)
	return Time{Duration: d, Form: form}, err
}

// parseSave parses a SAVE column. Without a suffix, zero is standard time and anything else daylight saving
// time.
func parseSave(s string) (Time, error) {
	if s == "" {
		return Time{}, errors.New("empty time")
	}
	var form TimeForm
	switch s[len(s)-1] {
	case 's':
		form, s = StandardTime, s[:len(s)-1]
	case 'd':
		form, s = DaylightSavingTime, s[:len(s)-1]
	default:
		form = -1
	}
	d, err := parseTimeOfDay(s)
	if err != nil {
		return Time{}, err
	}
	if form < 0 {
		form = StandardTime
		if d != 0 {
			form = DaylightSavingTime
		}
	}
	return Time{Duration: d, Form: form}, nil
}

// parseTimeOfDay parses [-]hh[:mm[:ss[.fraction]]] or "-". Hours may exceed 24.
func parseTimeOfDay(s string) (time.Duration, error) {
	if s == "-" {
		return 0, nil
	}
	s, negative := strings.CutPrefix(s, "-")
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	var (
		d    time.Duration
		unit = []time.Duration{time.Hour, time.Minute, time.Second}
	)
	for i, p := range parts {
		whole, frac, hasFrac := strings.Cut(p, ".")
		if hasFrac && i != 2 {
			return 0, fmt.Errorf("fraction in %q", p)
		}
		n, err := strconv.Atoi(whole)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		d += time.Duration(n) * unit[i]
		if hasFrac {
			frac = (frac + "000000000")[:9]
			ns, err := strconv.Atoi(frac)
			if err != nil {
				return 0, fmt.Errorf("invalid fraction %q", frac)
			}
			d += time.Duration(ns)
		}
	}
	if negative {
		d = -d
	}
	return d, nil
}
