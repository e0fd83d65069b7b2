package zoneinfo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ngrash/go-temporal/tzdata"
)

var errUnknownRules = errors.New("unknown rules")

// FromSource compiles the zone called name from tz source data. Links are followed; the zone keeps the
// requested name.
func FromSource(f tzdata.File, name string) (*Zone, error) {
	src, ok := f.Zone(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, name)
	}
	c := compiler{file: f, zone: &Zone{name: name}}
	if err := c.compile(src.Lines); err != nil {
		return nil, fmt.Errorf("zone %s: %w", name, err)
	}
	if err := c.zone.check(); err != nil {
		return nil, err
	}
	return c.zone, nil
}

// compiler turns zone lines into transitions the way zic does, one line after the other.
type compiler struct {
	file    tzdata.File
	zone    *Zone
	started bool
	// current is the type in effect after the last emitted transition.
	current LocalTimeType
	// save is the daylight saving amount in effect, in seconds.
	save int64
}

func (c *compiler) compile(lines []tzdata.ZoneLine) error {
	start := int64(math.MinInt64)
	for i, line := range lines {
		last := i == len(lines)-1
		stdOffset := roundSeconds(line.Offset)
		switch line.Rules.Form {
		case tzdata.ZoneRulesName:
			rules := c.file.RuleSet(line.Rules.Name)
			if len(rules) == 0 {
				return fmt.Errorf("%w: %s", errUnknownRules, line.Rules.Name)
			}
			c.applyRules(rules, line, stdOffset, start, last)
		default:
			var save int64
			if line.Rules.Form == tzdata.ZoneRulesTime {
				save = roundSeconds(line.Rules.Time.Duration)
			}
			dst := save != 0
			c.save = save
			c.emit(start, LocalTimeType{
				Offset: int32(stdOffset + save),
				DST:    dst,
				Abbrev: abbreviation(line.Format, "", dst, stdOffset+save),
			})
		}
		if last || !line.Until.Defined {
			break
		}
		start = untilRule(line.Until).utc(line.Until.Year, stdOffset, c.save)
	}
	if c.zone.extend == nil {
		c.zone.footer = formatPOSIXFixed(c.current)
	}
	return nil
}

// applyRules emits the transitions of one zone line that refers to named rules.
func (c *compiler) applyRules(src []tzdata.Rule, line tzdata.ZoneLine, stdOffset, start int64, last bool) {
	set := &ruleSet{stdOffset: stdOffset}
	var (
		standard = LocalTimeType{Offset: int32(stdOffset), Abbrev: abbreviation(line.Format, "", false, stdOffset)}
		minFrom  = math.MaxInt
		endYear  = math.MinInt
		tail     []rule
	)
	for _, r := range src {
		converted := convertRule(r, line.Format, stdOffset)
		set.rules = append(set.rules, converted)
		minFrom = min(minFrom, converted.from)
		endYear = max(endYear, converted.from)
		if r.To == tzdata.MaxYear {
			tail = append(tail, converted)
		} else {
			endYear = max(endYear, converted.to)
		}
	}
	for _, r := range set.rules {
		// Local time before the first rule uses the letter of the earliest standard time rule.
		if r.save == 0 && r.from == minFrom {
			standard = r.typ
			break
		}
	}

	startYear := minFrom
	typ, save := standard, int64(0)
	if start != math.MinInt64 {
		startYear = yearOf(start)
		// The type in effect at start is the one set by the latest rule that fired before.
	search:
		for y := startYear; y >= max(minFrom, startYear-400); y-- {
			ts := set.transitions(y)
			for j := len(ts) - 1; j >= 0; j-- {
				if ts[j].At <= start {
					typ, save = ts[j].Type, int64(ts[j].Type.Offset)-stdOffset
					break search
				}
			}
		}
	}
	c.save = save
	c.emit(start, typ)

	if line.Until.Defined {
		endYear = line.Until.Year
	} else {
		endYear = max(endYear+1, startYear+1)
	}
	until := untilRule(line.Until)
	for y := startYear; y <= endYear; y++ {
		for _, r := range set.active(y) {
			at := r.utc(y, stdOffset, c.save)
			if at <= start {
				continue
			}
			if line.Until.Defined && at >= until.utc(line.Until.Year, stdOffset, c.save) {
				return
			}
			c.emit(at, r.typ)
			c.save = r.save
		}
	}

	if last && len(tail) > 0 {
		c.zone.extend = &ruleSet{stdOffset: stdOffset, rules: tail}
		c.zone.footer, _ = formatPOSIX(c.zone.extend)
	}
}

// emit records a change to typ at the Unix time at. The first call sets the type before all transitions.
func (c *compiler) emit(at int64, typ LocalTimeType) {
	z := c.zone
	if !c.started {
		z.initial, c.current, c.started = typ, typ, true
		return
	}
	// A later zone line may start before transitions already emitted; they never took effect.
	for n := len(z.transitions); n > 0 && z.transitions[n-1].At >= at; n-- {
		z.transitions = z.transitions[:n-1]
		c.current = z.initial
		if n > 1 {
			c.current = z.transitions[n-2].Type
		}
	}
	if typ == c.current {
		return
	}
	z.transitions = append(z.transitions, Transition{At: at, Type: typ})
	c.current = typ
}

func convertRule(r tzdata.Rule, format string, stdOffset int64) rule {
	save := roundSeconds(r.Save.Duration)
	dst := r.Save.Form == tzdata.DaylightSavingTime
	return rule{
		from:   int(r.From),
		to:     int(r.To),
		month:  r.In,
		day:    r.On,
		at:     r.At.Duration,
		atForm: r.At.Form,
		save:   save,
		typ: LocalTimeType{
			Offset: int32(stdOffset + save),
			DST:    dst,
			Abbrev: abbreviation(format, r.Letter, dst, stdOffset+save),
		},
	}
}

// untilRule returns a rule that fires at the UNTIL column u.
func untilRule(u tzdata.Until) rule {
	return rule{month: u.Month, day: u.Day, at: u.Time.Duration, atForm: u.Time.Form}
}

// abbreviation expands the FORMAT column: "GMT/BST" picks by dst, %s takes the rule letter and %z the
// numeric offset.
func abbreviation(format, letter string, dst bool, offset int64) string {
	if std, daylight, ok := strings.Cut(format, "/"); ok {
		if dst {
			return daylight
		}
		return std
	}
	if strings.Contains(format, "%z") {
		return strings.Replace(format, "%z", numericOffset(offset), 1)
	}
	return strings.Replace(format, "%s", letter, 1)
}

// numericOffset formats offset as +hh, +hhmm or +hhmmss.
func numericOffset(offset int64) string {
	sign := '+'
	if offset < 0 {
		sign, offset = '-', -offset
	}
	h, m, s := offset/3600, offset/60%60, offset%60
	switch {
	case s != 0:
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%c%02d%02d", sign, h, m)
	default:
		return fmt.Sprintf("%c%02d", sign, h)
	}
}

// roundSeconds rounds d to whole seconds, ties to even.
func roundSeconds(d time.Duration) int64 {
	return int64(math.RoundToEven(d.Seconds()))
}
