// Package zoneinfo provides IANA time zones for the temporal package. Zones are read from TZif files, compiled
// from tz source or built from POSIX TZ strings.
package zoneinfo

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"slices"
	"sort"

	"github.com/ngrash/go-temporal/temporal"
)

// ErrUnknownZone is returned for zone names without data.
var ErrUnknownZone = errors.New("unknown time zone")

// LocalTimeType describes local time in a zone between two transitions.
type LocalTimeType struct {
	// Offset is added to UTC to get local time, in seconds.
	Offset int32
	DST    bool
	Abbrev string
}

// Transition is a change of local time type at a Unix time.
type Transition struct {
	At   int64
	Type LocalTimeType
}

// Zone is a time zone given by a list of transitions. After the last transition, an optional rule set
// extends the zone into the future. A Zone is immutable and implements temporal.TimeZone.
type Zone struct {
	name string
	// initial applies before the first transition.
	initial     LocalTimeType
	transitions []Transition
	extend      *ruleSet
	// footer is the POSIX TZ string equivalent of extend, or the last local time type when extend is nil.
	footer string
}

var _ temporal.TimeZone = (*Zone)(nil)

// New returns a zone without rules for the future: initial applies before the first transition and the last
// transition's type forever after it.
func New(name string, initial LocalTimeType, transitions []Transition) (*Zone, error) {
	z := &Zone{name: name, initial: initial, transitions: slices.Clone(transitions)}
	if err := z.check(); err != nil {
		return nil, err
	}
	return z, nil
}

// check verifies that transitions are ascending and that every offset is less than one day.
func (z *Zone) check() error {
	types := []LocalTimeType{z.initial}
	for i, t := range z.transitions {
		if i > 0 && t.At <= z.transitions[i-1].At {
			return fmt.Errorf("zone %s: transition %d at %d does not follow %d", z.name, i, t.At, z.transitions[i-1].At)
		}
		types = append(types, t.Type)
	}
	if z.extend != nil {
		for _, r := range z.extend.rules {
			types = append(types, r.typ)
		}
	}
	for _, t := range types {
		if t.Offset <= -secondsPerDay || t.Offset >= secondsPerDay {
			return fmt.Errorf("zone %s: offset %d s of %s: %w", z.name, t.Offset, t.Abbrev, temporal.ErrRange)
		}
	}
	return nil
}

func (z *Zone) ID() string     { return z.name }
func (z *Zone) String() string { return z.name }

// Transitions returns the explicit transitions of z. Rule-based transitions after the last one are not
// included.
func (z *Zone) Transitions() []Transition { return slices.Clone(z.transitions) }

// Footer returns the POSIX TZ string that describes z after its last explicit transition. It is empty when
// the zone's rules cannot be expressed as a TZ string.
func (z *Zone) Footer() string { return z.footer }

// last returns the time and type of the last explicit transition.
func (z *Zone) last() (int64, LocalTimeType) {
	if n := len(z.transitions); n > 0 {
		return z.transitions[n-1].At, z.transitions[n-1].Type
	}
	return math.MinInt64, z.initial
}

// Lookup returns the local time type in effect at the Unix time sec.
func (z *Zone) Lookup(sec int64) LocalTimeType {
	n := sort.Search(len(z.transitions), func(i int) bool { return z.transitions[i].At > sec })
	if n < len(z.transitions) || z.extend == nil {
		if n == 0 {
			return z.initial
		}
		return z.transitions[n-1].Type
	}
	lastAt, typ := z.last()
	// Rules fire at least once a year.
	for _, t := range z.extend.between(max(lastAt, sec-400*secondsPerDay), sec) {
		typ = t.Type
	}
	return typ
}

// between returns the explicit and rule-based transitions t with lo < t.At <= hi. hi - lo must span a few
// years at most.
func (z *Zone) between(lo, hi int64) []Transition {
	i := sort.Search(len(z.transitions), func(i int) bool { return z.transitions[i].At > lo })
	var out []Transition
	for ; i < len(z.transitions) && z.transitions[i].At <= hi; i++ {
		out = append(out, z.transitions[i])
	}
	if z.extend != nil {
		lastAt, _ := z.last()
		out = append(out, z.extend.between(max(lo, lastAt), hi)...)
	}
	return out
}

// searchWindow bounds the search for offset changes after the last explicit transition.
const searchWindow = 366 * secondsPerDay

// NextTransition returns the first transition after sec that changes the UTC offset.
func (z *Zone) NextTransition(sec int64) (Transition, bool) {
	prev := z.Lookup(sec).Offset
	i := sort.Search(len(z.transitions), func(i int) bool { return z.transitions[i].At > sec })
	for ; i < len(z.transitions); i++ {
		if t := z.transitions[i]; t.Type.Offset != prev {
			return t, true
		}
		prev = z.transitions[i].Type.Offset
	}
	if z.extend == nil {
		return Transition{}, false
	}
	lastAt, _ := z.last()
	lo := max(sec, lastAt)
	for range 3 {
		for _, t := range z.extend.between(lo, lo+searchWindow) {
			if t.Type.Offset != prev {
				return t, true
			}
			prev = t.Type.Offset
		}
		lo += searchWindow
	}
	return Transition{}, false
}

// PreviousTransition returns the last transition before sec that changes the UTC offset.
func (z *Zone) PreviousTransition(sec int64) (Transition, bool) {
	lastAt, _ := z.last()
	if z.extend != nil && sec > lastAt {
		hi := sec - 1
		for range 3 {
			lo := max(hi-searchWindow, lastAt)
			ts := z.extend.between(lo, hi)
			for j := len(ts) - 1; j >= 0; j-- {
				if z.Lookup(ts[j].At-1).Offset != ts[j].Type.Offset {
					return ts[j], true
				}
			}
			if lo == lastAt {
				break
			}
			hi = lo
		}
	}
	i := sort.Search(len(z.transitions), func(i int) bool { return z.transitions[i].At >= sec })
	for i--; i >= 0; i-- {
		before := z.initial
		if i > 0 {
			before = z.transitions[i-1].Type
		}
		if before.Offset != z.transitions[i].Type.Offset {
			return z.transitions[i], true
		}
	}
	return Transition{}, false
}

var bigNsPerSecond = big.NewInt(1_000_000_000)

// splitNanoseconds returns floor(ns / 10^9) and the non-negative remainder.
func splitNanoseconds(ns *big.Int) (sec, rem int64) {
	q, r := new(big.Int).DivMod(ns, bigNsPerSecond, new(big.Int))
	return q.Int64(), r.Int64()
}

func (z *Zone) OffsetNanosecondsFor(instant temporal.Instant) (int64, error) {
	sec, _ := splitNanoseconds(instant.EpochNanoseconds())
	return int64(z.Lookup(sec).Offset) * 1_000_000_000, nil
}

// PossibleInstantsFor tries every offset in effect within one day of dateTime read as UTC and keeps the
// candidates at which that offset actually applies.
func (z *Zone) PossibleInstantsFor(dateTime temporal.PlainDateTime) ([]temporal.Instant, error) {
	sec, rem := splitNanoseconds(dateTime.UTCEpochNanoseconds())
	offsets := []int32{z.Lookup(sec - secondsPerDay).Offset}
	for _, t := range z.between(sec-secondsPerDay, sec+secondsPerDay) {
		if !slices.Contains(offsets, t.Type.Offset) {
			offsets = append(offsets, t.Type.Offset)
		}
	}
	var possible []temporal.Instant
	for _, offset := range offsets {
		candidate := sec - int64(offset)
		if z.Lookup(candidate).Offset != offset {
			continue
		}
		ns := new(big.Int).Mul(big.NewInt(candidate), bigNsPerSecond)
		instant, err := temporal.NewInstant(ns.Add(ns, big.NewInt(rem)))
		if err != nil {
			return nil, fmt.Errorf("%v in %s: %w", dateTime, z.name, temporal.ErrRange)
		}
		possible = append(possible, instant)
	}
	slices.SortFunc(possible, temporal.Instant.Compare)
	return possible, nil
}
