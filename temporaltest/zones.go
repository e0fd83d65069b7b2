package temporaltest

import (
	"math/big"
	"slices"

	"github.com/ngrash/go-temporal/temporal"
)

// Transition is a change of UTC offset taking effect at an instant.
type Transition struct {
	At     temporal.Instant
	Offset int64
}

// NewTransitionTimeZone returns a time zone with initialOffset before the first transition. Transitions must be
// in ascending order.
func NewTransitionTimeZone(id string, initialOffset int64, transitions ...Transition) temporal.TimeZone {
	return &transitionZone{id: id, initial: initialOffset, transitions: transitions}
}

// OneShiftTimeZone returns a time zone whose offset is zero before shift and shiftNanoseconds from then on.
func OneShiftTimeZone(shift temporal.Instant, shiftNanoseconds int64) temporal.TimeZone {
	return NewTransitionTimeZone("Custom/One_Shift", 0, Transition{At: shift, Offset: shiftNanoseconds})
}

// SpringForwardFallBackTimeZone returns a time zone with offset -08:00 that observes -07:00 from
// 2000-04-02T02:00 to 2000-10-29T02:00 wall-clock time. 2000-04-02 lasts 23 hours and 2000-10-29 lasts 25.
func SpringForwardFallBackTimeZone() temporal.TimeZone {
	const hour = int64(3_600_000_000_000)
	return NewTransitionTimeZone("Custom/Spring_Fall", -8*hour,
		Transition{At: seconds(954669600), Offset: -7 * hour},
		Transition{At: seconds(972810000), Offset: -8 * hour},
	)
}

func seconds(s int64) temporal.Instant {
	return temporal.InstantFromEpochNanoseconds(s * 1_000_000_000)
}

type transitionZone struct {
	id          string
	initial     int64
	transitions []Transition
}

func (z *transitionZone) ID() string { return z.id }

func (z *transitionZone) offsetAt(ns *big.Int) int64 {
	offset := z.initial
	for _, t := range z.transitions {
		if ns.Cmp(t.At.EpochNanoseconds()) < 0 {
			break
		}
		offset = t.Offset
	}
	return offset
}

func (z *transitionZone) OffsetNanosecondsFor(instant temporal.Instant) (int64, error) {
	return z.offsetAt(instant.EpochNanoseconds()), nil
}

// PossibleInstantsFor tries every offset the zone ever uses and keeps the candidates at which that offset is
// actually in effect.
func (z *transitionZone) PossibleInstantsFor(dateTime temporal.PlainDateTime) ([]temporal.Instant, error) {
	offsets := []int64{z.initial}
	for _, t := range z.transitions {
		if !slices.Contains(offsets, t.Offset) {
			offsets = append(offsets, t.Offset)
		}
	}
	utc := dateTime.UTCEpochNanoseconds()
	var possible []temporal.Instant
	for _, offset := range offsets {
		candidate := new(big.Int).Sub(utc, big.NewInt(offset))
		if z.offsetAt(candidate) != offset {
			continue
		}
		instant, err := temporal.NewInstant(candidate)
		if err != nil {
			return nil, err
		}
		possible = append(possible, instant)
	}
	slices.SortFunc(possible, temporal.Instant.Compare)
	return possible, nil
}
