package temporal

import (
	"fmt"
	"math/big"
)

// TimeZone maps between instants and wall-clock times. Implementations must be safe for concurrent use.
type TimeZone interface {
	// ID identifies the time zone. Values with equal IDs are interchangeable.
	ID() string

	// OffsetNanosecondsFor returns the UTC offset in effect at instant. It must be less than one day in
	// magnitude.
	OffsetNanosecondsFor(instant Instant) (int64, error)

	// PossibleInstantsFor returns the instants that have the wall-clock time dateTime, in ascending order. The
	// result has one element for an unambiguous time, two in a fold and none in a gap.
	PossibleInstantsFor(dateTime PlainDateTime) ([]Instant, error)
}

// UTC is the time zone with offset zero.
var UTC TimeZone = fixedOffset{id: "UTC"}

// FixedOffsetTimeZone returns a time zone that always has the given offset, which must be less than one day in
// magnitude. Its ID has the form ±HH:MM, with seconds and a fraction appended when they are not zero.
func FixedOffsetTimeZone(offsetNanoseconds int64) (TimeZone, error) {
	if offsetNanoseconds <= -nsPerDay || offsetNanoseconds >= nsPerDay {
		return nil, fmt.Errorf("offset %d ns: %w", offsetNanoseconds, ErrRange)
	}
	return fixedOffset{id: formatOffset(offsetNanoseconds), offset: offsetNanoseconds}, nil
}

type fixedOffset struct {
	id     string
	offset int64
}

func (z fixedOffset) ID() string { return z.id }

func (z fixedOffset) OffsetNanosecondsFor(Instant) (int64, error) {
	return z.offset, nil
}

func (z fixedOffset) PossibleInstantsFor(dt PlainDateTime) ([]Instant, error) {
	ns := dt.UTCEpochNanoseconds()
	ns.Sub(ns, big.NewInt(z.offset))
	instant, err := NewInstant(ns)
	if err != nil {
		return nil, fmt.Errorf("%v in %s: %w", dt, z.id, ErrRange)
	}
	return []Instant{instant}, nil
}

func formatOffset(ns int64) string {
	sign := '+'
	if ns < 0 {
		sign = '-'
		ns = -ns
	}
	frac := ns % 1_000_000_000
	s := ns / 1_000_000_000
	out := fmt.Sprintf("%c%02d:%02d", sign, s/3600, s/60%60)
	switch {
	case frac != 0:
		out += fmt.Sprintf(":%02d.%09d", s%60, frac)
	case s%60 != 0:
		out += fmt.Sprintf(":%02d", s%60)
	}
	return out
}

// offsetNanosecondsFor asks timeZone for its offset at instant and checks the result.
func offsetNanosecondsFor(timeZone TimeZone, instant Instant) (int64, error) {
	offset, err := timeZone.OffsetNanosecondsFor(instant)
	if err != nil {
		return 0, fmt.Errorf("time zone %s: offset at %v: %w", timeZone.ID(), instant, err)
	}
	if offset <= -nsPerDay || offset >= nsPerDay {
		return 0, fmt.Errorf("time zone %s: offset %d ns at %v is not less than one day: %w",
			timeZone.ID(), offset, instant, ErrContractViolation)
	}
	return offset, nil
}

// possibleInstantsFor asks timeZone for the candidates of dateTime and checks the result.
func possibleInstantsFor(timeZone TimeZone, dateTime PlainDateTime) ([]Instant, error) {
	possible, err := timeZone.PossibleInstantsFor(dateTime)
	if err != nil {
		return nil, fmt.Errorf("time zone %s: instants for %v: %w", timeZone.ID(), dateTime, err)
	}
	if len(possible) > 2 {
		return nil, fmt.Errorf("time zone %s: %d instants for %v: %w",
			timeZone.ID(), len(possible), dateTime, ErrContractViolation)
	}
	if len(possible) == 2 && possible[0].Compare(possible[1]) > 0 {
		return nil, fmt.Errorf("time zone %s: instants for %v out of order: %w",
			timeZone.ID(), dateTime, ErrContractViolation)
	}
	for _, p := range possible {
		if !isValidEpochNanoseconds(p.epochNs()) {
			return nil, fmt.Errorf("time zone %s: instant %v for %v: %w",
				timeZone.ID(), p, dateTime, ErrContractViolation)
		}
	}
	return possible, nil
}

// GetPlainDateTimeFor returns the wall-clock time of instant in timeZone.
func GetPlainDateTimeFor(timeZone TimeZone, instant Instant, calendar Calendar) (PlainDateTime, error) {
	offset, err := offsetNanosecondsFor(timeZone, instant)
	if err != nil {
		return PlainDateTime{}, err
	}
	ns := new(big.Int).Add(instant.epochNs(), big.NewInt(offset))
	return plainDateTimeFromUTCEpochNanoseconds(ns, calendarOrISO(calendar))
}
