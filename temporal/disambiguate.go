package temporal

import (
	"fmt"
	"math/big"
)

// GetInstantFor resolves the wall-clock time dateTime in timeZone to a single instant.
//
// In a fold, DisambiguationEarlier and DisambiguationCompatible pick the first candidate and
// DisambiguationLater the second. In a gap, the wall-clock time is moved by the size of the gap: backwards for
// DisambiguationEarlier, forwards for DisambiguationLater and DisambiguationCompatible. DisambiguationReject
// fails with ErrResolution in both cases.
func GetInstantFor(timeZone TimeZone, dateTime PlainDateTime, disambiguation Disambiguation) (Instant, error) {
	possible, err := possibleInstantsFor(timeZone, dateTime)
	if err != nil {
		return Instant{}, err
	}
	return disambiguatePossibleInstants(possible, timeZone, dateTime, disambiguation)
}

func disambiguatePossibleInstants(possible []Instant, timeZone TimeZone, dateTime PlainDateTime, disambiguation Disambiguation) (Instant, error) {
	n := len(possible)
	if n == 1 {
		return possible[0], nil
	}
	if n > 1 {
		switch disambiguation {
		case DisambiguationCompatible, DisambiguationEarlier:
			return possible[0], nil
		case DisambiguationLater:
			return possible[n-1], nil
		}
		return Instant{}, fmt.Errorf("%v is ambiguous in %s: %w", dateTime, timeZone.ID(), ErrResolution)
	}

	if disambiguation == DisambiguationReject {
		return Instant{}, fmt.Errorf("%v does not exist in %s: %w", dateTime, timeZone.ID(), ErrResolution)
	}

	utc := dateTime.UTCEpochNanoseconds()
	dayBefore, err := NewInstant(new(big.Int).Sub(utc, bigNsPerDay))
	if err != nil {
		return Instant{}, fmt.Errorf("%v: day before: %w", dateTime, ErrRange)
	}
	offsetBefore, err := offsetNanosecondsFor(timeZone, dayBefore)
	if err != nil {
		return Instant{}, err
	}
	dayAfter, err := NewInstant(new(big.Int).Add(utc, bigNsPerDay))
	if err != nil {
		return Instant{}, fmt.Errorf("%v: day after: %w", dateTime, ErrRange)
	}
	offsetAfter, err := offsetNanosecondsFor(timeZone, dayAfter)
	if err != nil {
		return Instant{}, err
	}
	shift := offsetAfter - offsetBefore

	if disambiguation == DisambiguationEarlier {
		earlier, err := dateTime.addNanoseconds(-shift)
		if err != nil {
			return Instant{}, err
		}
		possible, err := possibleInstantsFor(timeZone, earlier)
		if err != nil {
			return Instant{}, err
		}
		if len(possible) == 0 {
			return Instant{}, fmt.Errorf("%v does not exist in %s: %w", earlier, timeZone.ID(), ErrResolution)
		}
		return possible[0], nil
	}

	later, err := dateTime.addNanoseconds(shift)
	if err != nil {
		return Instant{}, err
	}
	possible, err = possibleInstantsFor(timeZone, later)
	if err != nil {
		return Instant{}, err
	}
	if len(possible) == 0 {
		return Instant{}, fmt.Errorf("%v does not exist in %s: %w", later, timeZone.ID(), ErrResolution)
	}
	return possible[len(possible)-1], nil
}
