package temporal

import (
	"fmt"
	"math/big"
)

const nsPerDay = 86_400_000_000_000

var (
	bigNsPerDay = big.NewInt(nsPerDay)

	// maxInstant is 10^8 days after the epoch, 8.64 × 10^21 nanoseconds.
	maxInstant = new(big.Int).Mul(big.NewInt(100_000_000), bigNsPerDay)
	minInstant = new(big.Int).Neg(maxInstant)
)

// Instant is an exact point in time, counted in nanoseconds since 1970-01-01T00:00:00Z.
// The zero value is the epoch.
type Instant struct {
	ns *big.Int
}

// NewInstant returns the instant epochNanoseconds after the epoch. It must be within 10^8 days of the epoch.
func NewInstant(epochNanoseconds *big.Int) (Instant, error) {
	if !isValidEpochNanoseconds(epochNanoseconds) {
		return Instant{}, fmt.Errorf("epoch nanoseconds %v outside of instant range: %w", epochNanoseconds, ErrConstruction)
	}
	return Instant{ns: new(big.Int).Set(epochNanoseconds)}, nil
}

// InstantFromEpochNanoseconds returns an instant for an int64 nanosecond count, which is always in range.
func InstantFromEpochNanoseconds(ns int64) Instant {
	return Instant{ns: big.NewInt(ns)}
}

func isValidEpochNanoseconds(ns *big.Int) bool {
	return ns.Cmp(minInstant) >= 0 && ns.Cmp(maxInstant) <= 0
}

// epochNs returns the nanosecond count without copying it. Callers must not modify the result.
func (i Instant) epochNs() *big.Int {
	if i.ns == nil {
		return new(big.Int)
	}
	return i.ns
}

// EpochNanoseconds returns the number of nanoseconds since the epoch.
func (i Instant) EpochNanoseconds() *big.Int {
	return new(big.Int).Set(i.epochNs())
}

// Compare returns -1, 0 or +1 depending on whether i is before, equal to or after o.
func (i Instant) Compare(o Instant) int {
	return i.epochNs().Cmp(o.epochNs())
}

// Equal reports whether i and o are the same instant.
func (i Instant) Equal(o Instant) bool {
	return i.Compare(o) == 0
}

// Add returns i shifted by d. The result must be a valid instant.
func (i Instant) Add(d NormalizedTimeDuration) (Instant, error) {
	ns := new(big.Int).Add(i.epochNs(), d.nanoseconds())
	if !isValidEpochNanoseconds(ns) {
		return Instant{}, fmt.Errorf("%v + %v ns outside of instant range: %w", i, d, ErrRange)
	}
	return Instant{ns: ns}, nil
}

// Until returns the exact time from i to o in units no larger than largestUnit, which must be a time unit or
// UnitAuto (seconds).
func (i Instant) Until(o Instant, largestUnit Unit) (Duration, error) {
	return differenceInstant(i, o, largestUnit)
}

// Since returns the exact time from o to i.
func (i Instant) Since(o Instant, largestUnit Unit) (Duration, error) {
	d, err := differenceInstant(i, o, largestUnit)
	if err != nil {
		return Duration{}, err
	}
	return d.Negated(), nil
}

func (i Instant) String() string {
	return i.epochNs().String() + "ns"
}

// until returns o − i as a normalized duration. The difference of two valid instants is always in range.
func (i Instant) until(o Instant) NormalizedTimeDuration {
	return NormalizedTimeDuration{ns: new(big.Int).Sub(o.epochNs(), i.epochNs())}
}

func differenceInstant(one, two Instant, largestUnit Unit) (Duration, error) {
	if largestUnit == UnitAuto {
		largestUnit = UnitSecond
	}
	if largestUnit.isDateUnit() {
		return Duration{}, fmt.Errorf("largest unit %v not allowed for exact time: %w", largestUnit, ErrRange)
	}
	fields, err := BalanceTimeDuration(one.until(two), largestUnit)
	if err != nil {
		return Duration{}, err
	}
	return NewDuration(fields)
}
