package temporal

import (
	"fmt"
	"math/big"
)

var (
	// maxTimeDuration is the exclusive bound 2^53 × 10^9 nanoseconds.
	maxTimeDuration = new(big.Int).Mul(new(big.Int).Lsh(big.NewInt(1), 53), big.NewInt(1_000_000_000))

	// maxSafeInteger is 2^53, the exclusive bound on a day length.
	maxSafeInteger = new(big.Int).Lsh(big.NewInt(1), 53)
)

// NormalizedTimeDuration is an exact span of time in nanoseconds, with |ns| < 2^53 × 10^9. It never carries
// calendar units. The zero value is zero.
type NormalizedTimeDuration struct {
	ns *big.Int
}

// NewNormalizedTimeDuration returns a duration of ns nanoseconds.
func NewNormalizedTimeDuration(ns *big.Int) (NormalizedTimeDuration, error) {
	if !isValidTimeDuration(ns) {
		return NormalizedTimeDuration{}, fmt.Errorf("%v ns outside of time duration range: %w", ns, ErrConstruction)
	}
	return NormalizedTimeDuration{ns: new(big.Int).Set(ns)}, nil
}

// NormalizeTimeDuration flattens clock fields into nanoseconds.
func NormalizeTimeDuration(hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (NormalizedTimeDuration, error) {
	ns := big.NewInt(nanoseconds)
	for _, part := range []struct {
		n    int64
		unit Unit
	}{
		{hours, UnitHour},
		{minutes, UnitMinute},
		{seconds, UnitSecond},
		{milliseconds, UnitMillisecond},
		{microseconds, UnitMicrosecond},
	} {
		ns.Add(ns, new(big.Int).Mul(big.NewInt(part.n), big.NewInt(part.unit.nanoseconds())))
	}
	if !isValidTimeDuration(ns) {
		return NormalizedTimeDuration{}, fmt.Errorf("%v ns outside of time duration range: %w", ns, ErrRange)
	}
	return NormalizedTimeDuration{ns: ns}, nil
}

func isValidTimeDuration(ns *big.Int) bool {
	return new(big.Int).Abs(ns).Cmp(maxTimeDuration) < 0
}

func (d NormalizedTimeDuration) nanoseconds() *big.Int {
	if d.ns == nil {
		return new(big.Int)
	}
	return d.ns
}

// Nanoseconds returns the length of d.
func (d NormalizedTimeDuration) Nanoseconds() *big.Int {
	return new(big.Int).Set(d.nanoseconds())
}

// Sign returns -1, 0 or +1.
func (d NormalizedTimeDuration) Sign() int {
	return d.nanoseconds().Sign()
}

// IsZero reports whether d is zero.
func (d NormalizedTimeDuration) IsZero() bool {
	return d.Sign() == 0
}

// Cmp compares d and o.
func (d NormalizedTimeDuration) Cmp(o NormalizedTimeDuration) int {
	return d.nanoseconds().Cmp(o.nanoseconds())
}

// Equal reports whether d and o have the same length.
func (d NormalizedTimeDuration) Equal(o NormalizedTimeDuration) bool {
	return d.Cmp(o) == 0
}

// Abs returns |d|.
func (d NormalizedTimeDuration) Abs() NormalizedTimeDuration {
	return NormalizedTimeDuration{ns: new(big.Int).Abs(d.nanoseconds())}
}

// Negated returns −d.
func (d NormalizedTimeDuration) Negated() NormalizedTimeDuration {
	return NormalizedTimeDuration{ns: new(big.Int).Neg(d.nanoseconds())}
}

// Add returns d + o.
func (d NormalizedTimeDuration) Add(o NormalizedTimeDuration) (NormalizedTimeDuration, error) {
	return checkedTimeDuration(new(big.Int).Add(d.nanoseconds(), o.nanoseconds()))
}

// Sub returns d − o.
func (d NormalizedTimeDuration) Sub(o NormalizedTimeDuration) (NormalizedTimeDuration, error) {
	return checkedTimeDuration(new(big.Int).Sub(d.nanoseconds(), o.nanoseconds()))
}

// AddDays returns d plus days of exactly 24 hours.
func (d NormalizedTimeDuration) AddDays(days int64) (NormalizedTimeDuration, error) {
	ns := new(big.Int).Mul(big.NewInt(days), bigNsPerDay)
	return checkedTimeDuration(ns.Add(ns, d.nanoseconds()))
}

func (d NormalizedTimeDuration) String() string {
	return d.nanoseconds().String() + "ns"
}

func checkedTimeDuration(ns *big.Int) (NormalizedTimeDuration, error) {
	if !isValidTimeDuration(ns) {
		return NormalizedTimeDuration{}, fmt.Errorf("%v ns outside of time duration range: %w", ns, ErrRange)
	}
	return NormalizedTimeDuration{ns: ns}, nil
}
