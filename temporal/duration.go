package temporal

import (
	"fmt"
	"math"
	"math/big"
)

// DurationFields are the ten parts of a Duration.
type DurationFields struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

func (f DurationFields) values() [10]int64 {
	return [10]int64{
		f.Years, f.Months, f.Weeks, f.Days,
		f.Hours, f.Minutes, f.Seconds, f.Milliseconds, f.Microseconds, f.Nanoseconds,
	}
}

// sign returns the sign shared by all non-zero fields, or an error if they disagree.
func (f DurationFields) sign() (int, error) {
	s := 0
	for _, v := range f.values() {
		vs := 0
		switch {
		case v < 0:
			vs = -1
		case v > 0:
			vs = 1
		}
		if vs == 0 {
			continue
		}
		if s != 0 && vs != s {
			return 0, fmt.Errorf("mixed signs in %+v: %w", f, ErrConstruction)
		}
		s = vs
	}
	return s, nil
}

// maxCalendarField is the exclusive bound 2^32 on years, months and weeks.
const maxCalendarField = 1 << 32

// Duration is a span of calendar and clock units. All non-zero fields have the same sign. The zero value is
// a zero duration.
type Duration struct {
	f    DurationFields
	sign int
}

// NewDuration validates fields and returns the duration they describe. Mixed signs, a field of math.MinInt64,
// |years|, |months| or |weeks| of 2^32 or more, or days and clock fields adding up to 2^53 seconds or more are
// ErrConstruction.
func NewDuration(fields DurationFields) (Duration, error) {
	s, err := fields.sign()
	if err != nil {
		return Duration{}, err
	}
	for _, v := range fields.values() {
		if v == math.MinInt64 {
			return Duration{}, fmt.Errorf("field %d of %+v cannot be negated: %w", v, fields, ErrConstruction)
		}
	}
	for _, v := range []int64{fields.Years, fields.Months, fields.Weeks} {
		if v >= maxCalendarField || v <= -maxCalendarField {
			return Duration{}, fmt.Errorf("calendar field %d outside of duration range: %w", v, ErrConstruction)
		}
	}
	total, err := NormalizeTimeDuration(fields.Hours, fields.Minutes, fields.Seconds,
		fields.Milliseconds, fields.Microseconds, fields.Nanoseconds)
	if err == nil {
		_, err = total.AddDays(fields.Days)
	}
	if err != nil {
		return Duration{}, fmt.Errorf("days and time fields of %+v outside of duration range: %w", fields, ErrConstruction)
	}
	return Duration{f: fields, sign: s}, nil
}

// Fields returns the parts of d.
func (d Duration) Fields() DurationFields { return d.f }

func (d Duration) Years() int64        { return d.f.Years }
func (d Duration) Months() int64       { return d.f.Months }
func (d Duration) Weeks() int64        { return d.f.Weeks }
func (d Duration) Days() int64         { return d.f.Days }
func (d Duration) Hours() int64        { return d.f.Hours }
func (d Duration) Minutes() int64      { return d.f.Minutes }
func (d Duration) Seconds() int64      { return d.f.Seconds }
func (d Duration) Milliseconds() int64 { return d.f.Milliseconds }
func (d Duration) Microseconds() int64 { return d.f.Microseconds }
func (d Duration) Nanoseconds() int64  { return d.f.Nanoseconds }

// Sign returns -1, 0 or +1.
func (d Duration) Sign() int { return d.sign }

// IsZero reports whether all fields are zero.
func (d Duration) IsZero() bool { return d.sign == 0 }

// Equal reports whether d and o have identical fields.
func (d Duration) Equal(o Duration) bool { return d.f == o.f }

// Negated returns d with every field negated. NewDuration rejects math.MinInt64, so no field overflows.
func (d Duration) Negated() Duration {
	v := d.f.values()
	for i := range v {
		v[i] = -v[i]
	}
	return Duration{f: fieldsFromValues(v), sign: -d.sign}
}

// Abs returns d with every field non-negative.
func (d Duration) Abs() Duration {
	if d.sign < 0 {
		return d.Negated()
	}
	return d
}

func (d Duration) String() string {
	return fmt.Sprintf("%+v", d.f)
}

func fieldsFromValues(v [10]int64) DurationFields {
	return DurationFields{v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8], v[9]}
}

// dateDuration returns the years, months, weeks and days of d.
func (d Duration) dateDuration() Duration {
	f := DurationFields{Years: d.f.Years, Months: d.f.Months, Weeks: d.f.Weeks, Days: d.f.Days}
	s := 0
	if f != (DurationFields{}) {
		s = d.sign
	}
	return Duration{f: f, sign: s}
}

// calendarDuration returns the years, months and weeks of d.
func (d Duration) calendarDuration() Duration {
	f := DurationFields{Years: d.f.Years, Months: d.f.Months, Weeks: d.f.Weeks}
	s := 0
	if f != (DurationFields{}) {
		s = d.sign
	}
	return Duration{f: f, sign: s}
}

// timeDuration flattens the clock fields of d. A valid duration's clock fields are always in range.
func (d Duration) timeDuration() NormalizedTimeDuration {
	norm, err := NormalizeTimeDuration(d.f.Hours, d.f.Minutes, d.f.Seconds,
		d.f.Milliseconds, d.f.Microseconds, d.f.Nanoseconds)
	if err != nil {
		panic(fmt.Sprintf("temporal: clock fields of validated duration %v out of range", d))
	}
	return norm
}

// defaultLargestUnit returns the largest unit with a non-zero field, or UnitNanosecond.
func (d Duration) defaultLargestUnit() Unit {
	for i, v := range d.f.values() {
		if v != 0 {
			return UnitYear + Unit(i)
		}
	}
	return UnitNanosecond
}

// BalanceTimeDuration splits norm into days (for a date largest unit) and clock fields no larger than
// largestUnit. Days are 24 hours.
func BalanceTimeDuration(norm NormalizedTimeDuration, largestUnit Unit) (DurationFields, error) {
	if largestUnit == UnitAuto {
		largestUnit = UnitNanosecond
	}
	if largestUnit.isDateUnit() {
		largestUnit = UnitDay
	}

	// parts is indexed from UnitDay to UnitNanosecond.
	var parts [7]*big.Int
	carry := new(big.Int).Abs(norm.nanoseconds())
	for _, step := range []struct {
		unit Unit
		size int64
	}{
		{UnitMicrosecond, 1000},
		{UnitMillisecond, 1000},
		{UnitSecond, 1000},
		{UnitMinute, 60},
		{UnitHour, 60},
		{UnitDay, 24},
	} {
		if step.unit < largestUnit {
			break
		}
		q, r := new(big.Int).QuoRem(carry, big.NewInt(step.size), new(big.Int))
		parts[step.unit+1-UnitDay] = r
		carry = q
	}
	parts[largestUnit-UnitDay] = carry

	var out [7]int64
	for i, p := range parts {
		if p == nil {
			continue
		}
		if !p.IsInt64() {
			return DurationFields{}, fmt.Errorf("%v %v outside of duration range: %w", p, UnitDay+Unit(i), ErrRange)
		}
		out[i] = p.Int64()
		if norm.Sign() < 0 {
			out[i] = -out[i]
		}
	}
	return DurationFields{
		Days:         out[0],
		Hours:        out[1],
		Minutes:      out[2],
		Seconds:      out[3],
		Milliseconds: out[4],
		Microseconds: out[5],
		Nanoseconds:  out[6],
	}, nil
}
