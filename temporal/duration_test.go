package temporal_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-temporal/temporal"
)

func TestNewDuration(t *testing.T) {
	cases := []struct {
		name    string
		fields  temporal.DurationFields
		wantErr error
	}{
		{"zero", temporal.DurationFields{}, nil},
		{"all positive", temporal.DurationFields{Years: 1, Months: 2, Weeks: 3, Days: 4, Hours: 5, Nanoseconds: 6}, nil},
		{"all negative", temporal.DurationFields{Years: -1, Seconds: -2}, nil},
		{"mixed signs", temporal.DurationFields{Years: 1, Nanoseconds: -1}, temporal.ErrConstruction},
		{"years too large", temporal.DurationFields{Years: 1 << 32}, temporal.ErrConstruction},
		{"largest weeks", temporal.DurationFields{Weeks: 1<<32 - 1}, nil},
		{"seconds at 2^53", temporal.DurationFields{Seconds: 1 << 53}, temporal.ErrConstruction},
		{"seconds below 2^53", temporal.DurationFields{Seconds: 1<<53 - 1, Nanoseconds: 999_999_999}, nil},
		{"days and seconds add up to 2^53", temporal.DurationFields{Days: 1, Seconds: 1<<53 - 86_400}, temporal.ErrConstruction},
		{"smallest nanoseconds", temporal.DurationFields{Nanoseconds: math.MinInt64}, temporal.ErrConstruction},
		{"smallest microseconds", temporal.DurationFields{Microseconds: math.MinInt64}, temporal.ErrConstruction},
		{"largest nanoseconds", temporal.DurationFields{Nanoseconds: math.MaxInt64}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := temporal.NewDuration(c.fields)
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(c.fields, d.Fields()); diff != "" {
				t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDurationSign(t *testing.T) {
	d := mustDuration(t, temporal.DurationFields{Months: -1, Hours: -3})
	require.Equal(t, -1, d.Sign())
	require.Equal(t, 1, d.Negated().Sign())
	require.True(t, d.Abs().Equal(d.Negated()))
	require.True(t, temporal.Duration{}.IsZero())
}

func TestDurationNegatedAtLimits(t *testing.T) {
	for _, fields := range []temporal.DurationFields{
		{Nanoseconds: math.MaxInt64},
		{Nanoseconds: -math.MaxInt64},
		{Microseconds: -math.MaxInt64, Nanoseconds: -math.MaxInt64},
	} {
		d := mustDuration(t, fields)
		n := d.Negated()
		require.Equal(t, -d.Sign(), n.Sign(), "Negated(%+v).Sign()", fields)
		again, err := temporal.NewDuration(n.Fields())
		require.NoError(t, err, "NewDuration(Negated(%+v))", fields)
		require.True(t, again.Negated().Equal(d), "Negated twice(%+v) = %v", fields, again.Negated())
	}

	// 2000-01-01T00:00Z minus -(2^63-1) ns is about 292 years later.
	z := zoned(t, seconds(946684800), temporal.UTC, nil)
	minus, err := z.Subtract(mustDuration(t, temporal.DurationFields{Nanoseconds: -math.MaxInt64}), temporal.AddOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, minus.Instant().Compare(z.Instant()), "Subtract() = %v", minus)
}

func TestBalanceTimeDuration(t *testing.T) {
	ns := func(n int64) temporal.NormalizedTimeDuration {
		d, err := temporal.NewNormalizedTimeDuration(big.NewInt(n))
		require.NoError(t, err)
		return d
	}
	const (
		hour = int64(3_600_000_000_000)
		day  = 24 * hour
	)
	cases := []struct {
		norm    temporal.NormalizedTimeDuration
		largest temporal.Unit
		want    temporal.DurationFields
	}{
		{ns(day + hour + 1), temporal.UnitDay, temporal.DurationFields{Days: 1, Hours: 1, Nanoseconds: 1}},
		{ns(day + hour + 1), temporal.UnitHour, temporal.DurationFields{Hours: 25, Nanoseconds: 1}},
		{ns(day + hour + 1), temporal.UnitYear, temporal.DurationFields{Days: 1, Hours: 1, Nanoseconds: 1}},
		{ns(-(90*60*1_000_000_000 + 1_002_003)), temporal.UnitMinute, temporal.DurationFields{Minutes: -90, Milliseconds: -1, Microseconds: -2, Nanoseconds: -3}},
		{ns(1_002_003), temporal.UnitMicrosecond, temporal.DurationFields{Microseconds: 1002, Nanoseconds: 3}},
		{ns(1_002_003), temporal.UnitNanosecond, temporal.DurationFields{Nanoseconds: 1_002_003}},
		{ns(0), temporal.UnitDay, temporal.DurationFields{}},
	}
	for _, c := range cases {
		got, err := temporal.BalanceTimeDuration(c.norm, c.largest)
		require.NoError(t, err)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("BalanceTimeDuration(%v, %v) mismatch (-want +got):\n%s", c.norm, c.largest, diff)
		}
	}
}

func TestBalanceTimeDurationOverflow(t *testing.T) {
	max := new(big.Int).Lsh(big.NewInt(1), 53)
	max.Mul(max, big.NewInt(1_000_000_000))
	max.Sub(max, big.NewInt(1))
	norm, err := temporal.NewNormalizedTimeDuration(max)
	require.NoError(t, err)

	_, err = temporal.BalanceTimeDuration(norm, temporal.UnitNanosecond)
	require.ErrorIs(t, err, temporal.ErrRange)

	_, err = temporal.BalanceTimeDuration(norm, temporal.UnitSecond)
	require.NoError(t, err)
}

func TestNormalizedTimeDurationBound(t *testing.T) {
	bound := new(big.Int).Lsh(big.NewInt(1), 53)
	bound.Mul(bound, big.NewInt(1_000_000_000))
	_, err := temporal.NewNormalizedTimeDuration(bound)
	require.ErrorIs(t, err, temporal.ErrConstruction)

	_, err = temporal.NewNormalizedTimeDuration(new(big.Int).Neg(bound))
	require.ErrorIs(t, err, temporal.ErrConstruction)

	below, err := temporal.NewNormalizedTimeDuration(new(big.Int).Sub(bound, big.NewInt(1)))
	require.NoError(t, err)
	_, err = below.Add(below)
	require.ErrorIs(t, err, temporal.ErrRange)
}

func TestDurationAddWithoutRelativeTo(t *testing.T) {
	cases := []struct {
		name     string
		one, two temporal.DurationFields
		want     temporal.DurationFields
		wantErr  error
	}{
		{
			name: "days are 24 hours",
			one:  temporal.DurationFields{Days: 1},
			two:  temporal.DurationFields{Hours: 12},
			want: temporal.DurationFields{Days: 1, Hours: 12},
		},
		{
			name: "hours stay hours",
			one:  temporal.DurationFields{Hours: 36},
			two:  temporal.DurationFields{Hours: 1},
			want: temporal.DurationFields{Hours: 37},
		},
		{
			name: "mixed signs balance",
			one:  temporal.DurationFields{Hours: 2},
			two:  temporal.DurationFields{Minutes: -30},
			want: temporal.DurationFields{Hours: 1, Minutes: 30},
		},
		{
			name:    "calendar units need an anchor",
			one:     temporal.DurationFields{Months: 1},
			two:     temporal.DurationFields{Days: 1},
			wantErr: temporal.ErrRange,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := mustDuration(t, c.one).Add(mustDuration(t, c.two), temporal.DurationArithmeticOptions{})
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, got.Fields()); diff != "" {
				t.Errorf("Add() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDurationAddRelativeToPlainDate(t *testing.T) {
	start, err := temporal.NewPlainDate(2020, 1, 31, nil)
	require.NoError(t, err)
	opts := temporal.DurationArithmeticOptions{RelativeTo: temporal.RelativeToPlainDate(start)}

	oneMonth := mustDuration(t, temporal.DurationFields{Months: 1})
	got, err := oneMonth.Add(oneMonth, opts)
	require.NoError(t, err)
	// 2020-01-31 + 1 month = 2020-02-29, + 1 month = 2020-03-29.
	if diff := cmp.Diff(temporal.DurationFields{Months: 1, Days: 29}, got.Fields()); diff != "" {
		t.Errorf("Add() mismatch (-want +got):\n%s", diff)
	}

	got, err = mustDuration(t, temporal.DurationFields{Years: 1, Hours: 20}).
		Subtract(mustDuration(t, temporal.DurationFields{Hours: -5}), opts)
	require.NoError(t, err)
	if diff := cmp.Diff(temporal.DurationFields{Years: 1, Days: 1, Hours: 1}, got.Fields()); diff != "" {
		t.Errorf("Subtract() mismatch (-want +got):\n%s", diff)
	}
}

func mustDuration(t *testing.T, f temporal.DurationFields) temporal.Duration {
	t.Helper()
	d, err := temporal.NewDuration(f)
	require.NoError(t, err)
	return d
}
