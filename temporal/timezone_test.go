package temporal_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/go-temporal/temporal"
	"github.com/ngrash/go-temporal/temporaltest"
)

const (
	hourNs = int64(3_600_000_000_000)
	dayNs  = 24 * hourNs
)

func seconds(s int64) temporal.Instant {
	return temporal.InstantFromEpochNanoseconds(s * 1_000_000_000)
}

func dateTime(t *testing.T, year, month, day, hour, minute int) temporal.PlainDateTime {
	t.Helper()
	dt, err := temporal.NewPlainDateTime(year, month, day, temporal.PlainTime{Hour: hour, Minute: minute}, nil)
	require.NoError(t, err)
	return dt
}

func TestGetInstantFor(t *testing.T) {
	tz := temporaltest.SpringForwardFallBackTimeZone()
	gap := dateTime(t, 2000, 4, 2, 2, 30)
	fold := dateTime(t, 2000, 10, 29, 1, 30)
	plain := dateTime(t, 2000, 1, 1, 0, 0)

	cases := []struct {
		name           string
		dateTime       temporal.PlainDateTime
		disambiguation temporal.Disambiguation
		want           temporal.Instant
		wantErr        error
	}{
		{"unambiguous", plain, temporal.DisambiguationReject, seconds(946713600), nil},

		{"gap compatible", gap, temporal.DisambiguationCompatible, seconds(954671400), nil},
		{"gap later", gap, temporal.DisambiguationLater, seconds(954671400), nil},
		{"gap earlier", gap, temporal.DisambiguationEarlier, seconds(954667800), nil},
		{"gap reject", gap, temporal.DisambiguationReject, temporal.Instant{}, temporal.ErrResolution},

		{"fold compatible", fold, temporal.DisambiguationCompatible, seconds(972808200), nil},
		{"fold earlier", fold, temporal.DisambiguationEarlier, seconds(972808200), nil},
		{"fold later", fold, temporal.DisambiguationLater, seconds(972811800), nil},
		{"fold reject", fold, temporal.DisambiguationReject, temporal.Instant{}, temporal.ErrResolution},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := temporal.GetInstantFor(tz, c.dateTime, c.disambiguation)
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("GetInstantFor(%v, %v) mismatch (-want +got):\n%s", c.dateTime, c.disambiguation, diff)
			}
		})
	}
}

func TestGetInstantForGapQueriesNeighbouringOffsets(t *testing.T) {
	tz := temporaltest.NewTimeZone(temporaltest.SpringForwardFallBackTimeZone())
	gap := dateTime(t, 2000, 4, 2, 2, 30)

	_, err := temporal.GetInstantFor(tz, gap, temporal.DisambiguationCompatible)
	require.NoError(t, err)

	utc := gap.UTCEpochNanoseconds()
	want := []temporal.Instant{
		mustInstant(t, new(big.Int).Sub(utc, big.NewInt(dayNs))),
		mustInstant(t, new(big.Int).Add(utc, big.NewInt(dayNs))),
	}
	if diff := cmp.Diff(want, tz.OffsetCalls()); diff != "" {
		t.Errorf("OffsetCalls() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]temporal.PlainDateTime{gap, dateTime(t, 2000, 4, 2, 3, 30)}, tz.PossibleInstantsCalls()); diff != "" {
		t.Errorf("PossibleInstantsCalls() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetInstantForEmptyRequery(t *testing.T) {
	tz := temporaltest.NewTimeZone(temporal.UTC,
		temporaltest.WithPossibleInstants(
			temporaltest.Return[[]temporal.Instant](nil),
			temporaltest.Return[[]temporal.Instant](nil),
		),
		temporaltest.WithOffsets(
			temporaltest.Return(int64(0)),
			temporaltest.Return(hourNs),
		),
	)
	_, err := temporal.GetInstantFor(tz, dateTime(t, 2000, 1, 1, 0, 0), temporal.DisambiguationCompatible)
	require.ErrorIs(t, err, temporal.ErrResolution)
}

func TestTimeZoneContract(t *testing.T) {
	epoch := temporal.InstantFromEpochNanoseconds(0)
	cases := []struct {
		name string
		tz   *temporaltest.TimeZone
		call func(temporal.TimeZone) error
	}{
		{
			name: "offset of a whole day",
			tz:   temporaltest.NewTimeZone(temporal.UTC, temporaltest.WithOffsets(temporaltest.Return(dayNs))),
			call: func(tz temporal.TimeZone) error {
				_, err := temporal.GetPlainDateTimeFor(tz, epoch, nil)
				return err
			},
		},
		{
			name: "negative offset of a whole day",
			tz:   temporaltest.NewTimeZone(temporal.UTC, temporaltest.WithOffsets(temporaltest.Return(-dayNs))),
			call: func(tz temporal.TimeZone) error {
				_, err := temporal.GetPlainDateTimeFor(tz, epoch, nil)
				return err
			},
		},
		{
			name: "three candidates",
			tz: temporaltest.NewTimeZone(temporal.UTC, temporaltest.WithPossibleInstants(
				temporaltest.Return([]temporal.Instant{seconds(0), seconds(1), seconds(2)}))),
			call: func(tz temporal.TimeZone) error {
				_, err := temporal.GetInstantFor(tz, dateTime(t, 1970, 1, 1, 0, 0), temporal.DisambiguationCompatible)
				return err
			},
		},
		{
			name: "candidates out of order",
			tz: temporaltest.NewTimeZone(temporal.UTC, temporaltest.WithPossibleInstants(
				temporaltest.Return([]temporal.Instant{seconds(1), seconds(0)}))),
			call: func(tz temporal.TimeZone) error {
				_, err := temporal.GetInstantFor(tz, dateTime(t, 1970, 1, 1, 0, 0), temporal.DisambiguationCompatible)
				return err
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.ErrorIs(t, c.call(c.tz), temporal.ErrContractViolation)
		})
	}
}

func TestFixedOffsetTimeZone(t *testing.T) {
	cases := []struct {
		offset int64
		wantID string
	}{
		{0, "+00:00"},
		{5*hourNs + 30*60_000_000_000, "+05:30"},
		{-8 * hourNs, "-08:00"},
		{hourNs + 1_000_000_000, "+01:00:01"},
		{-(hourNs + 1), "-01:00:00.000000001"},
	}
	for _, c := range cases {
		tz, err := temporal.FixedOffsetTimeZone(c.offset)
		require.NoError(t, err)
		require.Equal(t, c.wantID, tz.ID())
	}

	_, err := temporal.FixedOffsetTimeZone(dayNs)
	require.ErrorIs(t, err, temporal.ErrRange)
}

func TestGetPlainDateTimeFor(t *testing.T) {
	tz, err := temporal.FixedOffsetTimeZone(-8 * hourNs)
	require.NoError(t, err)
	// 2000-01-01T00:00Z is 1999-12-31T16:00-08:00.
	got, err := temporal.GetPlainDateTimeFor(tz, seconds(946684800), nil)
	require.NoError(t, err)
	want := dateTime(t, 1999, 12, 31, 16, 0)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetPlainDateTimeFor() mismatch (-want +got):\n%s", diff)
	}

	// Instants before the epoch use floor division.
	got, err = temporal.GetPlainDateTimeFor(temporal.UTC, temporal.InstantFromEpochNanoseconds(-1), nil)
	require.NoError(t, err)
	want, err = temporal.NewPlainDateTime(1969, 12, 31, temporal.PlainTime{Hour: 23, Minute: 59, Second: 59, Millisecond: 999, Microsecond: 999, Nanosecond: 999}, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetPlainDateTimeFor() mismatch (-want +got):\n%s", diff)
	}
}

func TestInstantRange(t *testing.T) {
	limit := new(big.Int).Mul(big.NewInt(100_000_000), big.NewInt(dayNs))
	_, err := temporal.NewInstant(limit)
	require.NoError(t, err)
	_, err = temporal.NewInstant(new(big.Int).Neg(limit))
	require.NoError(t, err)
	_, err = temporal.NewInstant(new(big.Int).Add(limit, big.NewInt(1)))
	require.ErrorIs(t, err, temporal.ErrConstruction)

	last := mustInstant(t, limit)
	one, err := temporal.NormalizeTimeDuration(0, 0, 0, 0, 0, 1)
	require.NoError(t, err)
	_, err = last.Add(one)
	require.ErrorIs(t, err, temporal.ErrRange)
}

func TestInstantUntil(t *testing.T) {
	a := temporal.InstantFromEpochNanoseconds(0)
	b := temporal.InstantFromEpochNanoseconds(hourNs + 2*60_000_000_000 + 3_000_000_001)

	got, err := a.Until(b, temporal.UnitHour)
	require.NoError(t, err)
	if diff := cmp.Diff(temporal.DurationFields{Hours: 1, Minutes: 2, Seconds: 3, Nanoseconds: 1}, got.Fields()); diff != "" {
		t.Errorf("Until() mismatch (-want +got):\n%s", diff)
	}

	got, err = a.Since(b, temporal.UnitAuto)
	require.NoError(t, err)
	if diff := cmp.Diff(temporal.DurationFields{Seconds: -3723, Nanoseconds: -1}, got.Fields()); diff != "" {
		t.Errorf("Since() mismatch (-want +got):\n%s", diff)
	}

	_, err = a.Until(b, temporal.UnitDay)
	require.ErrorIs(t, err, temporal.ErrRange)
}

func mustInstant(t *testing.T, ns *big.Int) temporal.Instant {
	t.Helper()
	i, err := temporal.NewInstant(ns)
	require.NoError(t, err)
	return i
}
