package temporal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ngrash/go-temporal/internal/mocks"
	"github.com/ngrash/go-temporal/temporal"
)

func TestZonedDateTimeAddCallsCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	calendar := mocks.NewMockCalendar(ctrl)
	calendar.EXPECT().ID().Return("mock").AnyTimes()

	added, err := temporal.NewPlainDate(2020, 2, 29, calendar)
	require.NoError(t, err)
	oneMonth := mustDuration(t, temporal.DurationFields{Months: 1})
	options := temporal.AddOptions{Overflow: temporal.OverflowReject}
	calendar.EXPECT().DateAdd(gomock.Any(), oneMonth, options).Return(added, nil)

	// 2020-01-31T06:00Z
	z := zoned(t, seconds(1580450400), temporal.UTC, calendar)
	got, err := z.Add(oneMonth, options)
	require.NoError(t, err)
	// 2020-02-29T06:00Z
	require.True(t, got.Instant().Equal(seconds(1582956000)), "Add() = %v", got)
}

func TestZonedDateTimeAddCalendarError(t *testing.T) {
	ctrl := gomock.NewController(t)
	calendar := mocks.NewMockCalendar(ctrl)
	calendar.EXPECT().ID().Return("mock").AnyTimes()

	errBroken := errors.New("broken calendar")
	calendar.EXPECT().DateAdd(gomock.Any(), gomock.Any(), gomock.Any()).Return(temporal.PlainDate{}, errBroken)

	z := zoned(t, seconds(0), temporal.UTC, calendar)
	_, err := z.Add(mustDuration(t, temporal.DurationFields{Years: 1}), temporal.AddOptions{})
	require.ErrorIs(t, err, errBroken)
}

func TestDaysOnlySkipCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	calendar := mocks.NewMockCalendar(ctrl)
	calendar.EXPECT().ID().Return("mock").AnyTimes()
	// No DateAdd or DateUntil expectations: any call fails the test.

	z := zoned(t, seconds(0), temporal.UTC, calendar)
	got, err := z.Add(mustDuration(t, temporal.DurationFields{Days: 2, Hours: 1}), temporal.AddOptions{})
	require.NoError(t, err)
	require.True(t, got.Instant().Equal(seconds(2*86400+3600)), "Add() = %v", got)

	d, err := z.Until(got, temporal.DifferenceOptions{LargestUnit: temporal.UnitHour})
	require.NoError(t, err)
	require.Equal(t, temporal.DurationFields{Hours: 49}, d.Fields())
}

func TestMockTimeZoneContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	tz := mocks.NewMockTimeZone(ctrl)
	tz.EXPECT().ID().Return("Mock/Zone").AnyTimes()
	tz.EXPECT().OffsetNanosecondsFor(gomock.Any()).Return(dayNs, nil)

	_, err := temporal.GetPlainDateTimeFor(tz, seconds(0), nil)
	require.ErrorIs(t, err, temporal.ErrContractViolation)
}

func TestMockTimeZoneError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tz := mocks.NewMockTimeZone(ctrl)
	tz.EXPECT().ID().Return("Mock/Zone").AnyTimes()

	errUnavailable := errors.New("zone data unavailable")
	tz.EXPECT().PossibleInstantsFor(gomock.Any()).Return(nil, errUnavailable)

	_, err := temporal.GetInstantFor(tz, dateTime(t, 2000, 1, 1, 0, 0), temporal.DisambiguationCompatible)
	require.ErrorIs(t, err, errUnavailable)
}

func TestPlainDateUntilDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	calendar := mocks.NewMockCalendar(ctrl)
	calendar.EXPECT().ID().Return("mock").AnyTimes()

	one, err := temporal.NewPlainDate(2000, 1, 1, calendar)
	require.NoError(t, err)
	two, err := temporal.NewPlainDate(2000, 3, 1, calendar)
	require.NoError(t, err)
	want := mustDuration(t, temporal.DurationFields{Months: 2})
	calendar.EXPECT().DateUntil(one, two, temporal.UnitMonth).Return(want, nil)

	got, err := one.Until(two, temporal.UnitMonth)
	require.NoError(t, err)
	require.True(t, got.Equal(want), "Until() = %v", got)
}

func TestWithCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	calendar := mocks.NewMockCalendar(ctrl)
	calendar.EXPECT().ID().Return("mock").AnyTimes()

	iso := zoned(t, seconds(0), temporal.UTC, nil)
	other := iso.WithCalendar(calendar)
	require.Equal(t, "mock", other.Calendar().ID())
	require.True(t, other.Instant().Equal(iso.Instant()))

	_, err := iso.Until(other, temporal.DifferenceOptions{LargestUnit: temporal.UnitDay})
	require.ErrorIs(t, err, temporal.ErrRange)

	back := other.WithCalendar(nil)
	require.Equal(t, temporal.ISO8601Calendar, back.Calendar())
	d, err := iso.Until(back, temporal.DifferenceOptions{LargestUnit: temporal.UnitDay})
	require.NoError(t, err)
	require.True(t, d.IsZero(), "Until() = %v", d)
}
