// Package temporaltest provides calendars and time zones for testing code that uses package temporal.
//
// The wrappers replay a scripted sequence of results, one per call, and record the arguments of every call.
// A Skip step, or running past the end of the script, falls through to the wrapped implementation.
package temporaltest

import (
	"sync"

	"github.com/ngrash/go-temporal/temporal"
)

// Step is one scripted result.
type Step[T any] struct {
	value T
	skip  bool
}

// Return scripts v as the result of one call.
func Return[T any](v T) Step[T] {
	return Step[T]{value: v}
}

// Skip scripts a call that falls through to the wrapped implementation.
func Skip[T any]() Step[T] {
	return Step[T]{skip: true}
}

// script hands out steps in call order. It is not safe for concurrent use on its own.
type script[T any] struct {
	steps []Step[T]
	calls int
}

// next returns the scripted value for the current call and whether there was one.
func (s *script[T]) next() (T, bool) {
	i := s.calls
	s.calls++
	if i >= len(s.steps) || s.steps[i].skip {
		var zero T
		return zero, false
	}
	return s.steps[i].value, true
}

// TimeZone wraps a time zone, replaying scripted results and recording calls.
type TimeZone struct {
	base temporal.TimeZone

	mu            sync.Mutex
	offsets       script[int64]
	possible      script[[]temporal.Instant]
	offsetCalls   []temporal.Instant
	possibleCalls []temporal.PlainDateTime
}

// TimeZoneOption configures a TimeZone.
type TimeZoneOption func(*TimeZone)

// WithOffsets scripts the results of OffsetNanosecondsFor.
func WithOffsets(steps ...Step[int64]) TimeZoneOption {
	return func(z *TimeZone) { z.offsets.steps = steps }
}

// WithPossibleInstants scripts the results of PossibleInstantsFor.
func WithPossibleInstants(steps ...Step[[]temporal.Instant]) TimeZoneOption {
	return func(z *TimeZone) { z.possible.steps = steps }
}

// NewTimeZone wraps base. It reports the ID of base.
func NewTimeZone(base temporal.TimeZone, opts ...TimeZoneOption) *TimeZone {
	z := &TimeZone{base: base}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

func (z *TimeZone) ID() string {
	return z.base.ID()
}

func (z *TimeZone) OffsetNanosecondsFor(instant temporal.Instant) (int64, error) {
	z.mu.Lock()
	z.offsetCalls = append(z.offsetCalls, instant)
	v, ok := z.offsets.next()
	z.mu.Unlock()
	if ok {
		return v, nil
	}
	return z.base.OffsetNanosecondsFor(instant)
}

func (z *TimeZone) PossibleInstantsFor(dateTime temporal.PlainDateTime) ([]temporal.Instant, error) {
	z.mu.Lock()
	z.possibleCalls = append(z.possibleCalls, dateTime)
	v, ok := z.possible.next()
	z.mu.Unlock()
	if ok {
		return v, nil
	}
	return z.base.PossibleInstantsFor(dateTime)
}

// OffsetCalls returns the arguments of all OffsetNanosecondsFor calls so far.
func (z *TimeZone) OffsetCalls() []temporal.Instant {
	z.mu.Lock()
	defer z.mu.Unlock()
	return append([]temporal.Instant(nil), z.offsetCalls...)
}

// PossibleInstantsCalls returns the arguments of all PossibleInstantsFor calls so far.
func (z *TimeZone) PossibleInstantsCalls() []temporal.PlainDateTime {
	z.mu.Lock()
	defer z.mu.Unlock()
	return append([]temporal.PlainDateTime(nil), z.possibleCalls...)
}

// DateAddCall records the arguments of one Calendar.DateAdd call.
type DateAddCall struct {
	Date     temporal.PlainDate
	Duration temporal.Duration
	Options  temporal.AddOptions
}

// DateUntilCall records the arguments of one Calendar.DateUntil call.
type DateUntilCall struct {
	One, Two    temporal.PlainDate
	LargestUnit temporal.Unit
}

// Calendar wraps a calendar, replaying scripted DateAdd results and recording calls.
type Calendar struct {
	base temporal.Calendar

	mu             sync.Mutex
	dateAdd        script[temporal.PlainDate]
	dateAddCalls   []DateAddCall
	dateUntilCalls []DateUntilCall
}

// CalendarOption configures a Calendar.
type CalendarOption func(*Calendar)

// WithDateAddResults scripts the results of DateAdd.
func WithDateAddResults(steps ...Step[temporal.PlainDate]) CalendarOption {
	return func(c *Calendar) { c.dateAdd.steps = steps }
}

// NewCalendar wraps base. It reports the ID of base.
func NewCalendar(base temporal.Calendar, opts ...CalendarOption) *Calendar {
	c := &Calendar{base: base}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calendar) ID() string {
	return c.base.ID()
}

func (c *Calendar) DateAdd(date temporal.PlainDate, duration temporal.Duration, options temporal.AddOptions) (temporal.PlainDate, error) {
	c.mu.Lock()
	c.dateAddCalls = append(c.dateAddCalls, DateAddCall{Date: date, Duration: duration, Options: options})
	v, ok := c.dateAdd.next()
	c.mu.Unlock()
	if ok {
		return v, nil
	}
	return c.base.DateAdd(date, duration, options)
}

func (c *Calendar) DateUntil(one, two temporal.PlainDate, largestUnit temporal.Unit) (temporal.Duration, error) {
	c.mu.Lock()
	c.dateUntilCalls = append(c.dateUntilCalls, DateUntilCall{One: one, Two: two, LargestUnit: largestUnit})
	c.mu.Unlock()
	return c.base.DateUntil(one, two, largestUnit)
}

// DateAddCalls returns the arguments of all DateAdd calls so far.
func (c *Calendar) DateAddCalls() []DateAddCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DateAddCall(nil), c.dateAddCalls...)
}

// DateUntilCalls returns the arguments of all DateUntil calls so far.
func (c *Calendar) DateUntilCalls() []DateUntilCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DateUntilCall(nil), c.dateUntilCalls...)
}
