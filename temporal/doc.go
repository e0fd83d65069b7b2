// Package temporal implements calendar- and time-zone-aware arithmetic on instants, dates and durations.
//
// Exact time is kept in nanoseconds with arbitrary precision. Calendars and time zones are capabilities passed in
// by the caller through the Calendar and TimeZone interfaces; the package ships the ISO 8601 calendar, UTC and
// fixed-offset time zones. Package zoneinfo provides time zones backed by tz database data.
//
// All errors wrap one of the sentinel errors of this package and can be tested with errors.Is.
package temporal

//go:generate mockgen -destination=../internal/mocks/temporal.go -package=mocks github.com/ngrash/go-temporal/temporal Calendar,TimeZone
