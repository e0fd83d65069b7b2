package tzif

import (
	"errors"
	"fmt"
)

// Validate checks the structural rules of RFC 8536 and joins every violation into one error.
func Validate(f File) error {
	var errs []error
	if f.Version != f.V1Header.Version || (f.Version > V1 && f.V2Header.Version != f.Version) {
		errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v1 header = %v, v2 header = %v", f.Version, f.V1Header.Version, f.V2Header.Version))
	}
	switch {
	case f.Version == V1:
		errs = append(errs, validateBlock("v1", f.V1Header, f.V1)...)
	case f.V1Header.Typecnt != 0:
		// Version 2+ readers ignore the v1 block, which may therefore be empty.
		errs = append(errs, validateBlock("v1", f.V1Header, f.V1)...)
	}
	if f.Version > V1 {
		errs = append(errs, validateBlock("v2", f.V2Header, f.V2)...)
		for _, c := range f.Footer {
			if c == 0 || c == newline {
				errs = append(errs, fmt.Errorf("invalid footer %q: must not contain NUL or newline", f.Footer))
				break
			}
		}
	}
	return errors.Join(errs...)
}

func validateBlock[T Time](name string, h Header, b DataBlock[T]) []error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("invalid %s "+format, append([]any{name}, args...)...))
		}
	}

	check(h.Isutcnt == 0 || h.Isutcnt == h.Typecnt, "isutcnt (%d): must be 0 or equal to typecnt (%d)", h.Isutcnt, h.Typecnt)
	check(len(b.UTLocal) == int(h.Isutcnt), "isutcnt: header = %d, data = %d", h.Isutcnt, len(b.UTLocal))
	check(h.Isstdcnt == 0 || h.Isstdcnt == h.Typecnt, "isstdcnt (%d): must be 0 or equal to typecnt (%d)", h.Isstdcnt, h.Typecnt)
	check(len(b.StandardWall) == int(h.Isstdcnt), "isstdcnt: header = %d, data = %d", h.Isstdcnt, len(b.StandardWall))
	check(len(b.LeapSeconds) == int(h.Leapcnt), "leapcnt: header = %d, data = %d", h.Leapcnt, len(b.LeapSeconds))
	check(len(b.TransitionTimes) == int(h.Timecnt), "timecnt: header = %d, transition times = %d", h.Timecnt, len(b.TransitionTimes))
	check(len(b.TransitionTypes) == len(b.TransitionTimes), "transitions: transition times = %d, transition types = %d", len(b.TransitionTimes), len(b.TransitionTypes))
	check(h.Typecnt != 0, "typecnt: must not be zero")
	check(len(b.LocalTimeTypes) == int(h.Typecnt), "typecnt: header = %d, data = %d", h.Typecnt, len(b.LocalTimeTypes))
	check(h.Charcnt != 0, "charcnt: must not be zero")
	check(len(b.Designations) == int(h.Charcnt), "charcnt: header = %d, data = %d", h.Charcnt, len(b.Designations))
	check(len(b.Designations) == 0 || b.Designations[len(b.Designations)-1] == 0, "time zone designations: missing NUL terminator")

	for i := 1; i < len(b.TransitionTimes); i++ {
		if b.TransitionTimes[i-1] >= b.TransitionTimes[i] {
			check(false, "transition times: %d at index %d does not follow %d", b.TransitionTimes[i], i, b.TransitionTimes[i-1])
			break
		}
	}
	for i, typ := range b.TransitionTypes {
		check(int(typ) < len(b.LocalTimeTypes), "transition type %d at index %d: only %d local time types", typ, i, len(b.LocalTimeTypes))
	}
	for i, t := range b.LocalTimeTypes {
		check(int(t.Idx) < len(b.Designations), "local time type %d: designation index %d out of range", i, t.Idx)
		check(t.Utoff != -1<<31, "local time type %d: utoff must not be -2^31", i)
	}
	for i := range b.UTLocal {
		check(!b.UTLocal[i] || (i < len(b.StandardWall) && b.StandardWall[i]), "indicators of local time type %d: UT requires standard time", i)
	}
	return errs
}
