package temporal

import "errors"

var (
	// ErrConstruction is returned when a value is constructed from fields that violate its invariants.
	ErrConstruction = errors.New("invalid value")

	// ErrResolution is returned when a wall-clock time cannot be resolved to a single instant.
	ErrResolution = errors.New("wall-clock time cannot be resolved")

	// ErrSignInconsistency is returned when a day count or remainder has a sign that contradicts the duration it
	// was derived from. This happens only with time zones that report inconsistent offsets.
	ErrSignInconsistency = errors.New("sign inconsistent with duration")

	// ErrUnsafeDayLength is returned when a civil day is 2^53 nanoseconds or longer.
	ErrUnsafeDayLength = errors.New("day length exceeds safe range")

	// ErrContractViolation is returned when a TimeZone or Calendar returns a value outside of its contract.
	ErrContractViolation = errors.New("contract violation")

	// ErrRange is returned when an operation's arguments or result are out of range.
	ErrRange = errors.New("out of range")
)
