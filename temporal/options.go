package temporal

import "fmt"

// Overflow controls how a calendar treats a day that does not exist in the resulting month.
type Overflow uint8

const (
	// OverflowDefault means the caller made no choice. Calendars treat it as OverflowConstrain.
	OverflowDefault Overflow = iota
	OverflowConstrain
	OverflowReject
)

func (o Overflow) String() string {
	switch o {
	case OverflowDefault:
		return "default"
	case OverflowConstrain:
		return "constrain"
	case OverflowReject:
		return "reject"
	}
	return fmt.Sprintf("Overflow(%d)", uint8(o))
}

// ParseOverflow parses "constrain" or "reject". The empty string yields OverflowDefault.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "":
		return OverflowDefault, nil
	case "constrain":
		return OverflowConstrain, nil
	case "reject":
		return OverflowReject, nil
	}
	return OverflowDefault, fmt.Errorf("unknown overflow %q: %w", s, ErrRange)
}

// Disambiguation selects an instant for a wall-clock time that occurs twice or not at all.
type Disambiguation uint8

const (
	// DisambiguationCompatible picks the earlier instant in a fold and the later one in a gap.
	DisambiguationCompatible Disambiguation = iota
	DisambiguationEarlier
	DisambiguationLater
	DisambiguationReject
)

func (d Disambiguation) String() string {
	switch d {
	case DisambiguationCompatible:
		return "compatible"
	case DisambiguationEarlier:
		return "earlier"
	case DisambiguationLater:
		return "later"
	case DisambiguationReject:
		return "reject"
	}
	return fmt.Sprintf("Disambiguation(%d)", uint8(d))
}

// ParseDisambiguation parses a policy name. The empty string yields DisambiguationCompatible.
func ParseDisambiguation(s string) (Disambiguation, error) {
	switch s {
	case "", "compatible":
		return DisambiguationCompatible, nil
	case "earlier":
		return DisambiguationEarlier, nil
	case "later":
		return DisambiguationLater, nil
	case "reject":
		return DisambiguationReject, nil
	}
	return DisambiguationCompatible, fmt.Errorf("unknown disambiguation %q: %w", s, ErrRange)
}

// AddOptions are passed to Calendar.DateAdd. The zero value means no options were given.
type AddOptions struct {
	Overflow Overflow
}

// constrain reports whether a non-existent day should be clamped rather than rejected.
func (o AddOptions) constrain() bool {
	return o.Overflow != OverflowReject
}

// DifferenceOptions configure ZonedDateTime.Since and Until.
type DifferenceOptions struct {
	// LargestUnit defaults to UnitHour.
	LargestUnit Unit
}

// RelativeTo anchors duration arithmetic that involves calendar units. The zero value has no anchor.
type RelativeTo struct {
	plain *PlainDate
	zoned *ZonedDateTime
}

// RelativeToPlainDate anchors arithmetic at a date. Days are treated as 24 hours.
func RelativeToPlainDate(d PlainDate) RelativeTo {
	return RelativeTo{plain: &d}
}

// RelativeToZoned anchors arithmetic at a zoned date-time. Day lengths follow its time zone.
func RelativeToZoned(z ZonedDateTime) RelativeTo {
	return RelativeTo{zoned: &z}
}

// DurationArithmeticOptions configure Duration.Add and Duration.Subtract.
type DurationArithmeticOptions struct {
	RelativeTo RelativeTo
}
