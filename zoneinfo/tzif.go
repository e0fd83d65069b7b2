package zoneinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ngrash/go-temporal/tzif"
)

// FromTZif returns the zone described by a TZif file. Leap seconds are ignored.
func FromTZif(name string, f tzif.File) (*Zone, error) {
	if err := tzif.Validate(f); err != nil {
		return nil, fmt.Errorf("zone %s: %w", name, err)
	}
	b := f.Data()
	types := make([]LocalTimeType, len(b.LocalTimeTypes))
	for i, t := range b.LocalTimeTypes {
		abbrev, err := b.Designation(t.Idx)
		if err != nil {
			return nil, fmt.Errorf("zone %s: local time type %d: %w", name, i, err)
		}
		types[i] = LocalTimeType{Offset: t.Utoff, DST: t.Dst, Abbrev: abbrev}
	}
	z := &Zone{name: name, initial: types[0], footer: f.Footer}
	for i, at := range b.TransitionTimes {
		z.transitions = append(z.transitions, Transition{At: at, Type: types[b.TransitionTypes[i]]})
	}
	if f.Footer != "" {
		_, set, err := parsePOSIX(f.Footer)
		if err != nil {
			return nil, fmt.Errorf("zone %s: %w", name, err)
		}
		z.extend = set
	}
	if err := z.check(); err != nil {
		return nil, err
	}
	return z, nil
}

var errTooManyTypes = errors.New("more than 256 local time types")

// TZif encodes z as a version 2 TZif file.
func (z *Zone) TZif() (tzif.File, error) {
	var block tzif.DataBlock[int64]
	index := make(map[LocalTimeType]uint8)
	add := func(t LocalTimeType) (uint8, error) {
		if i, ok := index[t]; ok {
			return i, nil
		}
		if len(block.LocalTimeTypes) == 256 {
			return 0, errTooManyTypes
		}
		designation := append([]byte(t.Abbrev), 0)
		idx := bytes.Index(block.Designations, designation)
		if idx < 0 {
			idx = len(block.Designations)
			block.Designations = append(block.Designations, designation...)
		}
		if idx > 255 {
			return 0, fmt.Errorf("designation %q starts at octet %d, beyond 255", t.Abbrev, idx)
		}
		i := uint8(len(block.LocalTimeTypes))
		index[t] = i
		block.LocalTimeTypes = append(block.LocalTimeTypes, tzif.LocalTimeType{Utoff: t.Offset, Dst: t.DST, Idx: uint8(idx)})
		return i, nil
	}
	if _, err := add(z.initial); err != nil {
		return tzif.File{}, fmt.Errorf("zone %s: %w", z.name, err)
	}
	for _, t := range z.transitions {
		i, err := add(t.Type)
		if err != nil {
			return tzif.File{}, fmt.Errorf("zone %s: %w", z.name, err)
		}
		block.TransitionTimes = append(block.TransitionTimes, t.At)
		block.TransitionTypes = append(block.TransitionTypes, i)
	}
	return tzif.New(tzif.V2, block, z.footer), nil
}
