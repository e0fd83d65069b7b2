// Package tzif reads and writes the Time Zone Information Format of RFC 8536.
// https://datatracker.ietf.org/doc/html/rfc8536
package tzif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// All multi-octet integers are big-endian two's complement.
var order = binary.BigEndian

// Version identifies the format of a TZif file. Version 1 files store 32-bit times only; version 2 and later
// files repeat the data with 64-bit times and add a footer.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = '2'
	V3 Version = '3'
	V4 Version = '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2, V3, V4:
		return fmt.Sprintf("V%c (0x%x)", v, byte(v))
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

// Magic starts every TZif header.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

var errMagic = errors.New("invalid magic")

// Header precedes each data block and holds the element counts of the block.
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	Version  Version
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

// Write writes the magic followed by h to w.
func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

// ReadHeader reads a header including its magic.
func ReadHeader(r io.Reader) (Header, error) {
	var (
		h     Header
		magic [4]byte
	)
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if magic != Magic {
		return h, fmt.Errorf("%w: %q", errMagic, magic[:])
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, fmt.Errorf("reading counts: %w", err)
	}
	return h, nil
}

// Time is the size of time values in a data block: int32 in the version 1 block, int64 in the version 2+ block.
type Time interface {
	int32 | int64
}

// LocalTimeType is a six-octet local time type record.
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeType struct {
	// Utoff is added to UT to get local time, in seconds.
	Utoff int32
	Dst   bool
	// Idx is the offset of the NUL-terminated designation in the designation octets.
	Idx uint8
}

// LeapSecond is a leap-second record: from Occur on, LEAPCORR is Corr.
type LeapSecond[T Time] struct {
	Occur T
	Corr  int32
}

// DataBlock is a TZif data block. The version 1 block uses DataBlock[int32], the version 2+ block
// DataBlock[int64].
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	|  transition types          (timecnt)                    |
//	|  local time type records   (typecnt x 6)                |
//	|  time zone designations    (charcnt)                    |
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	|  standard/wall indicators  (isstdcnt)                   |
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type DataBlock[T Time] struct {
	// TransitionTimes are strictly ascending Unix times at which the local time type may change.
	TransitionTimes []T
	// TransitionTypes index LocalTimeTypes, one per transition time.
	TransitionTypes []uint8
	LocalTimeTypes  []LocalTimeType
	// Designations are the NUL-terminated abbreviations referenced by LocalTimeType.Idx.
	Designations []byte
	LeapSeconds  []LeapSecond[T]
	// StandardWall and UTLocal are empty or hold one indicator per local time type.
	StandardWall []bool
	UTLocal      []bool
}

// Header returns the header that describes b in a file of version v.
func (b DataBlock[T]) Header(v Version) Header {
	return Header{
		Version:  v,
		Isutcnt:  uint32(len(b.UTLocal)),
		Isstdcnt: uint32(len(b.StandardWall)),
		Leapcnt:  uint32(len(b.LeapSeconds)),
		Timecnt:  uint32(len(b.TransitionTimes)),
		Typecnt:  uint32(len(b.LocalTimeTypes)),
		Charcnt:  uint32(len(b.Designations)),
	}
}

// Write writes b without its header.
func (b DataBlock[T]) Write(w io.Writer) error {
	for _, part := range []any{b.TransitionTimes, b.TransitionTypes, b.LocalTimeTypes} {
		if err := binary.Write(w, order, part); err != nil {
			return err
		}
	}
	if _, err := w.Write(b.Designations); err != nil {
		return err
	}
	for _, part := range []any{b.LeapSeconds, b.StandardWall, b.UTLocal} {
		if err := binary.Write(w, order, part); err != nil {
			return err
		}
	}
	return nil
}

// ReadDataBlock reads the data block described by h. The caller picks the time size: int32 for the
// version 1 block, int64 for the version 2+ block.
func ReadDataBlock[T Time](r io.Reader, h Header) (DataBlock[T], error) {
	var b DataBlock[T]
	if err := readSlice(r, &b.TransitionTimes, h.Timecnt, "transition times"); err != nil {
		return b, err
	}
	if err := readSlice(r, &b.TransitionTypes, h.Timecnt, "transition types"); err != nil {
		return b, err
	}
	if err := readSlice(r, &b.LocalTimeTypes, h.Typecnt, "local time type records"); err != nil {
		return b, err
	}
	if h.Charcnt > 0 {
		b.Designations = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.Designations); err != nil {
			return b, fmt.Errorf("reading time zone designations: %w", err)
		}
	}
	if err := readSlice(r, &b.LeapSeconds, h.Leapcnt, "leap second records"); err != nil {
		return b, err
	}
	if err := readSlice(r, &b.StandardWall, h.Isstdcnt, "standard/wall indicators"); err != nil {
		return b, err
	}
	if err := readSlice(r, &b.UTLocal, h.Isutcnt, "UT/local indicators"); err != nil {
		return b, err
	}
	return b, nil
}

// readSlice reads n elements into *s. Nothing is allocated for n == 0 so that decoded empty sections
// compare equal to nil.
func readSlice[E any](r io.Reader, s *[]E, n uint32, what string) error {
	if n == 0 {
		return nil
	}
	*s = make([]E, n)
	if err := binary.Read(r, order, *s); err != nil {
		return fmt.Errorf("reading %s: %w", what, err)
	}
	return nil
}

// Designation returns the abbreviation that starts at idx.
func (b DataBlock[T]) Designation(idx uint8) (string, error) {
	if int(idx) >= len(b.Designations) {
		return "", fmt.Errorf("designation index %d out of range [0, %d)", idx, len(b.Designations))
	}
	end := bytes.IndexByte(b.Designations[idx:], 0)
	if end < 0 {
		return "", fmt.Errorf("designation at %d is not NUL-terminated", idx)
	}
	return string(b.Designations[int(idx) : int(idx)+end]), nil
}

// widen converts a version 1 block to 64-bit times.
func widen(b DataBlock[int32]) DataBlock[int64] {
	out := DataBlock[int64]{
		TransitionTypes: b.TransitionTypes,
		LocalTimeTypes:  b.LocalTimeTypes,
		Designations:    b.Designations,
		StandardWall:    b.StandardWall,
		UTLocal:         b.UTLocal,
	}
	if len(b.TransitionTimes) > 0 {
		out.TransitionTimes = make([]int64, len(b.TransitionTimes))
		for i, t := range b.TransitionTimes {
			out.TransitionTimes[i] = int64(t)
		}
	}
	if len(b.LeapSeconds) > 0 {
		out.LeapSeconds = make([]LeapSecond[int64], len(b.LeapSeconds))
		for i, l := range b.LeapSeconds {
			out.LeapSeconds[i] = LeapSecond[int64]{Occur: int64(l.Occur), Corr: l.Corr}
		}
	}
	return out
}

const newline = '\n'

// writeFooter writes the TZ string framed by newlines.
func writeFooter(w io.Writer, tz string) error {
	_, err := io.WriteString(w, string(newline)+tz+string(newline))
	return err
}

// readFooter reads a TZ string framed by newlines.
func readFooter(r io.Reader) (string, error) {
	var (
		buf [1]byte
		tz  []byte
	)
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return "", fmt.Errorf("reading newline: %w", err)
	}
	if buf[0] != newline {
		return "", fmt.Errorf("expected newline, got %#x", buf[0])
	}
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return "", fmt.Errorf("reading TZ string: %w", err)
		}
		if buf[0] == newline {
			return string(tz), nil
		}
		tz = append(tz, buf[0])
	}
}
