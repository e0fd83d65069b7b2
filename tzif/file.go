package tzif

import (
	"fmt"
	"io"
	"math"
)

// File is a decoded TZif file. For version 1 files only V1Header and V1 are used.
type File struct {
	Version Version

	V1Header Header
	V1       DataBlock[int32]

	V2Header Header
	V2       DataBlock[int64]
	// Footer is the POSIX TZ string describing local time after the last transition. It may be empty.
	Footer string
}

// New returns a version 2+ file holding block and footer. The version 1 block is filled with the transitions
// that fit into 32 bits so that version 1 readers still see the recent history.
func New(version Version, block DataBlock[int64], footer string) File {
	v1 := narrow(block)
	return File{
		Version:  version,
		V1Header: v1.Header(version),
		V1:       v1,
		V2Header: block.Header(version),
		V2:       block,
		Footer:   footer,
	}
}

// narrow drops the transitions and leap seconds of b that do not fit into 32 bits.
func narrow(b DataBlock[int64]) DataBlock[int32] {
	out := DataBlock[int32]{
		LocalTimeTypes: b.LocalTimeTypes,
		Designations:   b.Designations,
		StandardWall:   b.StandardWall,
		UTLocal:        b.UTLocal,
	}
	for i, t := range b.TransitionTimes {
		if t < math.MinInt32 || t > math.MaxInt32 {
			continue
		}
		out.TransitionTimes = append(out.TransitionTimes, int32(t))
		out.TransitionTypes = append(out.TransitionTypes, b.TransitionTypes[i])
	}
	for _, l := range b.LeapSeconds {
		if l.Occur < math.MinInt32 || l.Occur > math.MaxInt32 {
			continue
		}
		out.LeapSeconds = append(out.LeapSeconds, LeapSecond[int32]{Occur: int32(l.Occur), Corr: l.Corr})
	}
	return out
}

// Data returns the most precise data block of f.
func (f File) Data() DataBlock[int64] {
	if f.Version > V1 {
		return f.V2
	}
	return widen(f.V1)
}

// Encode writes f to w. Version 1 files are written without the version 2+ header, block, and footer.
func (f File) Encode(w io.Writer) error {
	if err := f.V1Header.Write(w); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := f.V1.Write(w); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if f.Version == V1 {
		return nil
	}
	if err := f.V2Header.Write(w); err != nil {
		return fmt.Errorf("write v2 header: %w", err)
	}
	if err := f.V2.Write(w); err != nil {
		return fmt.Errorf("write v2 data: %w", err)
	}
	if err := writeFooter(w, f.Footer); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

// Decode reads a TZif file from r.
func Decode(r io.Reader) (File, error) {
	var (
		f   File
		err error
	)
	f.V1Header, err = ReadHeader(r)
	if err != nil {
		return f, fmt.Errorf("read v1 header: %w", err)
	}
	f.Version = f.V1Header.Version

	f.V1, err = ReadDataBlock[int32](r, f.V1Header)
	if err != nil {
		return f, fmt.Errorf("read v1 data block: %w", err)
	}
	if f.Version == V1 {
		return f, nil
	}

	f.V2Header, err = ReadHeader(r)
	if err != nil {
		return f, fmt.Errorf("read v2 header: %w", err)
	}
	f.V2, err = ReadDataBlock[int64](r, f.V2Header)
	if err != nil {
		return f, fmt.Errorf("read v2 data block: %w", err)
	}
	f.Footer, err = readFooter(r)
	if err != nil {
		return f, fmt.Errorf("read footer: %w", err)
	}
	return f, nil
}
