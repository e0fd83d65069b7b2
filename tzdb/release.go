// Package tzdb unpacks releases of the IANA time zone database and compiles them into trees of TZif files
// that a zoneinfo.Loader can read. Release archives are published at https://www.iana.org/time-zones.
package tzdb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ngrash/go-temporal/tzdata"
)

const (
	dataFileMagic   = "# tzdb data for"
	leapSecondsName = "leapseconds"
	versionName     = "version"
)

var errNotData = errors.New("not a tzdb release")

// Release is an unpacked tzdata archive.
type Release struct {
	// Version is the release name, for example "2024b".
	Version string
	// DataFiles maps source file names such as "europe" to their content. Every file starts with the line
	// "# tzdb data for".
	DataFiles map[string][]byte
	// LeapSeconds is the content of the leapseconds file, if the archive has one.
	LeapSeconds []byte
}

// ReadArchive unpacks a gzip-compressed tar archive as published at https://data.iana.org/time-zones/releases/.
func ReadArchive(r io.Reader) (*Release, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read gzip: %w", err)
	}
	tr := tar.NewReader(gz)

	rel := Release{DataFiles: make(map[string][]byte)}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", hdr.Name, err)
		}
		switch {
		case hdr.Name == versionName:
			rel.Version = strings.TrimSpace(string(data))
		case hdr.Name == leapSecondsName:
			rel.LeapSeconds = data
		case bytes.HasPrefix(data, []byte(dataFileMagic)):
			rel.DataFiles[hdr.Name] = data
		}
	}

	if len(rel.DataFiles) == 0 {
		return nil, fmt.Errorf("%w: no data files", errNotData)
	}
	if rel.Version == "" {
		return nil, fmt.Errorf("%w: no version", errNotData)
	}
	return &rel, nil
}

// Source parses every data file of the release. Files are parsed concurrently and merged in name order.
func (r *Release) Source(ctx context.Context) (tzdata.File, error) {
	names := slices.Sorted(maps.Keys(r.DataFiles))
	files := make([]tzdata.File, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := tzdata.Parse(bytes.NewReader(r.DataFiles[name]))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tzdata.File{}, err
	}

	var src tzdata.File
	for _, f := range files {
		src.Merge(f)
	}
	return src, nil
}
