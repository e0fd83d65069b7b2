package tzdb

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ngrash/go-temporal/tzdata"
	"github.com/ngrash/go-temporal/zoneinfo"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// Workers bounds the number of zones compiled at once. Zero means runtime.GOMAXPROCS(0).
	Workers int
	// Logger receives one event per written zone. Nothing is logged when it is nil.
	Logger *slog.Logger
}

// Build compiles every zone and link of src and writes each as a TZif file named like the zone below dir, the
// layout zoneinfo.NewDirLoader reads. Links are compiled from their target and written under their own name.
// Build returns the names written.
func Build(ctx context.Context, src tzdata.File, dir string, opts BuildOptions) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	names := make([]string, 0, len(src.Zones)+len(src.Links))
	for _, z := range src.Zones {
		names = append(names, z.Name)
	}
	for _, l := range src.Links {
		names = append(names, l.Name)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := writeZone(src, dir, name)
			if err != nil {
				return err
			}
			logger.Debug("wrote zone", "zone", name, "transitions", n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("built zoneinfo tree", "dir", dir, "zones", len(names))
	return names, nil
}

// writeZone compiles name and writes it below dir. It returns the number of transitions written.
func writeZone(src tzdata.File, dir, name string) (int, error) {
	if !fs.ValidPath(name) {
		return 0, fmt.Errorf("%w: invalid file name %q", zoneinfo.ErrUnknownZone, name)
	}
	z, err := zoneinfo.FromSource(src, name)
	if err != nil {
		return 0, err
	}
	data, err := z.TZif()
	if err != nil {
		return 0, fmt.Errorf("zone %s: %w", name, err)
	}

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	w := bufio.NewWriter(f)
	if err := data.Encode(w); err != nil {
		f.Close()
		return 0, fmt.Errorf("zone %s: %w", name, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return 0, err
	}
	return len(z.Transitions()), f.Close()
}
