package zoneinfo

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ngrash/go-temporal/temporal"
	"github.com/ngrash/go-temporal/tzif"
)

// DefaultDir is where most systems install their TZif files.
const DefaultDir = "/usr/share/zoneinfo"

// Loader reads zones from a tree of TZif files named like their zones, for example "Europe/Zurich". Zones are
// read once and cached. A Loader is safe for concurrent use.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger

	mu    sync.RWMutex
	zones map[string]*Zone
	group singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger for load events. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader returns a loader that reads zones from fsys.
func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:   fsys,
		logger: slog.New(slog.DiscardHandler),
		zones:  make(map[string]*Zone),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDirLoader returns a loader that reads zones from the directory dir.
func NewDirLoader(dir string, opts ...Option) *Loader {
	return NewLoader(os.DirFS(dir), opts...)
}

var utc = &Zone{name: "UTC", initial: LocalTimeType{Abbrev: "UTC"}, footer: "UTC0"}

// Load returns the zone called name. UTC is available even if the tree has no file for it.
func (l *Loader) Load(name string) (*Zone, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	l.mu.RLock()
	z, ok := l.zones[name]
	l.mu.RUnlock()
	if ok {
		return z, nil
	}

	v, err, shared := l.group.Do(name, func() (any, error) {
		z, err := l.read(name)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.zones[name] = z
		l.mu.Unlock()
		return z, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		l.logger.Debug("shared zone load", "zone", name)
	}
	return v.(*Zone), nil
}

func (l *Loader) read(name string) (*Zone, error) {
	f, err := l.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		if name == "UTC" {
			l.logger.Debug("no zone file, using built-in UTC")
			return utc, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, name)
	}
	if err != nil {
		return nil, fmt.Errorf("open zone %s: %w", name, err)
	}
	defer f.Close()

	data, err := tzif.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode zone %s: %w", name, err)
	}
	z, err := FromTZif(name, data)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loaded zone", "zone", name, "version", data.Version, "transitions", len(z.transitions), "footer", z.footer)
	return z, nil
}

// TimeZone resolves an identifier to a time zone: "UTC", a fixed offset such as "+05:30" or "-08:00", or a
// zone name.
func (l *Loader) TimeZone(id string) (temporal.TimeZone, error) {
	if strings.HasPrefix(id, "+") || strings.HasPrefix(id, "-") {
		return parseFixedOffset(id)
	}
	if id == "UTC" {
		return temporal.UTC, nil
	}
	return l.Load(id)
}

// parseFixedOffset parses ±HH:MM[:SS].
func parseFixedOffset(id string) (temporal.TimeZone, error) {
	sec, rest, ok := posixOffset(id, 23)
	if !ok || rest != "" || !strings.Contains(id, ":") {
		return nil, fmt.Errorf("%w: %q is not an offset", ErrUnknownZone, id)
	}
	return temporal.FixedOffsetTimeZone(int64(sec) * 1_000_000_000)
}
