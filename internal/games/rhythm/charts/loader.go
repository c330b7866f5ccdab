// Package charts loads and saves chart files. Format parsing lives in
// charts/formats; this package walks directories, normalizes charts through
// core.Ingest and derives song IDs from file names.
package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/charts/formats"
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = formats.ErrUnsupported

// ErrNotFound is returned by LoadByID when no chart has the ID.
var ErrNotFound = errors.New("chart not found")

// Chart is a loaded, normalized chart.
type Chart struct {
	Song     core.Song
	Report   core.IngestReport // Corrections applied while loading
	FilePath string
}

// Loader handles loading charts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new chart loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all chart files. Unreadable or
// malformed files are skipped and returned as errors alongside the charts
// that did load, so one bad file does not hide the rest.
// Charts are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Chart, []error) {
	var (
		charts []Chart
		errs   []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		c, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		charts = append(charts, c)
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("walking directory %s: %w", l.Root, err))
	}

	sort.Slice(charts, func(i, j int) bool {
		return charts[i].Song.ID < charts[j].Song.ID
	})
	return charts, errs
}

// RegisterAll adds every loadable chart under Root to reg. Charts whose ID
// is already taken are skipped with an error, as are files that fail to load.
func (l *Loader) RegisterAll(reg *registry.Registry) (int, []error) {
	charts, errs := l.LoadAll()
	added := 0
	for _, c := range charts {
		song := c.Song
		if err := reg.Add(song.ID, registry.SourceFile, func() core.Song { return song }); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.FilePath, err))
			continue
		}
		added++
	}
	return added, errs
}

// LoadByID loads a specific chart by ID.
func (l *Loader) LoadByID(id string) (Chart, error) {
	charts, _ := l.LoadAll()
	for _, c := range charts {
		if c.Song.ID == id {
			return c, nil
		}
	}
	return Chart{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// LoadFile loads a single chart file. The song ID is the one in the file,
// or the file name without extension.
func LoadFile(path string) (Chart, error) {
	f, err := formats.ForExtension(filepath.Ext(path))
	if err != nil {
		return Chart{}, fmt.Errorf("%s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	raw, err := formats.Parse(f, data)
	if err != nil {
		return Chart{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if raw.ID == "" {
		raw.ID = Slug(base)
	}
	if raw.Title == "" {
		raw.Title = strings.ToUpper(base)
	}

	song, report := core.Ingest(raw)
	return Chart{Song: song, Report: report, FilePath: path}, nil
}

// Read parses chart data already in memory.
func Read(f formats.Format, data []byte) (core.Song, core.IngestReport, error) {
	raw, err := formats.Parse(f, data)
	if err != nil {
		return core.Song{}, core.IngestReport{}, err
	}
	song, report := core.Ingest(raw)
	return song, report, nil
}

// WriteFile encodes a song in the format matching the path's extension.
func WriteFile(path string, song core.Song) error {
	f, err := formats.ForExtension(filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	data, err := formats.Encode(f, song)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a title or file name into a song ID.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.Extensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
