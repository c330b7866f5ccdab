// Package logging builds the structured loggers shared by the CLI, the
// terminal UI and the SSH server.
//
// The terminal UI owns stdout while a song is playing, so interactive
// commands log to a file under the data directory instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// Prefix is the logger prefix used by every component.
const Prefix = "bithero"

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// New creates a timestamped key/value logger writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}

// OpenFile creates a logger appending to the file at path, creating parent
// directories as needed. The caller closes the returned file.
func OpenFile(path string, level log.Level) (*log.Logger, io.Closer, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("logging: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return New(f, level), f, nil
}

// IngestReport logs the corrections applied to a chart. Clean charts are
// logged at debug level, corrected ones as warnings.
func IngestReport(logger *log.Logger, songID string, report core.IngestReport) {
	if report.Clean() {
		logger.Debug("chart ingested", "song", songID)
		return
	}
	logger.Warn("chart corrected on ingest",
		"song", songID,
		"clamped", report.Clamped,
		"dropped", report.Dropped,
		"renamed", report.Renamed,
		"reordered", report.Reordered,
		"unknown_difficulty", report.UnknownDifficulty,
	)
}
