// Package formats provides pluggable chart file format parsers and encoders.
// Parsers return untrusted core.RawSong values; callers run them through
// core.Ingest before play.
package formats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// ErrUnsupported is returned for an unknown format or file extension.
var ErrUnsupported = errors.New("unsupported chart format")

// Format names a chart encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	MIDI Format = "midi"
)

// All lists the supported formats.
var All = []Format{YAML, JSON, MIDI}

// ParseFormat parses a format name such as "yaml" or "mid".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "midi", "mid", "smf":
		return MIDI, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
}

// ForExtension maps a file extension (with or without the dot) to a format.
func ForExtension(ext string) (Format, error) {
	return ParseFormat(ext)
}

// Extension returns the preferred file extension, with the dot.
func (f Format) Extension() string {
	switch f {
	case YAML:
		return ".yaml"
	case JSON:
		return ".json"
	case MIDI:
		return ".mid"
	}
	return ""
}

// Extensions returns every extension a loader should pick up.
func Extensions() []string {
	return []string{".yaml", ".yml", ".json", ".mid", ".midi"}
}

// Parse decodes a chart in the given format.
func Parse(f Format, data []byte) (core.RawSong, error) {
	switch f {
	case YAML:
		return ParseYAML(data)
	case JSON:
		return ParseJSON(data)
	case MIDI:
		return ParseMIDI(data)
	}
	return core.RawSong{}, fmt.Errorf("%w: %q", ErrUnsupported, f)
}

// Encode writes a chart in the given format.
func Encode(f Format, song core.Song) ([]byte, error) {
	switch f {
	case YAML:
		return EncodeYAML(song)
	case JSON:
		return EncodeJSON(song)
	case MIDI:
		return EncodeMIDI(song)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, f)
}
