package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// YAMLChart is the YAML structure of a chart file. A chart either lists its
// notes or names generator parameters; explicit notes win if both are set.
type YAMLChart struct {
	ID         string          `yaml:"id,omitempty"`
	Title      string          `yaml:"title"`
	Genre      string          `yaml:"genre,omitempty"`
	Difficulty string          `yaml:"difficulty,omitempty"`
	Generate   *core.GenParams `yaml:"generate,omitempty"`
	Notes      []core.RawNote  `yaml:"notes,omitempty"`
}

// ParseYAML parses a YAML chart file.
func ParseYAML(data []byte) (core.RawSong, error) {
	var yc YAMLChart
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return core.RawSong{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	raw := core.RawSong{
		ID:         yc.ID,
		Title:      yc.Title,
		Genre:      yc.Genre,
		Difficulty: yc.Difficulty,
		Notes:      yc.Notes,
	}

	if len(raw.Notes) == 0 && yc.Generate != nil {
		if yc.Generate.LengthMs <= 0 {
			return core.RawSong{}, errors.New("yaml: generate.length_ms must be positive")
		}
		raw.Notes = core.Song{Notes: yc.Generate.Generate()}.ToRaw().Notes
	}
	return raw, nil
}

// EncodeYAML writes a song as a YAML chart with explicit notes.
func EncodeYAML(song core.Song) ([]byte, error) {
	raw := song.ToRaw()
	yc := YAMLChart{
		ID:         raw.ID,
		Title:      raw.Title,
		Genre:      raw.Genre,
		Difficulty: raw.Difficulty,
		Notes:      raw.Notes,
	}
	data, err := yaml.Marshal(yc)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}
