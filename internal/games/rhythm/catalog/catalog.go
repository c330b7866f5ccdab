// Package catalog holds the built-in song list. Every entry is a set of
// generator parameters rather than a stored chart, and registers itself
// with the song registry on import.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry describes one built-in song.
type Entry struct {
	Number     int     `yaml:"number"`
	ID         string  `yaml:"id"`
	Title      string  `yaml:"title"`
	Genre      string  `yaml:"genre"`
	Difficulty string  `yaml:"difficulty"`
	Seed       float64 `yaml:"seed"`
	LengthMs   int     `yaml:"length_ms"`
	Density    float64 `yaml:"density"`
}

// Params returns the generator inputs of the entry.
func (e Entry) Params() core.GenParams {
	return core.GenParams{SongID: e.Number, Seed: e.Seed, LengthMs: e.LengthMs, Density: e.Density}
}

// Song generates the chart for the entry.
func (e Entry) Song() core.Song {
	difficulty, _ := core.ParseDifficulty(e.Difficulty)
	return core.Song{
		ID:         e.ID,
		Title:      e.Title,
		Genre:      e.Genre,
		Difficulty: difficulty,
		Notes:      e.Params().Generate(),
	}
}

var (
	entries   []Entry
	parseErr  error
	parseOnce sync.Once
)

// Entries returns the built-in songs in catalog order.
func Entries() ([]Entry, error) {
	parseOnce.Do(func() {
		var doc struct {
			Songs []Entry `yaml:"songs"`
		}
		if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
			parseErr = fmt.Errorf("catalog: %w", err)
			return
		}
		entries = doc.Songs
	})
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, parseErr
}

// Lookup returns the entry with the given ID.
func Lookup(id string) (Entry, bool) {
	all, _ := Entries()
	for _, e := range all {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func init() {
	all, err := Entries()
	if err != nil {
		panic(err)
	}
	for _, e := range all {
		var (
			once sync.Once
			song core.Song
		)
		registry.Register(e.ID, func() core.Song {
			once.Do(func() { song = e.Song() })
			return song
		})
	}
}
