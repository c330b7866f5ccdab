package catalog

import (
	"reflect"
	"testing"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

func TestCatalogEntries(t *testing.T) {
	all, err := Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(all) != 50 {
		t.Fatalf("catalog has %d songs, want 50", len(all))
	}

	ids := make(map[string]bool)
	for i, e := range all {
		if e.Number != i+1 {
			t.Errorf("entry %d has number %d", i, e.Number)
		}
		if ids[e.ID] {
			t.Errorf("duplicate id %q", e.ID)
		}
		ids[e.ID] = true
		if _, ok := core.ParseDifficulty(e.Difficulty); !ok {
			t.Errorf("%s: unknown difficulty %q", e.ID, e.Difficulty)
		}
		if e.LengthMs <= core.GenStartMs || e.Density <= 0 {
			t.Errorf("%s: bad generator params %+v", e.ID, e.Params())
		}
	}
}

func TestCatalogFirstSong(t *testing.T) {
	e, ok := Lookup("neon-overdrive")
	if !ok {
		t.Fatal("neon-overdrive missing")
	}
	want := core.GenParams{SongID: 1, Seed: 1.5, LengthMs: 125000, Density: 1.2}
	if e.Params() != want {
		t.Errorf("params = %+v, want %+v", e.Params(), want)
	}

	song := e.Song()
	if song.Title != "NEON OVERDRIVE" || song.Difficulty != core.DifficultyEasy {
		t.Errorf("song = %s %s", song.Title, song.Difficulty)
	}
	if !reflect.DeepEqual(song.Notes, core.Generate(1, 1.5, 125000, 1.2)) {
		t.Error("catalog chart differs from the generator output")
	}
}

func TestCatalogRegistered(t *testing.T) {
	list := registry.List()
	if len(list) < 50 {
		t.Fatalf("registry has %d songs, want at least 50", len(list))
	}
	if list[0].ID != "neon-overdrive" || list[49].ID != "final-boss" {
		t.Errorf("registry order = %s ... %s", list[0].ID, list[49].ID)
	}

	song, err := registry.Get("final-boss")
	if err != nil {
		t.Fatal(err)
	}
	if song.Difficulty != core.DifficultyHard || len(song.Notes) == 0 {
		t.Errorf("final-boss = %s with %d notes", song.Difficulty, len(song.Notes))
	}
	if list[49].Notes != len(song.Notes) {
		t.Errorf("registry metadata notes = %d, chart has %d", list[49].Notes, len(song.Notes))
	}
}
