package registry

import (
	"errors"
	"testing"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

func fixed(title string, notes ...core.Note) Factory {
	return func() core.Song {
		return core.Song{Title: title, Difficulty: core.DifficultyEasy, Notes: notes}
	}
}

func TestRegistryAddAndList(t *testing.T) {
	r := New()
	if err := r.Add("b-song", SourceBuiltin, fixed("B", core.Note{ID: "n", TimeMs: 4000})); err != nil {
		t.Fatal(err)
	}
	if err := r.Add("a-song", SourceLibrary, fixed("A")); err != nil {
		t.Fatal(err)
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d songs, want 2", len(list))
	}
	if list[0].ID != "b-song" || list[1].ID != "a-song" {
		t.Errorf("List() order = %s, %s; want registration order", list[0].ID, list[1].ID)
	}
	if list[0].Notes != 1 || list[0].LengthMs != 4000 || list[0].Source != SourceBuiltin {
		t.Errorf("metadata = %+v", list[0])
	}

	err := r.Add("a-song", SourceFile, fixed("again"))
	if !errors.Is(err, ErrDuplicateSong) {
		t.Errorf("duplicate Add error = %v", err)
	}
}

func TestRegistryGet(t *testing.T) {
	r := New()
	r.Add("x", SourceBuiltin, fixed("X"))

	song, err := r.Get("x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if song.ID != "x" || song.Title != "X" {
		t.Errorf("song = %+v", song)
	}

	if _, err := r.Get("nope"); !errors.Is(err, ErrUnknownSong) {
		t.Errorf("Get(unknown) error = %v", err)
	}
}

func TestRegistryResolve(t *testing.T) {
	r := New()
	r.Add("neon-overdrive", SourceBuiltin, fixed("NEON OVERDRIVE"))
	r.Add("vhs-dreams", SourceBuiltin, fixed("VHS DREAMS"))

	tests := []struct {
		key    string
		wantID string
	}{
		{"vhs-dreams", "vhs-dreams"},
		{"1", "neon-overdrive"},
		{" 2 ", "vhs-dreams"},
		{"neon overdrive", "neon-overdrive"},
	}
	for _, tt := range tests {
		song, err := r.Resolve(tt.key)
		if err != nil || song.ID != tt.wantID {
			t.Errorf("Resolve(%q) = %q, %v; want %q", tt.key, song.ID, err, tt.wantID)
		}
	}

	for _, key := range []string{"0", "3", "unknown"} {
		if _, err := r.Resolve(key); !errors.Is(err, ErrUnknownSong) {
			t.Errorf("Resolve(%q) error = %v", key, err)
		}
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	id := "registry-test-duplicate"
	Register(id, fixed("once"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate Register")
		}
	}()
	Register(id, fixed("twice"))
}
