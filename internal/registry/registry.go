// Package registry provides a global registry of playable songs.
// The built-in catalog registers itself in init(); charts imported into the
// library or found in a charts directory are added at startup. The platform
// discovers songs here without knowing where they came from.
package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// ErrUnknownSong is returned when no song matches an ID.
var ErrUnknownSong = errors.New("unknown song")

// ErrDuplicateSong is returned when an ID is already taken.
var ErrDuplicateSong = errors.New("song already registered")

// Source tells where a song came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceLibrary Source = "library" // Imported into the database
	SourceFile    Source = "file"    // Loaded from the charts directory
)

// SongInfo contains metadata about a registered song.
type SongInfo struct {
	ID         string
	Title      string
	Genre      string
	Difficulty core.Difficulty
	Notes      int
	LengthMs   int64
	Source     Source
}

// Factory returns the chart template for a song. It must be deterministic.
type Factory func() core.Song

type entry struct {
	info    SongInfo
	factory Factory
}

// Registry is a set of songs keyed by ID, kept in registration order.
// It is safe for concurrent use; the SSH server reads it from every session.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Add registers a song. The factory is called once to capture metadata.
func (r *Registry) Add(id string, source Source, f Factory) error {
	if id == "" {
		return errors.New("registry: empty song id")
	}

	song := f()
	info := SongInfo{
		ID:         id,
		Title:      song.Title,
		Genre:      song.Genre,
		Difficulty: song.Difficulty,
		Notes:      len(song.Notes),
		LengthMs:   song.LengthMs(),
		Source:     source,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("registry: %w: %q", ErrDuplicateSong, id)
	}
	r.entries[id] = entry{info: info, factory: f}
	r.order = append(r.order, id)
	return nil
}

// List returns information about all registered songs in registration order.
func (r *Registry) List() []SongInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]SongInfo, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id].info)
	}
	return result
}

// Get returns the chart template of a song.
func (r *Registry) Get(id string) (core.Song, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return core.Song{}, fmt.Errorf("registry: %w: %q", ErrUnknownSong, id)
	}
	song := e.factory()
	song.ID = id
	return song, nil
}

// Resolve finds a song by ID, by 1-based position in the list, or by a
// case-insensitive title match.
func (r *Registry) Resolve(key string) (core.Song, error) {
	key = strings.TrimSpace(key)
	if r.Exists(key) {
		return r.Get(key)
	}

	list := r.List()
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(list) {
		return r.Get(list[n-1].ID)
	}
	for _, info := range list {
		if strings.EqualFold(info.Title, key) {
			return r.Get(info.ID)
		}
	}
	return core.Song{}, fmt.Errorf("registry: %w: %q", ErrUnknownSong, key)
}

// Exists checks if a song with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

// Len returns the number of registered songs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a built-in song to the default registry.
// Typically called from an init() function.
// Panics if a song with the same ID is already registered.
func Register(id string, f Factory) {
	if err := defaultRegistry.Add(id, SourceBuiltin, f); err != nil {
		panic(err)
	}
}

// List returns all songs of the default registry.
func List() []SongInfo {
	return defaultRegistry.List()
}

// Get returns a song from the default registry.
func Get(id string) (core.Song, error) {
	return defaultRegistry.Get(id)
}

// Resolve looks up a song in the default registry by ID, position or title.
func Resolve(key string) (core.Song, error) {
	return defaultRegistry.Resolve(key)
}

// Exists checks the default registry for a song ID.
func Exists(id string) bool {
	return defaultRegistry.Exists(id)
}
