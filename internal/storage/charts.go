package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

// ChartEntry is the metadata of a chart in the library.
type ChartEntry struct {
	ID         string
	Title      string
	Genre      string
	Difficulty core.Difficulty
	Notes      int
	LengthMs   int64
	Hash       string
	CreatedAt  time.Time
}

// SaveChart inserts or replaces an imported chart.
func (s *Store) SaveChart(song core.Song) error {
	if song.ID == "" {
		return errors.New("storage: chart has no id")
	}

	notes, err := json.Marshal(song.Notes)
	if err != nil {
		return fmt.Errorf("storage: cannot encode notes: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO charts (id, title, genre, difficulty, note_count, length_ms, chart_hash, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		 	title = excluded.title,
		 	genre = excluded.genre,
		 	difficulty = excluded.difficulty,
		 	note_count = excluded.note_count,
		 	length_ms = excluded.length_ms,
		 	chart_hash = excluded.chart_hash,
		 	notes = excluded.notes`,
		song.ID, song.Title, song.Genre, string(song.Difficulty),
		len(song.Notes), song.LengthMs(), core.ChartHash(song.Notes), string(notes),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save chart: %w", err)
	}
	return nil
}

// LoadChart retrieves a chart by ID.
func (s *Store) LoadChart(id string) (core.Song, error) {
	var (
		song       core.Song
		difficulty string
		notes      string
	)
	err := s.db.QueryRow(
		`SELECT id, title, genre, difficulty, notes FROM charts WHERE id = ?`,
		id,
	).Scan(&song.ID, &song.Title, &song.Genre, &difficulty, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Song{}, fmt.Errorf("%w: chart %q", ErrNotFound, id)
	}
	if err != nil {
		return core.Song{}, fmt.Errorf("storage: cannot query chart: %w", err)
	}

	if err := json.Unmarshal([]byte(notes), &song.Notes); err != nil {
		return core.Song{}, fmt.Errorf("storage: cannot decode notes of %q: %w", id, err)
	}
	song.Difficulty, _ = core.ParseDifficulty(difficulty)
	return song, nil
}

// ListCharts returns the library ordered by title.
func (s *Store) ListCharts() ([]ChartEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, title, genre, difficulty, note_count, length_ms, chart_hash, created_at
		 FROM charts
		 ORDER BY title, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query charts: %w", err)
	}
	defer rows.Close()

	var entries []ChartEntry
	for rows.Next() {
		var (
			e          ChartEntry
			difficulty string
			createdAt  any
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Genre, &difficulty, &e.Notes, &e.LengthMs, &e.Hash, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty, _ = core.ParseDifficulty(difficulty)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// DeleteChart removes a chart from the library. Replays are kept.
func (s *Store) DeleteChart(id string) error {
	res, err := s.db.Exec("DELETE FROM charts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete chart: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: chart %q", ErrNotFound, id)
	}
	return nil
}

// RegisterCharts adds every library chart to reg. Charts whose ID is
// already registered (e.g. a built-in of the same name) are skipped and
// reported in the returned errors.
func (s *Store) RegisterCharts(reg *registry.Registry) (int, []error) {
	entries, err := s.ListCharts()
	if err != nil {
		return 0, []error{err}
	}

	var errs []error
	added := 0
	for _, e := range entries {
		song, err := s.LoadChart(e.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := reg.Add(e.ID, registry.SourceLibrary, func() core.Song { return song }); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errs
}
