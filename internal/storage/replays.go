package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// Verification failures.
var (
	ErrChartChanged  = errors.New("chart changed since the replay was recorded")
	ErrRulesChanged  = errors.New("rules changed since the replay was recorded")
	ErrScoreMismatch = errors.New("replayed score differs from the recorded result")
)

// Replay is a recorded play-through: the accepted inputs plus the result
// they produced, tied to the chart they were played on.
type Replay struct {
	ID        int64
	SongID    string
	ChartHash string
	RulesHash string // Rules.Fingerprint at record time, empty for old rows
	Inputs    []core.InputRecord
	Result    core.GameScore
	CreatedAt time.Time
}

// SaveReplay records a play-through.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	inputs, err := json.Marshal(r.Inputs)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inputs: %w", err)
	}
	if r.Inputs == nil {
		inputs = []byte("[]")
	}

	res, err := s.db.Exec(
		`INSERT INTO replays (song_id, chart_hash, rules_hash, inputs, score, max_combo, perfect, great, miss)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SongID, r.ChartHash, r.RulesHash, string(inputs),
		r.Result.Score, r.Result.MaxCombo, r.Result.Perfect, r.Result.Great, r.Result.Miss,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const replayColumns = `id, song_id, chart_hash, rules_hash, inputs, score, max_combo, perfect, great, miss, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var (
		r         Replay
		inputs    string
		createdAt any
	)
	if err := row.Scan(
		&r.ID, &r.SongID, &r.ChartHash, &r.RulesHash, &inputs,
		&r.Result.Score, &r.Result.MaxCombo, &r.Result.Perfect, &r.Result.Great, &r.Result.Miss,
		&createdAt,
	); err != nil {
		return Replay{}, err
	}
	if err := json.Unmarshal([]byte(inputs), &r.Inputs); err != nil {
		return Replay{}, fmt.Errorf("storage: cannot decode inputs of replay %d: %w", r.ID, err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// ReplayByID retrieves a replay by its ID.
func (s *Store) ReplayByID(id int64) (Replay, error) {
	r, err := scanReplay(s.db.QueryRow(
		`SELECT `+replayColumns+` FROM replays WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, fmt.Errorf("%w: replay %d", ErrNotFound, id)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return r, nil
}

// Replays retrieves the most recent replays of a song, newest first.
// An empty songID lists replays of every song.
func (s *Store) Replays(songID string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE ? = '' OR song_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		songID, songID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return replays, nil
}

// Verify re-simulates the replay on song under rules and checks that it
// reproduces the recorded result. It returns the replayed score along with
// ErrChartChanged, ErrRulesChanged or ErrScoreMismatch on failure. Replays
// recorded without a rules fingerprint skip the rules check.
func (r Replay) Verify(song core.Song, rules core.Rules) (core.GameScore, error) {
	if hash := core.ChartHash(song.Notes); hash != r.ChartHash {
		return core.GameScore{}, fmt.Errorf("%w: replay %d", ErrChartChanged, r.ID)
	}
	if r.RulesHash != "" && r.RulesHash != rules.Fingerprint() {
		return core.GameScore{}, fmt.Errorf("%w: replay %d", ErrRulesChanged, r.ID)
	}
	got := core.Replay(song, r.Inputs, rules)
	if got.Score != r.Result.Score || got.MaxCombo != r.Result.MaxCombo ||
		got.Perfect != r.Result.Perfect || got.Great != r.Result.Great || got.Miss != r.Result.Miss {
		return got, fmt.Errorf("%w: replay %d scored %d, recorded %d", ErrScoreMismatch, r.ID, got.Score, r.Result.Score)
	}
	return got, nil
}
