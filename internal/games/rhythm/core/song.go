package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Difficulty is the advertised difficulty of a song.
type Difficulty string

// MaxNoteTimeMs is the latest note time Ingest accepts. Later notes are
// dropped so note times plus the end-of-song grace always fit in an int64.
const MaxNoteTimeMs = math.MaxInt32

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty parses a difficulty name, case-insensitively.
// Unknown names yield DifficultyMedium and false.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToUpper(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return DifficultyMedium, false
}

// Song is an immutable chart template. Sessions copy the notes before
// mutating them, so one Song can back any number of play-throughs.
type Song struct {
	ID         string
	Title      string
	Genre      string
	Difficulty Difficulty
	Notes      []Note // Sorted by TimeMs, all Pending
}

// CloneNotes returns a fresh Pending copy of the song's notes.
func (s Song) CloneNotes() []Note {
	notes := make([]Note, len(s.Notes))
	copy(notes, s.Notes)
	for i := range notes {
		notes[i].State = NotePending
	}
	return notes
}

// LengthMs returns the time of the last note, or 0 for an empty chart.
func (s Song) LengthMs() int64 {
	if len(s.Notes) == 0 {
		return 0
	}
	return s.Notes[len(s.Notes)-1].TimeMs
}

// ChartHash identifies the playable content of a chart (lanes and times only),
// so replays can detect that the chart they were recorded on has changed.
func ChartHash(notes []Note) string {
	h := sha256.New()
	var buf [16]byte
	for _, n := range notes {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(n.Lane))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(n.TimeMs))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// RawNote is an untrusted note as supplied by a chart file or generator.
type RawNote struct {
	ID   string  `json:"id,omitempty" yaml:"id,omitempty"`
	Lane int     `json:"lane" yaml:"lane"`
	Time float64 `json:"time" yaml:"time"`
}

// RawSong is an untrusted chart as supplied by a song source.
type RawSong struct {
	ID         string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title      string    `json:"title" yaml:"title"`
	Genre      string    `json:"genre" yaml:"genre"`
	Difficulty string    `json:"difficulty" yaml:"difficulty"`
	Notes      []RawNote `json:"notes" yaml:"notes"`
}

// IngestReport describes the corrections applied while ingesting a chart.
type IngestReport struct {
	Clamped           int  // Notes whose lane was pulled into range
	Dropped           int  // Notes with non-finite, negative or too late times
	Renamed           int  // Notes given a generated ID (missing or duplicate)
	Reordered         bool // Input was not sorted by time
	UnknownDifficulty bool
}

// Clean reports whether the chart was accepted without corrections.
func (r IngestReport) Clean() bool {
	return r.Clamped == 0 && r.Dropped == 0 && r.Renamed == 0 && !r.Reordered && !r.UnknownDifficulty
}

// String summarises the report for logging.
func (r IngestReport) String() string {
	return fmt.Sprintf("clamped=%d dropped=%d renamed=%d reordered=%t unknown_difficulty=%t",
		r.Clamped, r.Dropped, r.Renamed, r.Reordered, r.UnknownDifficulty)
}

// Ingest validates and normalizes an untrusted chart. Lanes are clamped into
// [0, LaneCount), non-finite or negative times and times past MaxNoteTimeMs
// are dropped, and notes are stably sorted by time so the engine never sees
// an invalid chart.
func Ingest(raw RawSong) (Song, IngestReport) {
	var report IngestReport

	difficulty, ok := ParseDifficulty(raw.Difficulty)
	if !ok {
		report.UnknownDifficulty = true
	}

	notes := make([]Note, 0, len(raw.Notes))
	seen := make(map[string]bool, len(raw.Notes))
	var prev int64 = math.MinInt64
	for i, rn := range raw.Notes {
		if math.IsNaN(rn.Time) || math.IsInf(rn.Time, 0) || rn.Time < 0 || rn.Time > MaxNoteTimeMs {
			report.Dropped++
			continue
		}

		lane := rn.Lane
		if lane < 0 || lane >= LaneCount {
			lane = clampLane(lane)
			report.Clamped++
		}

		id := rn.ID
		if id == "" || seen[id] {
			id = fmt.Sprintf("note-%d", i)
			for seen[id] {
				id += "_"
			}
			report.Renamed++
		}
		seen[id] = true

		t := int64(math.Floor(rn.Time))
		if t < prev {
			report.Reordered = true
		}
		prev = t

		notes = append(notes, Note{ID: id, Lane: lane, TimeMs: t, State: NotePending})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].TimeMs < notes[j].TimeMs
	})

	return Song{
		ID:         raw.ID,
		Title:      raw.Title,
		Genre:      raw.Genre,
		Difficulty: difficulty,
		Notes:      notes,
	}, report
}

// ToRaw converts a song back into its untrusted form, e.g. for export.
func (s Song) ToRaw() RawSong {
	raw := RawSong{
		ID:         s.ID,
		Title:      s.Title,
		Genre:      s.Genre,
		Difficulty: string(s.Difficulty),
		Notes:      make([]RawNote, len(s.Notes)),
	}
	for i, n := range s.Notes {
		raw.Notes[i] = RawNote{ID: n.ID, Lane: n.Lane, Time: float64(n.TimeMs)}
	}
	return raw
}

func clampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= LaneCount {
		return LaneCount - 1
	}
	return lane
}
