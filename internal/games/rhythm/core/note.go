// Package core implements the Bit Hero rhythm engine: chart generation,
// the pause-aware play clock, hit judgment, scoring and the session loop.
// It has no dependencies on Bubble Tea or storage so every rule can be
// exercised from plain tests with an injected clock.
package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// LaneCount is the number of lanes notes travel through.
const LaneCount = 4

// NoteState is the judgment state of a single note.
// Transitions are one-way: Pending -> Hit or Pending -> Missed.
type NoteState uint8

const (
	NotePending NoteState = iota
	NoteHit
	NoteMissed
)

// String returns a human-readable name for the state.
func (s NoteState) String() string {
	switch s {
	case NotePending:
		return "pending"
	case NoteHit:
		return "hit"
	case NoteMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the note has been judged.
func (s NoteState) Terminal() bool {
	return s == NoteHit || s == NoteMissed
}

// Note is a single scheduled strike.
type Note struct {
	ID     string    `json:"id" yaml:"id"`
	Lane   int       `json:"lane" yaml:"lane"`
	TimeMs int64     `json:"time" yaml:"time"` // Scheduled hit time in ms from song start
	State  NoteState `json:"-" yaml:"-"`
}

// String formats the note for logs and test failures.
func (n Note) String() string {
	return fmt.Sprintf("%s(lane=%d t=%d %s)", n.ID, n.Lane, n.TimeMs, n.State)
}

// Judgment is the outcome category of a judged note.
type Judgment uint8

const (
	JudgmentNone Judgment = iota
	JudgmentPerfect
	JudgmentGreat
	JudgmentMiss
)

// String returns the feedback label for the judgment.
func (j Judgment) String() string {
	switch j {
	case JudgmentPerfect:
		return "PERFECT"
	case JudgmentGreat:
		return "GREAT"
	case JudgmentMiss:
		return "MISS"
	default:
		return ""
	}
}

// JudgmentEvent is emitted exactly once per note, when it leaves Pending.
type JudgmentEvent struct {
	Kind   Judgment
	Note   Note  // Copy of the note after the transition
	AtMs   int64 // Logical time the judgment was made
	DiffMs int64 // AtMs - Note.TimeMs; positive means late
}

// Rules holds the timing windows and scoring constants.
type Rules struct {
	PerfectMs     int64 // Inclusive perfect window
	GreatMs       int64 // Exclusive acceptance window, also the miss deadline
	GraceMs       int64 // Delay after the last note before the session ends
	ScorePerfect  int
	ScoreGreat    int
	ComboStep     int // Combo hits per multiplier step
	MaxMultiplier int
}

// DefaultRules returns the standard hit windows and scoring table.
func DefaultRules() Rules {
	return Rules{
		PerfectMs:     50,
		GreatMs:       120,
		GraceMs:       1000,
		ScorePerfect:  100,
		ScoreGreat:    50,
		ComboStep:     10,
		MaxMultiplier: 8,
	}
}

// Fingerprint returns a stable hex digest of every rule, so a stored run can
// tell whether it was played under the same windows and scoring table.
func (r Rules) Fingerprint() string {
	sum := sha256.Sum256(fmt.Appendf(nil, "perfect=%d great=%d grace=%d score=%d/%d combo=%d max=%d",
		r.PerfectMs, r.GreatMs, r.GraceMs, r.ScorePerfect, r.ScoreGreat, r.ComboStep, r.MaxMultiplier))
	return hex.EncodeToString(sum[:])
}

// BaseScore returns the unmultiplied points for a judgment.
func (r Rules) BaseScore(kind Judgment) int {
	switch kind {
	case JudgmentPerfect:
		return r.ScorePerfect
	case JudgmentGreat:
		return r.ScoreGreat
	default:
		return 0
	}
}
