// Package config provides YAML-based configuration for the rhythm game:
// timing windows, scoring, playfield geometry and key bindings.
package config

import (
	"errors"
	"fmt"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// RhythmConfig contains all tunable settings of the game.
type RhythmConfig struct {
	Judgment  JudgmentConfig  `yaml:"judgment"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Keys      KeyConfig       `yaml:"keys"`
	TickRate  int             `yaml:"tick_rate"` // Frames per second of the play screen
}

// JudgmentConfig defines the hit windows, in milliseconds.
type JudgmentConfig struct {
	PerfectMs int64 `yaml:"perfect_ms"`
	GreatMs   int64 `yaml:"great_ms"`
	GraceMs   int64 `yaml:"grace_ms"` // Wait after the last note before the song ends
}

// ScoringConfig defines base scores and the combo multiplier curve.
type ScoringConfig struct {
	Perfect       int `yaml:"perfect"`
	Great         int `yaml:"great"`
	ComboStep     int `yaml:"combo_step"`
	MaxMultiplier int `yaml:"max_multiplier"`
}

// PlayfieldConfig defines how notes are laid out on screen.
// Positions follow hitZone - (noteTime - now) * noteSpeed / trackHeight * 100,
// in percent of the track height.
type PlayfieldConfig struct {
	NoteSpeed   float64 `yaml:"note_speed"`   // Track units per millisecond
	HitZone     float64 `yaml:"hit_zone"`     // Hit line position, percent from the top
	TrackHeight float64 `yaml:"track_height"` // Track length in the same units as note_speed
	LaneWidth   int     `yaml:"lane_width"`   // Characters per lane
	FlashMs     int     `yaml:"flash_ms"`     // How long a pressed lane stays lit
}

// KeyConfig binds keys (Bubble Tea key names) to actions.
type KeyConfig struct {
	Lanes   []string `yaml:"lanes"`
	Pause   []string `yaml:"pause"`
	Restart []string `yaml:"restart"`
	Quit    []string `yaml:"quit"`
}

// Rules converts the judgment and scoring sections into engine rules.
func (c RhythmConfig) Rules() core.Rules {
	return core.Rules{
		PerfectMs:     c.Judgment.PerfectMs,
		GreatMs:       c.Judgment.GreatMs,
		GraceMs:       c.Judgment.GraceMs,
		ScorePerfect:  c.Scoring.Perfect,
		ScoreGreat:    c.Scoring.Great,
		ComboStep:     c.Scoring.ComboStep,
		MaxMultiplier: c.Scoring.MaxMultiplier,
	}
}

// Validate reports every problem with the configuration at once.
func (c RhythmConfig) Validate() error {
	var errs []error

	j := c.Judgment
	if j.PerfectMs <= 0 || j.GreatMs <= 0 {
		errs = append(errs, fmt.Errorf("judgment windows must be positive (perfect=%d great=%d)", j.PerfectMs, j.GreatMs))
	}
	if j.PerfectMs > j.GreatMs {
		errs = append(errs, fmt.Errorf("perfect_ms %d exceeds great_ms %d", j.PerfectMs, j.GreatMs))
	}
	if j.GraceMs < 0 {
		errs = append(errs, fmt.Errorf("grace_ms must not be negative, got %d", j.GraceMs))
	}

	s := c.Scoring
	if s.Perfect < 0 || s.Great < 0 {
		errs = append(errs, errors.New("base scores must not be negative"))
	}
	if s.ComboStep <= 0 || s.MaxMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("combo_step and max_multiplier must be positive (got %d, %d)", s.ComboStep, s.MaxMultiplier))
	}

	p := c.Playfield
	if p.NoteSpeed <= 0 || p.TrackHeight <= 0 {
		errs = append(errs, errors.New("note_speed and track_height must be positive"))
	}
	if p.HitZone <= 0 || p.HitZone > 100 {
		errs = append(errs, fmt.Errorf("hit_zone must be in (0, 100], got %g", p.HitZone))
	}
	if p.LaneWidth < 1 {
		errs = append(errs, fmt.Errorf("lane_width must be at least 1, got %d", p.LaneWidth))
	}

	if len(c.Keys.Lanes) != core.LaneCount {
		errs = append(errs, fmt.Errorf("keys.lanes needs %d keys, got %d", core.LaneCount, len(c.Keys.Lanes)))
	}
	seen := make(map[string]string)
	bind := func(action string, keys []string) {
		for _, k := range keys {
			if k == "" {
				errs = append(errs, fmt.Errorf("empty key bound to %s", action))
				continue
			}
			if prev, ok := seen[k]; ok && prev != action {
				errs = append(errs, fmt.Errorf("key %q bound to both %s and %s", k, prev, action))
			}
			seen[k] = action
		}
	}
	for i, k := range c.Keys.Lanes {
		bind(fmt.Sprintf("lane %d", i), []string{k})
	}
	bind("pause", c.Keys.Pause)
	bind("restart", c.Keys.Restart)
	bind("quit", c.Keys.Quit)

	if c.TickRate < 1 || c.TickRate > 240 {
		errs = append(errs, fmt.Errorf("tick_rate must be in [1, 240], got %d", c.TickRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
