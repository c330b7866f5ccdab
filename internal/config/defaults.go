package config

import (
	_ "embed"
)

//go:embed defaults/rhythm.yaml
var defaultRhythmYAML []byte

// DefaultRhythmConfig returns the hardcoded configuration, used when the
// embedded YAML cannot be parsed.
func DefaultRhythmConfig() RhythmConfig {
	return RhythmConfig{
		Judgment: JudgmentConfig{
			PerfectMs: 50,
			GreatMs:   120,
			GraceMs:   1000,
		},
		Scoring: ScoringConfig{
			Perfect:       100,
			Great:         50,
			ComboStep:     10,
			MaxMultiplier: 8,
		},
		Playfield: PlayfieldConfig{
			NoteSpeed:   0.8,
			HitZone:     92,
			TrackHeight: 1120,
			LaneWidth:   7,
			FlashMs:     120,
		},
		Keys: KeyConfig{
			Lanes:   []string{"a", "s", "k", "l"},
			Pause:   []string{"p", "esc"},
			Restart: []string{"r"},
			Quit:    []string{"q", "ctrl+c"},
		},
		TickRate: 60,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRhythmYAML
}
