package config

import (
	"fmt"
	"strings"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// DifficultyPreset represents a named difficulty level for generated charts.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets from easiest to hardest.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// densityBands are the generator density ranges the built-in catalog uses
// for each advertised difficulty.
var densityBands = map[DifficultyPreset][2]float64{
	DifficultyEasy:   {1.0, 1.8},
	DifficultyNormal: {2.0, 3.5},
	DifficultyHard:   {3.8, 6.5},
}

// ParsePreset parses a preset name, case-insensitively. "medium" is accepted
// as an alias of normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "medium":
		return DifficultyNormal, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// DensityBand returns the density range of a preset.
func DensityBand(p DifficultyPreset) (lo, hi float64) {
	band, ok := densityBands[p]
	if !ok {
		band = densityBands[DifficultyNormal]
	}
	return band[0], band[1]
}

// DensityForPreset interpolates inside the preset's band. level is clamped
// to [0, 1]; 0.5 gives the middle of the band.
func DensityForPreset(p DifficultyPreset, level float64) float64 {
	lo, hi := DensityBand(p)
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	return lo + level*(hi-lo)
}

// SongDifficulty maps a preset to the label shown in the song list.
func SongDifficulty(p DifficultyPreset) core.Difficulty {
	switch p {
	case DifficultyEasy:
		return core.DifficultyEasy
	case DifficultyHard:
		return core.DifficultyHard
	default:
		return core.DifficultyMedium
	}
}
