package core

import (
	"fmt"
	"math"
)

// Generator constants. Times are in milliseconds.
const (
	GenStartMs     = 2000 // First note time
	GenMinSpacing  = 130  // Floor on the gap between steps
	GenBaseSpacing = 650  // Spacing at density 0
	GenDensityStep = 75   // Spacing removed per density unit
	GenChordMinDen = 2.0  // Densities below this never produce chords
)

// Generate produces the deterministic chart for a song. The same
// (songID, seed, lengthMs, density) always yields the same notes, in the
// same order, which keeps built-in charts stable across builds and lets
// replays be verified.
//
// Lane choice and rhythm are driven by sine waves over the running time
// rather than an RNG, so the output does not depend on any generator state.
func Generate(songID int, seed float64, lengthMs int, density float64) []Note {
	var notes []Note
	id := float64(songID)
	baseSpacing := GenBaseSpacing - density*GenDensityStep
	chordThreshold := 0.94 - density*0.04
	chordsAllowed := density >= GenChordMinDen

	for t := float64(GenStartMs); t < float64(lengthMs); {
		at := int64(math.Floor(t))

		chordFactor := math.Abs(math.Sin(t*seed*0.77 + id))
		lane1 := int(math.Floor(math.Abs(math.Sin(t*seed+id)) * LaneCount))
		lane1 = clampLane(lane1)

		notes = append(notes, Note{
			ID:     fmt.Sprintf("s%d-n%d-1", songID, at),
			Lane:   lane1,
			TimeMs: at,
		})

		if chordsAllowed && chordFactor > chordThreshold {
			lane2 := (lane1 + 1 + int(math.Floor(chordFactor*2))) % LaneCount
			notes = append(notes, Note{
				ID:     fmt.Sprintf("s%d-n%d-2", songID, at),
				Lane:   lane2,
				TimeMs: at,
			})
		}

		// Syncopated step so the pattern does not feel metronomic
		variation := math.Sin(t*0.005+seed) * (baseSpacing * 0.45)
		t += math.Max(GenMinSpacing, baseSpacing+variation)
	}

	return notes
}

// GenParams bundles the generator inputs for a built-in or custom song.
type GenParams struct {
	SongID   int     `yaml:"id"`
	Seed     float64 `yaml:"seed"`
	LengthMs int     `yaml:"length_ms"`
	Density  float64 `yaml:"density"`
}

// Generate runs the generator with these parameters.
func (p GenParams) Generate() []Note {
	return Generate(p.SongID, p.Seed, p.LengthMs, p.Density)
}
