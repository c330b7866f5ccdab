package core

import (
	"sort"
	"time"
)

// Replay re-runs a recorded input log against song on a simulated clock and
// returns the final score. Because presses sweep expired notes before
// judging, the result depends only on the logical input times, not on the
// frame rate of the original run.
func Replay(song Song, inputs []InputRecord, rules Rules) GameScore {
	ordered := make([]InputRecord, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AtMs < ordered[j].AtMs
	})

	mt := NewManualTime()
	s := NewSession(song, WithClock(mt.Now), WithRules(rules))

	var at int64
	for _, in := range ordered {
		if in.AtMs > at {
			mt.AdvanceMs(in.AtMs - at)
			at = in.AtMs
		}
		if s.State() == SessionFinished {
			break
		}
		s.Press(in.Lane)
		s.Release(in.Lane)
	}

	end := song.LengthMs() + rules.GraceMs + 1
	if end > at {
		mt.AdvanceMs(end - at)
	}
	for s.State() != SessionFinished {
		if res := s.Tick(); res.Finished {
			return res.Score
		}
		mt.Advance(time.Millisecond)
	}
	score, _ := s.Result()
	return score
}
