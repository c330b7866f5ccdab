package core

// GameScore is the result of one play-through.
type GameScore struct {
	Score    int `json:"score"`
	Combo    int `json:"combo"`
	MaxCombo int `json:"max_combo"`
	Perfect  int `json:"perfect"`
	Great    int `json:"great"`
	Miss     int `json:"miss"`
}

// Judged returns the number of notes that received a judgment.
func (g GameScore) Judged() int {
	return g.Perfect + g.Great + g.Miss
}

// Rank grades the result against a baseline of 100 points per judged note.
// Multipliers let a strong run exceed the baseline, hence the S tier above 1.2.
func (g GameScore) Rank() string {
	total := g.Judged() * 100
	if total == 0 {
		return "F"
	}
	ratio := float64(g.Score) / float64(total)
	switch {
	case ratio > 1.2:
		return "S"
	case ratio > 0.9:
		return "A"
	case ratio > 0.7:
		return "B"
	case ratio > 0.5:
		return "C"
	default:
		return "D"
	}
}

// ScoreState accumulates score, combo and per-category counts.
type ScoreState struct {
	rules    Rules
	score    int
	combo    int
	maxCombo int
	perfect  int
	great    int
	miss     int
}

// NewScoreState creates an empty score accumulator.
func NewScoreState(rules Rules) *ScoreState {
	return &ScoreState{rules: rules}
}

// Multiplier returns the factor applied to the next scored hit.
// It is derived from the current combo, never stored.
func (s *ScoreState) Multiplier() int {
	step := s.rules.ComboStep
	if step <= 0 {
		step = 10
	}
	m := s.combo/step + 1
	if s.rules.MaxMultiplier > 0 && m > s.rules.MaxMultiplier {
		m = s.rules.MaxMultiplier
	}
	return m
}

// Apply folds a judgment into the running totals.
func (s *ScoreState) Apply(ev JudgmentEvent) {
	switch ev.Kind {
	case JudgmentPerfect, JudgmentGreat:
		s.score += s.rules.BaseScore(ev.Kind) * s.Multiplier()
		s.combo++
		if s.combo > s.maxCombo {
			s.maxCombo = s.combo
		}
		if ev.Kind == JudgmentPerfect {
			s.perfect++
		} else {
			s.great++
		}
	case JudgmentMiss:
		s.combo = 0
		s.miss++
	}
}

// Combo returns the current combo.
func (s *ScoreState) Combo() int {
	return s.combo
}

// Snapshot returns the current totals.
func (s *ScoreState) Snapshot() GameScore {
	return GameScore{
		Score:    s.score,
		Combo:    s.combo,
		MaxCombo: s.maxCombo,
		Perfect:  s.perfect,
		Great:    s.great,
		Miss:     s.miss,
	}
}
