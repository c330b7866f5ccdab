package core

// Snapshot is a read-only view of a session for renderers.
type Snapshot struct {
	SongID     string
	Title      string
	State      SessionState
	NowMs      int64
	Score      GameScore
	Multiplier int
	Pending    []Note // Pending notes in time order
	Held       [LaneCount]bool
	Last       JudgmentEvent // Kind is JudgmentNone before the first judgment
	Total      int
	Remaining  int
	LengthMs   int64
}

// Progress returns how far through the chart the session is, in [0,1].
func (s Snapshot) Progress() float64 {
	if s.LengthMs <= 0 {
		return 1
	}
	p := float64(s.NowMs) / float64(s.LengthMs)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Snapshot captures the current view. It does not advance the session;
// while paused NowMs stays frozen.
func (s *Session) Snapshot() Snapshot {
	now := s.lastMs
	if s.state != SessionFinished {
		now = s.clock.Now()
	}

	pending := make([]Note, 0, s.judge.Remaining())
	for i := s.judge.cursor; i < len(s.notes); i++ {
		if s.notes[i].State == NotePending {
			pending = append(pending, s.notes[i])
		}
	}

	return Snapshot{
		SongID:     s.song.ID,
		Title:      s.song.Title,
		State:      s.state,
		NowMs:      now,
		Score:      s.score.Snapshot(),
		Multiplier: s.score.Multiplier(),
		Pending:    pending,
		Held:       s.held,
		Last:       s.last,
		Total:      len(s.notes),
		Remaining:  len(pending),
		LengthMs:   s.song.LengthMs(),
	}
}
