package core

import "time"

// SessionState is the lifecycle state of a play-through.
type SessionState uint8

const (
	SessionRunning SessionState = iota
	SessionPaused
	SessionFinished
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case SessionRunning:
		return "running"
	case SessionPaused:
		return "paused"
	case SessionFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// InputKind distinguishes lane presses from releases.
type InputKind uint8

const (
	InputPress InputKind = iota
	InputRelease
)

// InputEvent is a discrete lane event from an input adapter.
type InputEvent struct {
	Kind InputKind
	Lane int
}

// InputRecord is an accepted press and the logical time it landed,
// kept so a run can be replayed and verified.
type InputRecord struct {
	Lane int   `json:"lane"`
	AtMs int64 `json:"at"`
}

// Feedback is notified of every judgment (audio/visual cues, metrics).
// The engine ignores anything a feedback implementation does.
type Feedback interface {
	OnJudgment(kind Judgment)
}

// FeedbackFunc adapts a plain function to Feedback.
type FeedbackFunc func(kind Judgment)

// OnJudgment calls f(kind).
func (f FeedbackFunc) OnJudgment(kind Judgment) {
	f(kind)
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the wall time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithRules overrides the timing windows and scoring table.
func WithRules(r Rules) Option {
	return func(s *Session) {
		s.rules = r
	}
}

// WithFeedback registers a judgment listener. May be given more than once.
func WithFeedback(f Feedback) Option {
	return func(s *Session) {
		if f != nil {
			s.feedback = append(s.feedback, f)
		}
	}
}

// TickResult is returned by Session.Tick.
type TickResult struct {
	NowMs    int64
	State    SessionState
	Events   []JudgmentEvent // Judgments made by this tick's sweep
	Finished bool            // True only on the tick that ended the session
	Score    GameScore       // Final score when Finished, running totals otherwise
}

// Session drives one play-through of a song. It exclusively owns the
// note states, clock and score; nothing is shared with other sessions.
// Session is not safe for concurrent use: input and ticks must be applied
// from a single goroutine (the Bubble Tea update loop does this).
type Session struct {
	song     Song
	rules    Rules
	now      func() time.Time
	feedback []Feedback

	clock  *Clock
	notes  []Note
	judge  *Judge
	score  *ScoreState
	state  SessionState
	held   [LaneCount]bool
	last   JudgmentEvent
	inputs []InputRecord
	result *GameScore
	lastMs int64
}

// NewSession creates a running session for song. The clock starts immediately.
func NewSession(song Song, opts ...Option) *Session {
	s := &Session{
		song:  song,
		rules: DefaultRules(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clock = NewClock(s.now)
	s.Restart()
	return s
}

// Restart reinitializes every owned component from the song template and
// returns to Running. It is the only way out of Finished.
func (s *Session) Restart() {
	s.notes = s.song.CloneNotes()
	s.judge = NewJudge(s.notes, s.rules)
	s.score = NewScoreState(s.rules)
	s.state = SessionRunning
	s.held = [LaneCount]bool{}
	s.last = JudgmentEvent{}
	s.inputs = nil
	s.result = nil
	s.lastMs = 0
	s.clock.Start()
}

// Tick advances the session: sweeps expired notes, routes the resulting
// misses to the score and feedback, and checks for the end of the song.
// Ticks while paused or finished do nothing.
func (s *Session) Tick() TickResult {
	if s.state != SessionRunning {
		return TickResult{NowMs: s.lastMs, State: s.state, Score: s.score.Snapshot()}
	}

	now := s.clock.Now()
	s.lastMs = now

	events := s.judge.Sweep(now)
	for _, ev := range events {
		s.record(ev)
	}

	result := TickResult{
		NowMs:  now,
		State:  s.state,
		Events: events,
		Score:  s.score.Snapshot(),
	}

	if s.done(now) {
		final := s.finish()
		result.State = s.state
		result.Finished = true
		result.Score = final
	}
	return result
}

// done is the termination condition: every note is terminal and the grace
// period after the last scheduled note has elapsed. An empty chart is done
// immediately.
func (s *Session) done(now int64) bool {
	if len(s.notes) == 0 {
		return true
	}
	last := s.notes[len(s.notes)-1]
	return s.judge.AllTerminal() && now > last.TimeMs+s.rules.GraceMs
}

func (s *Session) finish() GameScore {
	final := s.score.Snapshot()
	s.result = &final
	s.state = SessionFinished
	return final
}

// HandleInput applies an input adapter event.
func (s *Session) HandleInput(ev InputEvent) (JudgmentEvent, bool) {
	switch ev.Kind {
	case InputPress:
		return s.Press(ev.Lane)
	case InputRelease:
		s.Release(ev.Lane)
	}
	return JudgmentEvent{}, false
}

// Press judges a lane press at the current logical time. Presses while
// paused or finished, or that match no note, change nothing.
//
// Notes that expired since the last tick are swept first, so misses and hits
// reach the score in logical-time order whatever the frame rate. This is what
// makes a recorded input log replay to the same score.
func (s *Session) Press(lane int) (JudgmentEvent, bool) {
	if s.state != SessionRunning || lane < 0 || lane >= LaneCount {
		return JudgmentEvent{}, false
	}
	s.held[lane] = true

	now := s.clock.Now()
	s.lastMs = now
	for _, miss := range s.judge.Sweep(now) {
		s.record(miss)
	}
	s.inputs = append(s.inputs, InputRecord{Lane: lane, AtMs: now})

	ev, ok := s.judge.OnInput(lane, now)
	if ok {
		s.record(ev)
	}
	return ev, ok
}

// Release clears the held flag of a lane.
func (s *Session) Release(lane int) {
	if lane < 0 || lane >= LaneCount {
		return
	}
	s.held[lane] = false
}

func (s *Session) record(ev JudgmentEvent) {
	s.score.Apply(ev)
	s.last = ev
	for _, f := range s.feedback {
		f.OnJudgment(ev.Kind)
	}
}

// Pause freezes the clock and sweeping. No-op unless running.
func (s *Session) Pause() {
	if s.state != SessionRunning {
		return
	}
	s.clock.Pause()
	s.state = SessionPaused
}

// Resume continues a paused session. No-op unless paused.
func (s *Session) Resume() {
	if s.state != SessionPaused {
		return
	}
	s.clock.Resume()
	s.state = SessionRunning
}

// TogglePause switches between Running and Paused.
func (s *Session) TogglePause() {
	if s.state == SessionPaused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Abort ends a session early and returns its score. It returns false if
// the session already finished, since that score was returned by Tick.
func (s *Session) Abort() (GameScore, bool) {
	if s.state == SessionFinished {
		return GameScore{}, false
	}
	for i := range s.held {
		s.held[i] = false
	}
	return s.finish(), true
}

// State returns the lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Result returns the final score once the session has finished.
func (s *Session) Result() (GameScore, bool) {
	if s.result == nil {
		return GameScore{}, false
	}
	return *s.result, true
}

// Song returns the template the session plays.
func (s *Session) Song() Song {
	return s.song
}

// Rules returns the rules in effect.
func (s *Session) Rules() Rules {
	return s.rules
}

// Inputs returns a copy of the presses recorded since the last restart.
func (s *Session) Inputs() []InputRecord {
	out := make([]InputRecord, len(s.inputs))
	copy(out, s.inputs)
	return out
}

// Notes returns a copy of every note with its current state, for review.
func (s *Session) Notes() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}
