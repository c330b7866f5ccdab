package core

import "time"

// Clock tracks logical playback time, excluding every paused interval.
// Wall time comes from an injected source so tests and replays can drive it.
type Clock struct {
	now               func() time.Time
	activeStart       time.Time
	pausedAccumulated time.Duration
	pauseBeganAt      time.Time
	paused            bool
}

// NewClock creates a clock reading wall time from now.
// A nil source falls back to time.Now. The clock must be started before use.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start (re)initializes the clock at the current wall time and clears
// any pause state.
func (c *Clock) Start() {
	c.activeStart = c.now()
	c.pausedAccumulated = 0
	c.pauseBeganAt = time.Time{}
	c.paused = false
}

// Elapsed returns the active playback time. While paused the value is
// frozen at the instant the pause began.
func (c *Clock) Elapsed() time.Duration {
	end := c.now()
	if c.paused {
		end = c.pauseBeganAt
	}
	return end.Sub(c.activeStart) - c.pausedAccumulated
}

// Now returns the active playback time in milliseconds.
func (c *Clock) Now() int64 {
	return c.Elapsed().Milliseconds()
}

// Pause freezes the clock. Pausing an already paused clock is a no-op.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.pauseBeganAt = c.now()
	c.paused = true
}

// Resume continues the clock, discounting the time spent paused.
// Resuming a running clock is a no-op.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.pausedAccumulated += c.now().Sub(c.pauseBeganAt)
	c.pauseBeganAt = time.Time{}
	c.paused = false
}

// Paused reports whether the clock is currently frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// ManualTime is a hand-cranked wall clock for tests and replay simulation.
type ManualTime struct {
	t time.Time
}

// NewManualTime returns a manual clock positioned at an arbitrary fixed epoch.
func NewManualTime() *ManualTime {
	return &ManualTime{t: time.Unix(1_700_000_000, 0)}
}

// Now returns the current manual time; pass it to NewClock.
func (m *ManualTime) Now() time.Time {
	return m.t
}

// Advance moves the manual time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.t = m.t.Add(d)
}

// AdvanceMs moves the manual time forward by ms milliseconds.
func (m *ManualTime) AdvanceMs(ms int64) {
	m.Advance(time.Duration(ms) * time.Millisecond)
}
