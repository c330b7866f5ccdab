// Package tui provides the Bubble Tea front-end: the song menu, the play
// screen, the replay browser and the SSH server that serves them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// playGen numbers play screens so a tick loop left over from a previous
// song cannot drive the next one.
var playGen atomic.Uint64

// TickMsg is sent to trigger a session tick.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// releaseMsg lifts a lane after a press. Terminals report key presses only,
// so the play screen synthesizes the release after the configured flash
// time. A newer press of the same lane bumps seq and cancels the pending
// release.
type releaseMsg struct {
	gen  uint64
	lane int
	seq  int
}

func releaseCmd(gen uint64, lane, seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return releaseMsg{gen: gen, lane: lane, seq: seq}
	})
}
