package core

// Judge matches lane input and expiry sweeps against the pending notes of
// one chart. Both paths check NotePending before transitioning, so a note
// can never be judged twice regardless of how input and ticks interleave.
type Judge struct {
	notes []Note
	rules Rules

	// Every note before cursor is terminal. Notes are sorted by time, so
	// both scans can start here and stop at the first note out of range.
	cursor int
}

// NewJudge creates a judge over notes, which must be sorted by time.
// The judge mutates the slice in place.
func NewJudge(notes []Note, rules Rules) *Judge {
	j := &Judge{notes: notes, rules: rules}
	j.advance()
	return j
}

// OnInput judges a press in lane at logical time nowMs. Among the pending
// notes in that lane with |time - now| < GreatMs it picks the closest
// (ties: earlier time, then chart order). With no candidate the press is a
// ghost input and nothing changes.
func (j *Judge) OnInput(lane int, nowMs int64) (JudgmentEvent, bool) {
	if lane < 0 || lane >= LaneCount {
		return JudgmentEvent{}, false
	}

	best := -1
	var bestDiff int64
	for i := j.cursor; i < len(j.notes); i++ {
		n := &j.notes[i]
		if n.TimeMs-nowMs >= j.rules.GreatMs {
			break
		}
		if n.State != NotePending || n.Lane != lane {
			continue
		}
		diff := absMs(n.TimeMs - nowMs)
		if diff >= j.rules.GreatMs {
			continue
		}
		if best < 0 || closer(diff, i, bestDiff, best, j.notes) {
			best = i
			bestDiff = diff
		}
	}

	if best < 0 {
		return JudgmentEvent{}, false
	}

	kind := JudgmentGreat
	if bestDiff <= j.rules.PerfectMs {
		kind = JudgmentPerfect
	}

	n := &j.notes[best]
	n.State = NoteHit
	j.advance()

	return JudgmentEvent{
		Kind:   kind,
		Note:   *n,
		AtMs:   nowMs,
		DiffMs: nowMs - n.TimeMs,
	}, true
}

// Sweep marks every pending note whose window has closed
// (now - time > GreatMs) as missed, in time order, in a single pass.
func (j *Judge) Sweep(nowMs int64) []JudgmentEvent {
	var events []JudgmentEvent
	for i := j.cursor; i < len(j.notes); i++ {
		n := &j.notes[i]
		if nowMs-n.TimeMs <= j.rules.GreatMs {
			break
		}
		if n.State != NotePending {
			continue
		}
		n.State = NoteMissed
		events = append(events, JudgmentEvent{
			Kind:   JudgmentMiss,
			Note:   *n,
			AtMs:   nowMs,
			DiffMs: nowMs - n.TimeMs,
		})
	}
	j.advance()
	return events
}

// AllTerminal reports whether every note has been judged.
func (j *Judge) AllTerminal() bool {
	return j.cursor >= len(j.notes)
}

// Remaining returns the number of notes still pending.
func (j *Judge) Remaining() int {
	count := 0
	for i := j.cursor; i < len(j.notes); i++ {
		if j.notes[i].State == NotePending {
			count++
		}
	}
	return count
}

// advance moves the cursor past the leading run of terminal notes.
func (j *Judge) advance() {
	for j.cursor < len(j.notes) && j.notes[j.cursor].State.Terminal() {
		j.cursor++
	}
}

// closer reports whether candidate notes[a] beats the current best notes[b].
// At equal distance and time the note ingested first wins, so generated IDs
// like note-2 and note-10 keep their numeric order.
func closer(diffA int64, a int, diffB int64, b int, notes []Note) bool {
	if diffA != diffB {
		return diffA < diffB
	}
	if notes[a].TimeMs != notes[b].TimeMs {
		return notes[a].TimeMs < notes[b].TimeMs
	}
	return a < b
}

func absMs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
