package core_test

import (
	"testing"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

func chart(notes ...core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	copy(out, notes)
	return out
}

func note(id string, lane int, at int64) core.Note {
	return core.Note{ID: id, Lane: lane, TimeMs: at}
}

func TestJudgeWindows(t *testing.T) {
	tests := []struct {
		name  string
		press int64
		want  core.Judgment
		hit   bool
	}{
		{"exact", 2000, core.JudgmentPerfect, true},
		{"perfect early edge", 1950, core.JudgmentPerfect, true},
		{"perfect late edge", 2050, core.JudgmentPerfect, true},
		{"great early", 1949, core.JudgmentGreat, true},
		{"great late", 2119, core.JudgmentGreat, true},
		{"great window is exclusive", 2120, core.JudgmentNone, false},
		{"too early", 1880, core.JudgmentNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := chart(note("a", 0, 2000))
			j := core.NewJudge(notes, core.DefaultRules())

			ev, ok := j.OnInput(0, tt.press)
			if ok != tt.hit {
				t.Fatalf("OnInput ok = %v, want %v", ok, tt.hit)
			}
			if ev.Kind != tt.want {
				t.Errorf("kind = %v, want %v", ev.Kind, tt.want)
			}
			wantState := core.NotePending
			if tt.hit {
				wantState = core.NoteHit
			}
			if notes[0].State != wantState {
				t.Errorf("state = %v, want %v", notes[0].State, wantState)
			}
		})
	}
}

func TestJudgeGhostInput(t *testing.T) {
	notes := chart(note("a", 0, 2000))
	j := core.NewJudge(notes, core.DefaultRules())

	if _, ok := j.OnInput(1, 50); ok {
		t.Error("press in an empty lane should not judge anything")
	}
	if _, ok := j.OnInput(1, 2000); ok {
		t.Error("press in the wrong lane should not judge anything")
	}
	if _, ok := j.OnInput(7, 2000); ok {
		t.Error("out of range lane should be ignored")
	}
	if notes[0].State != core.NotePending {
		t.Errorf("note state changed to %v", notes[0].State)
	}
}

func TestJudgePicksClosest(t *testing.T) {
	notes := chart(
		note("a", 2, 1000),
		note("b", 2, 1100),
	)
	j := core.NewJudge(notes, core.DefaultRules())

	ev, ok := j.OnInput(2, 1080)
	if !ok {
		t.Fatal("expected a hit")
	}
	if ev.Note.ID != "b" {
		t.Errorf("judged %s, want b", ev.Note.ID)
	}
	if ev.Kind != core.JudgmentPerfect {
		t.Errorf("kind = %v, want perfect", ev.Kind)
	}
	if notes[0].State != core.NotePending {
		t.Error("the farther note must stay pending")
	}
}

func TestJudgeTieBreak(t *testing.T) {
	t.Run("earlier time wins", func(t *testing.T) {
		notes := chart(note("early", 1, 1000), note("late", 1, 1100))
		j := core.NewJudge(notes, core.DefaultRules())

		ev, _ := j.OnInput(1, 1050)
		if ev.Note.ID != "early" {
			t.Errorf("judged %s, want early", ev.Note.ID)
		}
	})

	t.Run("chart order wins at equal time", func(t *testing.T) {
		tests := []struct {
			name  string
			notes []core.Note
			want  []string
		}{
			{"generated ids", chart(note("note-2", 3, 1000), note("note-10", 3, 1000)), []string{"note-2", "note-10"}},
			{"ids out of lexical order", chart(note("n2", 3, 1000), note("n1", 3, 1000)), []string{"n2", "n1"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				j := core.NewJudge(tt.notes, core.DefaultRules())
				for i, want := range tt.want {
					ev, ok := j.OnInput(3, 1000)
					if !ok || ev.Note.ID != want {
						t.Errorf("press %d judged %s (ok=%v), want %s", i+1, ev.Note.ID, ok, want)
					}
				}
			})
		}
	})
}

func TestJudgeSweep(t *testing.T) {
	notes := chart(
		note("a", 0, 1000),
		note("b", 1, 1100),
		note("c", 2, 3000),
	)
	j := core.NewJudge(notes, core.DefaultRules())

	if events := j.Sweep(1120); len(events) != 0 {
		t.Fatalf("sweep at the window edge missed %d notes", len(events))
	}

	events := j.Sweep(1300)
	if len(events) != 2 {
		t.Fatalf("got %d misses, want 2", len(events))
	}
	if events[0].Note.ID != "a" || events[1].Note.ID != "b" {
		t.Errorf("misses out of order: %s, %s", events[0].Note.ID, events[1].Note.ID)
	}
	for _, ev := range events {
		if ev.Kind != core.JudgmentMiss {
			t.Errorf("kind = %v, want miss", ev.Kind)
		}
	}
	if j.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", j.Remaining())
	}
	if j.AllTerminal() {
		t.Error("c is still pending")
	}
}

func TestJudgeNeverJudgesTwice(t *testing.T) {
	notes := chart(note("a", 0, 1000))
	j := core.NewJudge(notes, core.DefaultRules())

	if _, ok := j.OnInput(0, 1000); !ok {
		t.Fatal("expected hit")
	}
	if _, ok := j.OnInput(0, 1010); ok {
		t.Error("a hit note was judged again by input")
	}
	if events := j.Sweep(5000); len(events) != 0 {
		t.Error("a hit note was judged again by sweep")
	}
	if !j.AllTerminal() {
		t.Error("expected all notes terminal")
	}

	notes = chart(note("b", 0, 1000))
	j = core.NewJudge(notes, core.DefaultRules())
	j.Sweep(2000)
	if _, ok := j.OnInput(0, 1000); ok {
		t.Error("a missed note was hit afterwards")
	}
}

func TestJudgeDiffSign(t *testing.T) {
	notes := chart(note("a", 0, 1000), note("b", 1, 1000))
	j := core.NewJudge(notes, core.DefaultRules())

	early, _ := j.OnInput(0, 930)
	late, _ := j.OnInput(1, 1070)
	if early.DiffMs != -70 || late.DiffMs != 70 {
		t.Errorf("diffs = %d, %d, want -70, 70", early.DiffMs, late.DiffMs)
	}
}
