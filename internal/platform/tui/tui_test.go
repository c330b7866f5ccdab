package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
	"github.com/AdrianoCalmon/Bit-Hero/internal/core"
	rcore "github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
	"github.com/AdrianoCalmon/Bit-Hero/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func demoSong() rcore.Song {
	return rcore.Song{
		ID:         "demo",
		Title:      "DEMO",
		Genre:      "TEST",
		Difficulty: rcore.DifficultyEasy,
		Notes: []rcore.Note{
			{ID: "a", Lane: 1, TimeMs: 1000},
			{ID: "b", Lane: 2, TimeMs: 1500},
		},
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestPlay(t *testing.T, store *storage.Store) (PlayModel, *rcore.ManualTime) {
	t.Helper()
	clock := rcore.NewManualTime()
	deps := Deps{Config: config.DefaultRhythmConfig(), Store: store, Now: clock.Now}
	return NewPlayModel(demoSong(), deps, core.RuntimeConfig{ScreenW: 40, ScreenH: 24}, "tester"), clock
}

func update(t *testing.T, m PlayModel, msg tea.Msg) PlayModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(PlayModel)
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper(config.DefaultRhythmConfig().Keys)

	tests := map[string]core.Action{
		"a":      core.ActionLane0,
		"s":      core.ActionLane1,
		"k":      core.ActionLane2,
		"l":      core.ActionLane3,
		"p":      core.ActionPause,
		"esc":    core.ActionPause,
		"r":      core.ActionRestart,
		"q":      core.ActionQuit,
		"ctrl+c": core.ActionQuit,
		"x":      core.ActionNone,
	}
	for name, want := range tests {
		if got := km.MapKey(keyMsg(name)); got != want {
			t.Errorf("MapKey(%q) = %v, want %v", name, got, want)
		}
	}

	if got := strings.Join(km.LaneKeys(), ""); got != "askl" {
		t.Errorf("LaneKeys = %q", got)
	}
}

func TestKeyMapperLaneWinsConflict(t *testing.T) {
	km := NewKeyMapper(config.KeyConfig{
		Lanes: []string{"p", "o", "i", "u"},
		Pause: []string{"p", "esc"},
	})
	if got := km.Action("p"); got != core.ActionLane0 {
		t.Errorf("Action(p) = %v, want Lane0", got)
	}
	if got := km.Action("esc"); got != core.ActionPause {
		t.Errorf("Action(esc) = %v, want Pause", got)
	}
}

func TestPlayPressAndRelease(t *testing.T) {
	m, clock := newTestPlay(t, nil)

	clock.AdvanceMs(1000)
	m = update(t, m, keyMsg("s"))

	snap := m.Session().Snapshot()
	if snap.Score.Perfect != 1 || !snap.Held[1] {
		t.Fatalf("after press: perfect=%d held=%v", snap.Score.Perfect, snap.Held)
	}

	// A release from an older press does not lift the lane
	m = update(t, m, releaseMsg{gen: m.gen, lane: 1, seq: 0})
	if !m.Session().Snapshot().Held[1] {
		t.Error("stale release lifted the lane")
	}

	m = update(t, m, releaseMsg{gen: m.gen, lane: 1, seq: 1})
	if m.Session().Snapshot().Held[1] {
		t.Error("lane still held after release")
	}
}

func TestPlayFinishSavesReplay(t *testing.T) {
	store := openStore(t)
	m, clock := newTestPlay(t, store)

	clock.AdvanceMs(1000)
	m = update(t, m, keyMsg("s"))
	clock.AdvanceMs(580)
	m = update(t, m, keyMsg("k"))

	clock.AdvanceMs(2000)
	m = update(t, m, TickMsg{Gen: m.gen})

	if m.Session().State() != rcore.SessionFinished {
		t.Fatalf("state = %v, want finished", m.Session().State())
	}
	if m.replayID == 0 {
		t.Fatalf("replay not saved: %v", m.saveErr)
	}

	r, err := store.ReplayByID(m.replayID)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Inputs) != 2 || r.Result.Perfect != 1 || r.Result.Great != 1 {
		t.Errorf("replay = %+v", r)
	}
	if _, err := r.Verify(demoSong(), config.DefaultRhythmConfig().Rules()); err != nil {
		t.Errorf("saved replay does not verify: %v", err)
	}
	if want := config.DefaultRhythmConfig().Rules().Fingerprint(); r.RulesHash != want {
		t.Errorf("rules hash = %q, want %q", r.RulesHash, want)
	}

	if view := m.View(); !strings.Contains(view, "RANK") || !strings.Contains(view, "replay #") {
		t.Errorf("results view:\n%s", view)
	}

	m = update(t, m, keyMsg("enter"))
	if !m.Leaving() {
		t.Error("enter on results should leave")
	}
}

func TestPlayIgnoresStaleTicks(t *testing.T) {
	m, clock := newTestPlay(t, nil)
	clock.AdvanceMs(5000)

	m = update(t, m, TickMsg{Gen: m.gen + 1000})
	if m.Session().State() != rcore.SessionRunning {
		t.Errorf("tick from another play screen advanced the session")
	}
}

func TestPlayPauseToggle(t *testing.T) {
	m, _ := newTestPlay(t, nil)

	m = update(t, m, keyMsg("p"))
	if m.Session().State() != rcore.SessionPaused {
		t.Fatalf("state = %v, want paused", m.Session().State())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	m = update(t, m, keyMsg("esc"))
	if m.Session().State() != rcore.SessionRunning {
		t.Errorf("state = %v, want running", m.Session().State())
	}
}

func TestPlayQuitAbortsWithoutReplay(t *testing.T) {
	store := openStore(t)
	m, _ := newTestPlay(t, store)

	m = update(t, m, keyMsg("q"))
	if !m.Leaving() || m.IsQuitting() {
		t.Errorf("leaving=%v quitting=%v", m.Leaving(), m.IsQuitting())
	}
	if m.Session().State() != rcore.SessionFinished {
		t.Errorf("aborted session state = %v", m.Session().State())
	}

	replays, err := store.Replays("demo", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(replays) != 0 {
		t.Errorf("aborted run saved %d replays", len(replays))
	}
}

func TestPlayRestart(t *testing.T) {
	m, clock := newTestPlay(t, nil)
	clock.AdvanceMs(1000)
	m = update(t, m, keyMsg("s"))

	m = update(t, m, keyMsg("r"))
	snap := m.Session().Snapshot()
	if snap.State != rcore.SessionRunning || snap.Score.Score != 0 || snap.Remaining != 2 {
		t.Errorf("after restart: %+v", snap)
	}
}

func TestPlayCtrlCQuits(t *testing.T) {
	m, _ := newTestPlay(t, nil)
	next, cmd := m.Update(keyMsg("ctrl+c"))
	if !next.(PlayModel).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit the program")
	}
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	if err := reg.Add("demo", registry.SourceBuiltin, demoSong); err != nil {
		t.Fatal(err)
	}
	hard := func() rcore.Song {
		s := demoSong()
		s.Title = "HARD ONE"
		s.Difficulty = rcore.DifficultyHard
		return s
	}
	if err := reg.Add("hard", registry.SourceLibrary, hard); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestSongMenuFilterAndSelect(t *testing.T) {
	m := NewSongMenuModel(testRegistry(t), 100, 30)
	if len(m.songs) != 2 {
		t.Fatalf("songs = %d", len(m.songs))
	}

	next, _ := m.Update(keyMsg("d")) // easy only
	m = next.(SongMenuModel)
	if len(m.songs) != 1 || m.songs[0].ID != "demo" {
		t.Errorf("easy filter = %v", m.songs)
	}

	for range 2 { // medium, then hard
		next, _ = m.Update(keyMsg("d"))
		m = next.(SongMenuModel)
	}
	if len(m.songs) != 1 || m.songs[0].ID != "hard" {
		t.Errorf("hard filter = %v", m.songs)
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(SongMenuModel)
	if id, ok := m.Selected(); !ok || id != "hard" {
		t.Errorf("Selected() = %q, %v", id, ok)
	}
	if !strings.Contains(m.View(), "HARD ONE") {
		t.Errorf("menu view lacks song title:\n%s", m.View())
	}
}

func TestAppFlow(t *testing.T) {
	store := openStore(t)
	deps := Deps{Config: config.DefaultRhythmConfig(), Store: store}
	var app tea.Model = NewAppModel(testRegistry(t), deps, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "tester")

	send := func(k string) tea.Cmd {
		var cmd tea.Cmd
		app, cmd = app.Update(keyMsg(k))
		return cmd
	}

	send("enter")
	if a := app.(AppModel); a.active != screenPlay || a.play.Session().Song().ID != "demo" {
		t.Fatalf("enter did not start demo: active=%v", a.active)
	}

	send("q")
	if a := app.(AppModel); a.active != screenMenu || a.lastSong != "demo" {
		t.Fatalf("q in play did not return to menu: active=%v", a.active)
	}

	send("tab")
	if a := app.(AppModel); a.active != screenReplays {
		t.Fatalf("tab did not open replays: active=%v", a.active)
	}
	if !strings.Contains(app.View(), "REPLAYS - DEMO") {
		t.Errorf("replays view:\n%s", app.View())
	}

	send("esc")
	if a := app.(AppModel); a.active != screenMenu {
		t.Fatalf("esc did not leave replays: active=%v", a.active)
	}

	if cmd := send("q"); cmd == nil || !app.(AppModel).quitting {
		t.Error("q in menu should quit")
	}
	if app.View() != "" {
		t.Error("view after quit should be empty")
	}
}

func TestReplaysVerify(t *testing.T) {
	store := openStore(t)
	reg := testRegistry(t)
	rules := config.DefaultRhythmConfig().Rules()
	song := demoSong()

	inputs := []rcore.InputRecord{{Lane: 1, AtMs: 1000}}
	good := storage.Replay{SongID: "demo", ChartHash: rcore.ChartHash(song.Notes), Inputs: inputs, Result: rcore.Replay(song, inputs, rules)}
	if _, err := store.SaveReplay(good); err != nil {
		t.Fatal(err)
	}
	bad := good
	bad.ChartHash = "stale"
	if _, err := store.SaveReplay(bad); err != nil {
		t.Fatal(err)
	}

	m := NewReplaysModel(reg, store, rules, "demo", 100, 30)
	if len(m.replays) != 2 {
		t.Fatalf("replays = %d", len(m.replays))
	}

	// Newest first: the stale-hash replay is selected
	next, _ := m.Update(keyMsg("enter"))
	m = next.(ReplaysModel)
	if got := m.status[m.replays[0].ID]; got != "chart changed" {
		t.Errorf("status = %q, want chart changed", got)
	}

	m.table.SetCursor(1)
	next, _ = m.Update(keyMsg("v"))
	m = next.(ReplaysModel)
	if got := m.status[m.replays[1].ID]; got != "ok" {
		t.Errorf("status = %q, want ok", got)
	}
}

func TestVerifyStatus(t *testing.T) {
	reg := testRegistry(t)
	rules := config.DefaultRhythmConfig().Rules()
	song := demoSong()
	inputs := []rcore.InputRecord{{Lane: 1, AtMs: 1000}, {Lane: 2, AtMs: 1560}}
	good := storage.Replay{
		SongID:    "demo",
		ChartHash: rcore.ChartHash(song.Notes),
		RulesHash: rules.Fingerprint(),
		Inputs:    inputs,
		Result:    rcore.Replay(song, inputs, rules),
	}

	otherRules := rules
	otherRules.ScorePerfect = 300

	tests := []struct {
		name   string
		change func(r *storage.Replay)
		rules  rcore.Rules
		want   string
	}{
		{"ok", func(*storage.Replay) {}, rules, StatusOK},
		{"song missing", func(r *storage.Replay) { r.SongID = "gone" }, rules, StatusSongMissing},
		{"chart changed", func(r *storage.Replay) { r.ChartHash = "stale" }, rules, StatusChartChanged},
		{"rules changed", func(*storage.Replay) {}, otherRules, StatusRulesChanged},
		{"old replay under new rules", func(r *storage.Replay) { r.RulesHash = "" }, otherRules, StatusMismatch},
		{"tampered result", func(r *storage.Replay) { r.Result.Great++ }, rules, StatusMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := good
			tt.change(&r)
			if got := VerifyStatus(reg, r, tt.rules); got != tt.want {
				t.Errorf("VerifyStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLengthAndAccuracy(t *testing.T) {
	if got := FormatLength(125000); got != "2:05" {
		t.Errorf("FormatLength = %q", got)
	}
	if got := Accuracy(rcore.GameScore{Perfect: 2, Great: 1, Miss: 1}); got != 75 {
		t.Errorf("Accuracy = %v", got)
	}
	if got := Accuracy(rcore.GameScore{}); got != 0 {
		t.Errorf("Accuracy of nothing = %v", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawText(0, 0, "BIT", core.ColorBrightRed)
	scr.DrawText(0, 1, "HERO", core.ColorDefault)

	out := RenderScreen(scr)
	if !strings.Contains(out, "BIT") || !strings.Contains(out, "HERO") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen rows: %q", out)
	}
}
