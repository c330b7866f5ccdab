package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
	"github.com/AdrianoCalmon/Bit-Hero/internal/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm"
	rcore "github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/logging"
	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/metrics"
	"github.com/AdrianoCalmon/Bit-Hero/internal/storage"
)

// Deps are the collaborators shared by every screen. Store, Metrics and
// Logger may be nil.
type Deps struct {
	Config  config.RhythmConfig
	Store   *storage.Store
	Metrics *metrics.Metrics
	Logger  *log.Logger
	Now     func() time.Time // Wall clock for sessions; nil means time.Now
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

// PlayModel is the Bubble Tea model for one song.
type PlayModel struct {
	deps     Deps
	session  *rcore.Session
	screen   *core.Screen
	layout   rhythm.Layout
	keys     *KeyMapper
	runtime  core.RuntimeConfig
	flash    time.Duration
	pressSeq [rcore.LaneCount]int
	user     string
	gen      uint64

	replayID int64 // Set once the finished run is saved
	saveErr  error
	counted  bool // Session reported to metrics as ended
	quitting bool
	leaving  bool
}

// NewPlayModel starts a session for song.
func NewPlayModel(song rcore.Song, deps Deps, cfg core.RuntimeConfig, user string) PlayModel {
	cfg = cfg.Normalize()
	if deps.Config.TickRate > 0 {
		cfg.TickRate = deps.Config.TickRate
	}

	opts := []rcore.Option{
		rcore.WithRules(deps.Config.Rules()),
		rcore.WithFeedback(deps.Metrics.Feedback()),
	}
	if deps.Now != nil {
		opts = append(opts, rcore.WithClock(deps.Now))
	}

	keys := NewKeyMapper(deps.Config.Keys)
	layout := rhythm.LayoutFromConfig(deps.Config)
	layout.KeyLabels = keys.LaneKeys()

	deps.Metrics.SessionStarted()
	deps.logger().Info("session started", "song", song.ID, "user", user, "notes", len(song.Notes))

	return PlayModel{
		deps:    deps,
		session: rcore.NewSession(song, opts...),
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		layout:  layout,
		keys:    keys,
		runtime: cfg,
		flash:   time.Duration(deps.Config.Playfield.FlashMs) * time.Millisecond,
		user:    user,
		gen:     playGen.Add(1),
	}
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case releaseMsg:
		if msg.gen == m.gen && msg.seq == m.pressSeq[msg.lane] {
			m.session.Release(msg.lane)
		}
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.end()
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	finished := m.session.State() == rcore.SessionFinished
	if finished {
		switch msg.String() {
		case "enter", "b":
			m.leaving = true
			return m, nil
		}
	}

	action := m.keys.MapKey(msg)
	if lane, ok := action.Lane(); ok {
		m.session.Press(lane)
		m.pressSeq[lane]++
		return m, releaseCmd(m.gen, lane, m.pressSeq[lane], m.flash)
	}

	switch action {
	case core.ActionPause:
		m.session.TogglePause()
	case core.ActionRestart:
		m.end()
		m.restart()
	case core.ActionQuit:
		m.end()
		m.leaving = true
	}
	return m, nil
}

// handleTick advances the session and saves the run when it finishes.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	res := m.session.Tick()
	if res.Finished {
		m.finish(res.Score)
	}
	return m, tickCmd(m.runtime.TickRate, m.gen)
}

// finish records a completed run.
func (m *PlayModel) finish(score rcore.GameScore) {
	song := m.session.Song()
	m.deps.logger().Info("session finished",
		"song", song.ID,
		"user", m.user,
		"score", score.Score,
		"rank", score.Rank(),
		"max_combo", score.MaxCombo,
	)
	if !m.counted {
		m.deps.Metrics.SessionEnded(true)
		m.counted = true
	}

	if m.deps.Store == nil {
		return
	}
	id, err := m.deps.Store.SaveReplay(storage.Replay{
		SongID:    song.ID,
		ChartHash: rcore.ChartHash(song.Notes),
		RulesHash: m.session.Rules().Fingerprint(),
		Inputs:    m.session.Inputs(),
		Result:    score,
	})
	if err != nil {
		m.saveErr = err
		m.deps.logger().Warn("could not save replay", "song", song.ID, "error", err)
		return
	}
	m.replayID = id
}

// end reports an unfinished session as aborted.
func (m *PlayModel) end() {
	if m.counted {
		return
	}
	if score, ok := m.session.Abort(); ok {
		m.deps.logger().Info("session aborted", "song", m.session.Song().ID, "user", m.user, "score", score.Score)
	}
	m.deps.Metrics.SessionEnded(false)
	m.counted = true
}

func (m *PlayModel) restart() {
	m.session.Restart()
	m.replayID = 0
	m.saveErr = nil
	m.counted = false
	m.deps.Metrics.SessionStarted()
}

// saveScreenshot saves the current playfield as plain text.
func (m *PlayModel) saveScreenshot() {
	rhythm.Render(m.screen, m.session.Snapshot(), m.layout)

	dir := filepath.Join(config.DataDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.Song().ID, timestamp))

	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the playfield, or the results panel once the song is over.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if score, ok := m.session.Result(); ok {
		return resultsView(m.session.Song(), score, m.replayID, m.saveErr, m.runtime.ScreenW)
	}

	rhythm.Render(m.screen, m.session.Snapshot(), m.layout)
	return RenderScreen(m.screen)
}

// Session exposes the running session, mainly for tests.
func (m PlayModel) Session() *rcore.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// Leaving returns true if the user is done with this song.
func (m PlayModel) Leaving() bool {
	return m.leaving
}

// standalonePlay quits the program instead of returning to a menu.
type standalonePlay struct {
	PlayModel
}

func (s standalonePlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.PlayModel.Update(msg)
	s.PlayModel = next.(PlayModel)
	if s.Leaving() {
		return s, tea.Quit
	}
	return s, cmd
}

// Run plays a single song in the terminal and returns when the user leaves.
func Run(song rcore.Song, deps Deps, cfg core.RuntimeConfig) error {
	model := standalonePlay{NewPlayModel(song, deps, cfg, "local")}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
