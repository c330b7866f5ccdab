package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdrianoCalmon/Bit-Hero/internal/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

// screen identifies the active view of the app.
type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenReplays
)

// AppModel manages the full flow: menu -> song -> results -> menu, with the
// replay browser reachable from the menu. It is the top-level model for
// both the local menu command and every SSH connection.
type AppModel struct {
	reg      *registry.Registry
	deps     Deps
	runtime  core.RuntimeConfig
	user     string
	active   screen
	menu     SongMenuModel
	play     *PlayModel
	replays  ReplaysModel
	lastSong string
	quitting bool
}

// NewAppModel creates an app model.
func NewAppModel(reg *registry.Registry, deps Deps, cfg core.RuntimeConfig, user string) AppModel {
	cfg = cfg.Normalize()
	return AppModel{
		reg:     reg,
		deps:    deps,
		runtime: cfg,
		user:    user,
		menu:    NewSongMenuModel(reg, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.active {
	case screenPlay:
		return m.updatePlay(msg)
	case screenReplays:
		return m.updateReplays(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(SongMenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsReplays():
		songID, _ := m.menu.Selected()
		if songID == "" {
			songID = m.lastSong
		}
		m.replays = NewReplaysModel(m.reg, m.deps.Store, m.deps.Config.Rules(), songID, m.runtime.ScreenW, m.runtime.ScreenH)
		m.active = screenReplays
		return m, m.replays.Init()
	}

	if id, ok := m.menu.Selected(); ok {
		song, err := m.reg.Get(id)
		if err != nil {
			m.deps.logger().Warn("selected song vanished", "song", id, "error", err)
			m.resetMenu()
			return m, nil
		}
		play := NewPlayModel(song, m.deps, m.runtime, m.user)
		m.play = &play
		m.lastSong = id
		m.active = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	play := next.(PlayModel)
	m.play = &play

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.Leaving() {
		m.play = nil
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.replays.Update(msg)
	m.replays = next.(ReplaysModel)

	if m.replays.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.replays.GoingBack() {
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

// resetMenu returns to a fresh menu with the last song highlighted.
func (m *AppModel) resetMenu() {
	m.menu = NewSongMenuModel(m.reg, m.runtime.ScreenW, m.runtime.ScreenH)
	m.menu.SelectID(m.lastSong)
	m.active = screenMenu
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.active {
	case screenPlay:
		return m.play.View()
	case screenReplays:
		return m.replays.View()
	default:
		return m.menu.View()
	}
}

// RunApp runs the menu-driven app in the local terminal.
func RunApp(reg *registry.Registry, deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(reg, deps, cfg, "local"),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
