package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rcore "github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
	"github.com/AdrianoCalmon/Bit-Hero/internal/storage"
)

const maxReplays = 100

// ReplaysModel is the Bubble Tea model for browsing and verifying replays.
type ReplaysModel struct {
	reg      *registry.Registry
	store    *storage.Store
	rules    rcore.Rules
	songs    []registry.SongInfo
	cursor   int // Current song
	replays  []storage.Replay
	status   map[int64]string // Verification outcome per replay ID
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	back     bool
	quitting bool
}

// NewReplaysModel creates a replay browser starting at songID.
func NewReplaysModel(reg *registry.Registry, store *storage.Store, rules rcore.Rules, songID string, width, height int) ReplaysModel {
	m := ReplaysModel{
		reg:    reg,
		store:  store,
		rules:  rules,
		songs:  reg.List(),
		status: make(map[int64]string),
		help:   help.New(),
		keys:   DefaultReplaysKeyMap(),
		width:  width,
		height: height,
	}
	for i, s := range m.songs {
		if s.ID == songID {
			m.cursor = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Score", Width: 9},
		{Title: "Rank", Width: 5},
		{Title: "Combo", Width: 6},
		{Title: "P/G/M", Width: 13},
		{Title: "Date", Width: 13},
		{Title: "Check", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches the replays of the current song.
func (m *ReplaysModel) load() {
	m.replays = nil
	m.loadErr = nil
	if m.store != nil && len(m.songs) > 0 {
		m.replays, m.loadErr = m.store.Replays(m.songs[m.cursor].ID, maxReplays)
	}
	m.updateRows()
	m.table.GotoTop()
}

func (m *ReplaysModel) updateRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		check := m.status[r.ID]
		if check == "" {
			check = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Result.Score),
			r.Result.Rank(),
			fmt.Sprintf("%d", r.Result.MaxCombo),
			fmt.Sprintf("%d/%d/%d", r.Result.Perfect, r.Result.Great, r.Result.Miss),
			r.CreatedAt.Format("Jan 02 15:04"),
			check,
		}
	}
	m.table.SetRows(rows)
}

// verify replays the selected run and records the outcome.
func (m *ReplaysModel) verify() {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.replays) {
		return
	}
	r := m.replays[c]
	m.status[r.ID] = VerifyStatus(m.reg, r, m.rules)
	m.updateRows()
}

// Verification outcomes shown by the replay browser and the CLI.
const (
	StatusOK           = "ok"
	StatusChartChanged = "chart changed"
	StatusRulesChanged = "rules changed"
	StatusMismatch     = "MISMATCH"
	StatusSongMissing  = "song missing"
)

// VerifyStatus re-simulates a replay against the registered song and
// summarises the outcome.
func VerifyStatus(reg *registry.Registry, r storage.Replay, rules rcore.Rules) string {
	song, err := reg.Get(r.SongID)
	if err != nil {
		return StatusSongMissing
	}
	_, err = r.Verify(song, rules)
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, storage.ErrChartChanged):
		return StatusChartChanged
	case errors.Is(err, storage.ErrRulesChanged):
		return StatusRulesChanged
	default:
		return StatusMismatch
	}
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.verify()
			return m, nil

		case key.Matches(msg, m.keys.NextSong):
			if len(m.songs) > 0 {
				m.cursor = (m.cursor + 1) % len(m.songs)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSong):
			if len(m.songs) > 0 {
				m.cursor = (m.cursor - 1 + len(m.songs)) % len(m.songs)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	var b strings.Builder

	title := "REPLAYS"
	if len(m.songs) > 0 {
		title = fmt.Sprintf("REPLAYS - %s", m.songs[m.cursor].Title)
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := m.table.View()
	switch {
	case m.store == nil:
		content = dimStyle.Render("Replays need a database (--db).")
	case m.loadErr != nil:
		content = errorStyle.Render(m.loadErr.Error())
	case len(m.replays) == 0:
		content = dimStyle.Italic(true).Padding(2, 4).Render("No replays recorded yet.\nFinish a song to record one!")
	}
	b.WriteString(panelStyle.Padding(0, 1).Render(content))

	if c := m.table.Cursor(); c >= 0 && c < len(m.replays) {
		if s := m.status[m.replays[c].ID]; s == StatusOK {
			b.WriteString("\n" + okStyle.Render("replay reproduces the recorded score"))
		} else if s != "" {
			b.WriteString("\n" + errorStyle.Render("verification: "+s))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// GoingBack returns true if the user wants to return to the menu.
func (m ReplaysModel) GoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}
