package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rcore "github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

// difficultyFilters is the cycle of the difficulty filter; empty means all.
var difficultyFilters = []rcore.Difficulty{"", rcore.DifficultyEasy, rcore.DifficultyMedium, rcore.DifficultyHard}

// SongMenuModel is the Bubble Tea model for the song picker.
type SongMenuModel struct {
	reg      *registry.Registry
	songs    []registry.SongInfo // Visible songs after filtering
	filter   int                 // Index into difficultyFilters
	table    table.Model
	help     help.Model
	keys     SongMenuKeyMap
	width    int
	height   int
	selected string
	replays  bool
	quitting bool
}

// NewSongMenuModel creates a menu listing the songs of reg.
func NewSongMenuModel(reg *registry.Registry, width, height int) SongMenuModel {
	m := SongMenuModel{
		reg:    reg,
		help:   help.New(),
		keys:   DefaultSongMenuKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.refresh()
	return m
}

// createTable creates the song table sized to the window.
func (m *SongMenuModel) createTable() table.Model {
	titleW := 22
	if m.width > 90 {
		titleW = m.width - 68
	}
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Title", Width: titleW},
		{Title: "Genre", Width: 14},
		{Title: "Level", Width: 7},
		{Title: "Notes", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Source", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// refresh reloads the visible songs for the current filter.
func (m *SongMenuModel) refresh() {
	want := difficultyFilters[m.filter]
	m.songs = nil
	for _, s := range m.reg.List() {
		if want == "" || s.Difficulty == want {
			m.songs = append(m.songs, s)
		}
	}

	rows := make([]table.Row, len(m.songs))
	for i, s := range m.songs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			s.Title,
			s.Genre,
			string(s.Difficulty),
			fmt.Sprintf("%d", s.Notes),
			FormatLength(s.LengthMs),
			string(s.Source),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// SelectID moves the cursor to the song with the given ID, if visible.
func (m *SongMenuModel) SelectID(id string) {
	for i, s := range m.songs {
		if s.ID == id {
			m.table.SetCursor(i)
			return
		}
	}
}

// Init initializes the menu model.
func (m SongMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m SongMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if c := m.table.Cursor(); c >= 0 && c < len(m.songs) {
				m.selected = m.songs[c].ID
			}
			return m, nil

		case key.Matches(msg, m.keys.Replays):
			m.replays = true
			return m, nil

		case key.Matches(msg, m.keys.Difficulty):
			m.filter = (m.filter + 1) % len(difficultyFilters)
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.refresh()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m SongMenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("B I T   H E R O", m.width)))
	b.WriteString("\n")

	filter := "all difficulties"
	if d := difficultyFilters[m.filter]; d != "" {
		filter = strings.ToLower(string(d)) + " only"
	}
	b.WriteString(dimStyle.Render(centerText(fmt.Sprintf("%d songs, %s", len(m.songs), filter), m.width)))
	b.WriteString("\n\n")

	if len(m.songs) == 0 {
		b.WriteString(dimStyle.Render(centerText("No songs match this filter.", m.width)))
	} else {
		b.WriteString(m.table.View())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the ID of the chosen song.
func (m SongMenuModel) Selected() (string, bool) {
	return m.selected, m.selected != ""
}

// WantsReplays returns true if the user asked for the replay browser.
func (m SongMenuModel) WantsReplays() bool {
	return m.replays
}

// IsQuitting returns true if user requested to quit.
func (m SongMenuModel) IsQuitting() bool {
	return m.quitting
}

// FormatLength formats milliseconds as m:ss.
func FormatLength(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
