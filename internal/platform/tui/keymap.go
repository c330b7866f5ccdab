package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
	"github.com/AdrianoCalmon/Bit-Hero/internal/core"
)

// KeyMapper translates Bubble Tea key messages to play actions using the
// bindings from the keys section of the config.
type KeyMapper struct {
	bindings map[string]core.Action
	lanes    []string
}

// NewKeyMapper creates a key mapper from configured bindings.
// Later bindings never override earlier ones, so lane keys win over
// a conflicting control key.
func NewKeyMapper(keys config.KeyConfig) *KeyMapper {
	km := &KeyMapper{bindings: make(map[string]core.Action)}
	bind := func(action core.Action, names []string) {
		for _, name := range names {
			if _, taken := km.bindings[name]; !taken {
				km.bindings[name] = action
			}
		}
	}

	for lane, name := range keys.Lanes {
		bind(core.LaneAction(lane), []string{name})
		km.lanes = append(km.lanes, name)
	}
	bind(core.ActionPause, keys.Pause)
	bind(core.ActionRestart, keys.Restart)
	bind(core.ActionQuit, keys.Quit)
	return km
}

// Action returns the action bound to a key name.
func (km *KeyMapper) Action(name string) core.Action {
	return km.bindings[name]
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	return km.Action(msg.String())
}

// LaneKeys returns the key names bound to lanes, in lane order.
func (km *KeyMapper) LaneKeys() []string {
	return km.lanes
}

// SongMenuKeyMap defines the key bindings of the song menu.
type SongMenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Difficulty key.Binding
	Replays    key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SongMenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Difficulty, k.Replays, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SongMenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Difficulty, k.Replays, k.Quit},
	}
}

// DefaultSongMenuKeyMap returns default key bindings.
func DefaultSongMenuKeyMap() SongMenuKeyMap {
	return SongMenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "filter difficulty"),
		),
		Replays: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "replays"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysKeyMap defines the key bindings of the replay browser.
type ReplaysKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Verify   key.Binding
	NextSong key.Binding
	PrevSong key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Verify, k.NextSong, k.PrevSong, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Verify},
		{k.NextSong, k.PrevSong, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		NextSong: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next song"),
		),
		PrevSong: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev song"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
