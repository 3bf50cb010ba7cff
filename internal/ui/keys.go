package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/perch/internal/config"
)

// keyMap defines the inspector's bindings. Bindings that mirror an action in
// [keyboard] follow the user's configuration.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	Reload        key.Binding
	CycleTheme    key.Binding
	ToggleSidebar key.Binding
	CommandBar    key.Binding
	FileTransfers key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Previous key.Binding
	Open     key.Binding
}

// newKeyMap builds bindings from the configured keyboard section.
func newKeyMap(kb config.Keyboard) keyMap {
	return keyMap{
		Quit:          binding("quit", kb.QuitApplication, "q"),
		Help:          binding("toggle help", "", "?"),
		Reload:        binding("reload config", kb.ReloadConfiguration),
		CycleTheme:    binding("preview next theme", "", "T"),
		ToggleSidebar: binding("toggle sidebar", kb.ToggleSidebar),
		CommandBar:    binding("command bar", kb.CommandBar, ":"),
		FileTransfers: binding("file transfers", kb.FileTransfers),

		Up:       binding("move up", kb.MoveUp, "k", "up"),
		Down:     binding("move down", kb.MoveDown, "j", "down"),
		Next:     binding("next section", kb.CycleNextBuffer, "tab"),
		Previous: binding("previous section", kb.CyclePreviousBuffer, "shift+tab"),
		Open:     binding("open section", "", "enter"),
	}
}

// binding joins the configured combination with fixed fallbacks. The help
// text shows the first key. With no keys at all the binding is disabled.
func binding(desc, configured string, fallback ...string) key.Binding {
	keys := make([]string, 0, len(fallback)+1)
	if configured != "" {
		keys = append(keys, configured)
	}
	keys = append(keys, fallback...)
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], desc),
	)
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Reload, k.CycleTheme, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Next, k.Previous, k.ToggleSidebar},
		{k.Reload, k.CycleTheme, k.FileTransfers},
		{k.CommandBar, k.Help, k.Quit},
	}
}
