package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the TUI application.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit         key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	Tab1         key.Binding
	Tab2         key.Binding
	Tab3         key.Binding
	Tab4         key.Binding
	Tab5         key.Binding
	Smoothing    key.Binding
	Faster       key.Binding
	Slower       key.Binding
	TempUnit     key.Binding
	SaveSettings key.Binding
	Help         key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Smoothing, k.Slower, k.Faster, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.Smoothing, k.Faster, k.Slower, k.TempUnit},
		{k.SaveSettings, k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the application.
var keys = keyMap{
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:      key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next graph")),
	PrevTab:      key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev graph")),
	Tab1:         key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "cpu")),
	Tab2:         key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "memory")),
	Tab3:         key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "gpu")),
	Tab4:         key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "temperature")),
	Tab5:         key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "fan")),
	Smoothing:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "smoothing")),
	Faster:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster sampling")),
	Slower:       key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower sampling")),
	TempUnit:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "°C/°F")),
	SaveSettings: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save settings")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// tabKeys maps the number keys to graph positions.
var tabKeys = []key.Binding{keys.Tab1, keys.Tab2, keys.Tab3, keys.Tab4, keys.Tab5}
