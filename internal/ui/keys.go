package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding

	// Date navigation
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding

	// List navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Diary actions
	Answer          key.Binding
	OpenTask        key.Binding
	AddTask         key.Binding
	DeleteTask      key.Binding
	ToggleEmptyCard key.Binding

	// Editor
	Close     key.Binding
	Save      key.Binding
	NextField key.Binding

	// Unsaved changes prompt
	PromptSave    key.Binding
	PromptDiscard key.Binding
	PromptCancel  key.Binding

	// Delete confirmation
	ConfirmYes key.Binding
	ConfirmNo  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload day"),
		),

		PrevDay: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "Next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Jump to today"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Answer: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Answer question"),
		),
		OpenTask: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit item"),
		),
		AddTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New item"),
		),
		DeleteTask: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "Delete item"),
		),
		ToggleEmptyCard: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Hide empty past answers"),
		),

		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close editor"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch field"),
		),

		PromptSave: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "Save"),
		),
		PromptDiscard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Don't save"),
		),
		PromptCancel: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c/esc", "Cancel"),
		),

		ConfirmYes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Delete"),
		),
		ConfirmNo: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Keep"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Answer, k.AddTask, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Today, k.Refresh},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Answer, k.OpenTask, k.AddTask, k.DeleteTask, k.ToggleEmptyCard},
		{k.Close, k.Save, k.NextField},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
