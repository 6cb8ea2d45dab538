package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Project list actions
	New    key.Binding
	Delete key.Binding

	// Detail field editors
	EditName       key.Binding
	EditAddress    key.Binding
	EditBudget     key.Binding
	EditWorkers    key.Binding
	EditProgress   key.Binding
	EditEta        key.Binding
	EditContractor key.Binding
	Finish         key.Binding

	// Task panel
	Tasks      key.Binding
	CycleTask  key.Binding
	RemoveTask key.Binding

	// Image panel
	Images      key.Binding
	AddImage    key.Binding
	RemoveImage key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open project"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new project"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete project"),
		),
		EditName: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "rename"),
		),
		EditAddress: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "address"),
		),
		EditBudget: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "budget"),
		),
		EditWorkers: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "workers"),
		),
		EditProgress: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "progress"),
		),
		EditEta: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "eta"),
		),
		EditContractor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contractor"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish project"),
		),
		Tasks: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus tasks"),
		),
		CycleTask: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cycle task status"),
		),
		RemoveTask: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove task"),
		),
		Images: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "focus images"),
		),
		AddImage: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "add image URL"),
		),
		RemoveImage: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove image"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Refresh,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.New, k.Delete, k.Refresh, k.Help},
		{k.EditName, k.EditAddress, k.EditBudget, k.EditWorkers, k.EditProgress},
		{k.EditEta, k.EditContractor, k.Finish, k.Tasks, k.CycleTask},
		{k.Images, k.AddImage, k.RemoveImage},
	}
}
