package app

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	// global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// browse
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Clear  key.Binding
	Edit   key.Binding
	Delete key.Binding
	Reload key.Binding

	// search
	Done key.Binding

	// dialog
	Save      key.Binding
	Cancel    key.Binding
	Close     key.Binding
	NextField key.Binding
	External  key.Binding

	// confirm
	Yes key.Binding
	No  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		Done: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "done"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "update"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "close"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		External: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "$EDITOR"),
		),

		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Help,
		k.Search,
		k.Edit,
		k.Delete,
		k.Reload,
		k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Search, k.Clear},
		{k.Edit, k.Delete},
		{k.Reload, k.Help},
		{k.Quit, k.ForceQuit},
	}
}

func (k KeyMap) SearchShortHelp() []key.Binding {
	return []key.Binding{
		k.Done,
		k.ForceQuit,
	}
}

func (k KeyMap) DialogShortHelp() []key.Binding {
	return []key.Binding{
		k.Save,
		k.NextField,
		k.External,
		k.Cancel,
		k.Close,
	}
}

func (k KeyMap) ConfirmShortHelp() []key.Binding {
	return []key.Binding{
		k.Yes,
		k.No,
	}
}

type searchKeyMap struct{ KeyMap }

func (k searchKeyMap) ShortHelp() []key.Binding { return k.KeyMap.SearchShortHelp() }

type dialogKeyMap struct{ KeyMap }

func (k dialogKeyMap) ShortHelp() []key.Binding { return k.KeyMap.DialogShortHelp() }

type confirmKeyMap struct{ KeyMap }

func (k confirmKeyMap) ShortHelp() []key.Binding { return k.KeyMap.ConfirmShortHelp() }
