package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	m.helpModel.ShowAll = true
	return "help:\n" + m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  chunk(bindings, 4),
	})
}

func (m Model) listBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Down, Action: "next task"},
		{Key: m.Keys.Up, Action: "previous task"},
		{Key: m.Keys.Done, Action: "complete"},
		{Key: m.Keys.Undone, Action: "reopen"},
		{Key: m.Keys.Timer, Action: "start/stop timer"},
		{Key: m.Keys.DueLater, Action: "due +1d"},
		{Key: m.Keys.DueSooner, Action: "due -1d"},
		{Key: "a", Action: "add task"},
		{Key: m.Keys.Filter, Action: "filter (~ for fuzzy)"},
		{Key: m.Keys.Command, Action: "command"},
		{Key: "tab", Action: "active/all/done"},
		{Key: "p", Action: "recurrence preview"},
		{Key: "r", Action: "reload file"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) inputBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "enter", Action: "apply"},
		{Key: "esc", Action: "cancel"},
	}
}

func (m Model) helpBindings() []key.Binding {
	source := m.listBindings()
	if m.Mode != ModeList {
		source = m.inputBindings()
	}
	out := make([]key.Binding, 0, len(source))
	for _, kb := range source {
		if kb.Key == "" {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) footer() string {
	return fmt.Sprintf("keys: %s/%s move | %s done | %s filter | %s cmd | %s help | %s quit",
		m.Keys.Down, m.Keys.Up, m.Keys.Done, m.Keys.Filter, m.Keys.Command, m.Keys.Help, m.Keys.Quit)
}

func chunk(bindings []key.Binding, size int) [][]key.Binding {
	var out [][]key.Binding
	for len(bindings) > size {
		out = append(out, bindings[:size])
		bindings = bindings[size:]
	}
	if len(bindings) > 0 {
		out = append(out, bindings)
	}
	return out
}
