package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// loadCmd reads the task file through the store.
func (m Model) loadCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, today := m.store, m.today()
	return func() tea.Msg {
		tasks, err := store.Load(context.Background(), today)
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

// saveCmd writes a snapshot of the tasks. Without a store the model just
// stays dirty.
func (m Model) saveCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, snapshot := m.store, cloneTasks(m.Tasks)
	return func() tea.Msg {
		if err := store.Save(context.Background(), snapshot); err != nil {
			return SavedMsg{Err: fmt.Errorf("save: %w", err)}
		}
		return SavedMsg{}
	}
}

func waitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}

// applyLoaded replaces the task list, keeping the cursor on the same
// position.
func (m *Model) applyLoaded(msg TasksLoadedMsg) {
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Bar = StatusBar{Text: msg.Err.Error(), IsError: true}
		return
	}
	m.Tasks = msg.Tasks
	m.Dirty = false
	m.refresh()
	m.Bar = StatusBar{Text: fmt.Sprintf("loaded %s", plural(len(m.Tasks), "task"))}
}
