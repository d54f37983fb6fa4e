package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasktxt/internal/filter"
	"github.com/sandeepkv93/tasktxt/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), waitForChangeCmd(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Mode != ModeList {
			return m.handleInputKey(typed)
		}
		return m.handleListKey(typed)
	case TasksLoadedMsg:
		m.applyLoaded(typed)
		return m, nil
	case FileChangedMsg:
		// A pending save would overwrite whatever changed on disk; reload
		// only a clean model.
		if m.Dirty {
			return m, waitForChangeCmd(m.changes)
		}
		return m, tea.Batch(m.loadCmd(), waitForChangeCmd(m.changes))
	case SavedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Bar = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Dirty = false
		return m, nil
	case SetStatusMsg:
		m.Bar = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Bar = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Bar = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Down, "down":
		m.Cursor = clamp(m.Cursor+1, 0, len(m.Visible)-1)
		m.Preview.refresh(m.selectedTask(), m.today())
	case m.Keys.Up, "up":
		m.Cursor = clamp(m.Cursor-1, 0, len(m.Visible)-1)
		m.Preview.refresh(m.selectedTask(), m.today())
	case m.Keys.Done:
		if t := m.selectedTask(); t != nil && t.Finished {
			return m.executePaletteCommand("undone")
		}
		return m.executePaletteCommand("done")
	case m.Keys.Undone:
		return m.executePaletteCommand("undone")
	case m.Keys.Timer:
		if t := m.selectedTask(); t != nil && t.IsTimerOn() {
			return m.executePaletteCommand("stop")
		}
		return m.executePaletteCommand("start")
	case m.Keys.DueLater, m.Keys.DueSooner:
		t := m.selectedTask()
		if t == nil {
			return m, nil
		}
		if t.DueDate == nil {
			return m.executePaletteCommand("due today")
		}
		if msg.String() == m.Keys.DueLater {
			return m.executePaletteCommand("due +1d")
		}
		return m.executePaletteCommand("due -1d")
	case m.Keys.Filter:
		return m.openInput(ModeFilter, m.Query), nil
	case m.Keys.Command:
		return m.openInput(ModeCommand, ""), nil
	case "a":
		return m.openInput(ModeAdd, ""), nil
	case "tab":
		m.Status = nextStatus(m.Status)
		m.refresh()
		m.Bar = StatusBar{Text: "showing " + statusLabel(m.Status) + " tasks"}
	case "p":
		m.Preview.Visible = !m.Preview.Visible
		m.Preview.refresh(m.selectedTask(), m.today())
	case "r":
		if m.store == nil {
			m.Bar = StatusBar{Text: "no task file to reload", IsError: true}
			return m, nil
		}
		return m, m.loadCmd()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func nextStatus(s filter.Status) filter.Status {
	switch s {
	case filter.StatusActive:
		return filter.StatusAny
	case filter.StatusAny:
		return filter.StatusDone
	default:
		return filter.StatusActive
	}
}

func statusLabel(s filter.Status) string {
	switch s {
	case filter.StatusActive:
		return "active"
	case filter.StatusDone:
		return "done"
	default:
		return "all"
	}
}

func (m Model) View() string {
	input := ""
	switch m.Mode {
	case ModeFilter:
		input = "/" + m.input.View()
	case ModeCommand:
		input = ":" + m.input.View()
	case ModeAdd:
		input = "add: " + m.input.View()
	}
	body := views.RenderList(views.ListData{
		Tasks:    m.Tasks,
		IDs:      m.Visible,
		Cursor:   m.Cursor,
		Now:      m.now(),
		SoonDays: m.soonDays,
	})
	if preview := m.Preview.render(); preview != "" {
		body += "\n\n" + preview
	}

	header := fmt.Sprintf("tasktxt | %d/%d %s | sort: %s", len(m.Visible), len(m.Tasks), statusLabel(m.Status), sortLabel(m.SortFields, m.Reverse))
	if q := strings.TrimSpace(m.Query); q != "" {
		header += " | filter: " + q
	}
	if m.Dirty {
		header += " | unsaved"
	}
	return views.RenderApp(views.AppData{
		Header:     header,
		Body:       body,
		Input:      input,
		StatusLine: m.Bar.Text,
		IsError:    m.Bar.IsError,
		Help:       m.renderHelpIfVisible(),
		Footer:     m.footer(),
	})
}
