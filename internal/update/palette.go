package update

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasktxt/internal/commands"
	"github.com/sandeepkv93/tasktxt/internal/todo"
)

func (m Model) openInput(mode Mode, value string) Model {
	m.Mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) closeInput() Model {
	m.Mode = ModeList
	m.input.SetValue("")
	m.input.Blur()
	return m
}

// handleInputKey drives the filter, command and add lines.
func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.Mode == ModeFilter {
			m.Query = ""
			m.refresh()
		}
		m = m.closeInput()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.Mode
		m = m.closeInput()
		switch mode {
		case ModeCommand:
			return m.executePaletteCommand(value)
		case ModeAdd:
			return m.executePaletteCommand(string(commands.TypeAdd) + " " + value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	if msg.Type == tea.KeyRunes {
		m.input.SetValue(m.input.Value() + string(msg.Runes))
		m.input.CursorEnd()
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	if m.Mode == ModeFilter {
		m.Query = m.input.Value()
		m.refresh()
	}
	return m, cmd
}

// targets returns the ids a command acts on: every visible task for "all",
// otherwise the selected one.
func (m Model) targets(all bool) ([]int, error) {
	if all {
		return slices.Clone(m.Visible), nil
	}
	id, ok := m.Selected()
	if !ok {
		return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
	}
	return []int{id}, nil
}

func (m Model) executePaletteCommand(raw string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Bar = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	now, today := m.now(), m.today()
	mutated := false
	changedMsg := func(verb string, changed []bool) (commands.Result, error) {
		n := countTrue(changed)
		mutated = mutated || n > 0
		return commands.Result{Message: fmt.Sprintf("%s %s", verb, plural(n, "task"))}, nil
	}
	onTargets := func(all bool, verb string, fn func(ids []int) ([]bool, error)) (commands.Result, error) {
		ids, err := m.targets(all)
		if err != nil {
			return commands.Result{}, err
		}
		changed, err := fn(ids)
		if err != nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		return changedMsg(verb, changed)
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			tasks, id, err := todo.Add(m.Tasks, a.Subject, m.autoCreate, today)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Tasks = tasks
			mutated = true
			return commands.Result{Message: fmt.Sprintf("added task %d", id)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			return onTargets(a.All, "completed", func(ids []int) ([]bool, error) {
				tasks, changed := todo.Done(m.Tasks, ids, m.completion, now)
				m.Tasks = tasks
				return changed, nil
			})
		},
		Undone: func(a commands.TargetArgs) (commands.Result, error) {
			return onTargets(a.All, "reopened", func(ids []int) ([]bool, error) {
				return todo.Undone(m.Tasks, ids, m.completion.Mode), nil
			})
		},
		Start: func(a commands.TargetArgs) (commands.Result, error) {
			return onTargets(a.All, "started timer on", func(ids []int) ([]bool, error) {
				return todo.Start(m.Tasks, ids, now), nil
			})
		},
		Stop: func(a commands.TargetArgs) (commands.Result, error) {
			return onTargets(a.All, "stopped timer on", func(ids []int) ([]bool, error) {
				return todo.Stop(m.Tasks, ids, now), nil
			})
		},
		Due: func(a commands.DateArgs) (commands.Result, error) {
			return onTargets(a.All, "updated due date of", func(ids []int) ([]bool, error) {
				return todo.Edit(m.Tasks, ids, todo.EditConf{Due: a.Edit}, today)
			})
		},
		Threshold: func(a commands.DateArgs) (commands.Result, error) {
			return onTargets(a.All, "updated threshold of", func(ids []int) ([]bool, error) {
				return todo.Edit(m.Tasks, ids, todo.EditConf{Threshold: a.Edit}, today)
			})
		},
		Recurrence: func(a commands.RecurrenceArgs) (commands.Result, error) {
			return onTargets(a.All, "updated recurrence of", func(ids []int) ([]bool, error) {
				return todo.Edit(m.Tasks, ids, todo.EditConf{Recurrence: a.Edit}, today)
			})
		},
		Priority: func(a commands.PriorityArgs) (commands.Result, error) {
			return onTargets(a.All, "updated priority of", func(ids []int) ([]bool, error) {
				return todo.Edit(m.Tasks, ids, todo.EditConf{Priority: a.Edit}, today)
			})
		},
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			m.SortFields = a.Fields
			m.Reverse = a.Reverse
			return commands.Result{Message: "sort: " + sortLabel(m.SortFields, m.Reverse)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Query = a.Query
			if a.Query == "" {
				return commands.Result{Message: "filter cleared"}, nil
			}
			return commands.Result{Message: "filter: " + a.Query}, nil
		},
	})
	if err != nil {
		m.Bar = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Bar = StatusBar{Text: res.Message}
	}
	m.refresh()
	if !mutated {
		return m, nil
	}
	m.Dirty = true
	return m, m.saveCmd()
}
