package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
)

type ListData struct {
	Tasks []model.Task
	IDs   []int
	// Cursor indexes IDs; a negative value hides the cursor.
	Cursor   int
	Now      time.Time
	SoonDays int
}

// RenderList draws one line per listed task. Finished tasks are dimmed,
// overdue ones red, tasks due soon yellow and (A) tasks bold.
func RenderList(data ListData) string {
	if len(data.IDs) == 0 {
		return "(no tasks)"
	}
	today := dates.Truncate(data.Now)
	width := len(strconv.Itoa(len(data.Tasks)))
	var b strings.Builder
	for i, id := range data.IDs {
		if id < 0 || id >= len(data.Tasks) {
			continue
		}
		t := data.Tasks[id]
		cursor := " "
		style := rowStyle(t, today, data.SoonDays)
		if i == data.Cursor {
			cursor = ">"
			style = cursorStyle.Inherit(style)
		}
		b.WriteString(cursor + " " + style.Render(FormatRow(id, t, today, width)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatRow renders the unstyled columns of a task line: id, done mark,
// priority, due date with its distance from today, and subject.
func FormatRow(id int, t model.Task, today time.Time, idWidth int) string {
	mark := " "
	if t.Finished {
		mark = "x"
	}
	pri := "   "
	if t.Priority.IsSet() {
		pri = "(" + t.Priority.String() + ")"
	}
	due := ""
	if t.DueDate != nil {
		due = dates.Format(*t.DueDate)
	}
	return fmt.Sprintf("%*d %s %s %-10s %-14s %s", idWidth, id, mark, pri, due, DueLabel(t.DueDate, today), t.Subject)
}

// DueLabel describes a due date relative to today ("today", "2 days ago",
// "1 week from now"); empty for no date.
func DueLabel(due *time.Time, today time.Time) string {
	if due == nil {
		return ""
	}
	d := dates.Truncate(*due)
	today = dates.Truncate(today)
	if d.Equal(today) {
		return "today"
	}
	return humanize.RelTime(d, today, "ago", "from now")
}

func rowStyle(t model.Task, today time.Time, soonDays int) lipgloss.Style {
	switch {
	case t.Finished:
		return doneStyle
	case t.DueDate != nil && t.DueDate.Before(today):
		return errorStyle
	case t.DueDate != nil && soonDays > 0 && t.DueDate.Before(dates.AddDays(today, soonDays)):
		return warnStyle
	case t.Priority == 'A':
		return topStyle
	default:
		return lipgloss.NewStyle()
	}
}
