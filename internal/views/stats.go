package views

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
)

type ProjectStats struct {
	Name   string
	Active int
	Done   int
}

// Stats summarises a task list. Overdue and Soon count only unfinished
// tasks; Soon excludes the overdue ones.
type Stats struct {
	Total     int
	Active    int
	Done      int
	Overdue   int
	Soon      int
	Recurring int
	Running   int
	Spent     time.Duration
	Projects  []ProjectStats
}

func ComputeStats(tasks []model.Task, now time.Time, soonDays int) Stats {
	today := dates.Truncate(now)
	soon := dates.AddDays(today, soonDays)
	s := Stats{Total: len(tasks)}
	byName := make(map[string]*ProjectStats)
	for _, t := range tasks {
		if t.Finished {
			s.Done++
		} else {
			s.Active++
			if t.DueDate != nil {
				switch {
				case t.DueDate.Before(today):
					s.Overdue++
				case t.DueDate.Before(soon):
					s.Soon++
				}
			}
		}
		if t.Recurrence != nil {
			s.Recurring++
		}
		if t.IsTimerOn() {
			s.Running++
		}
		s.Spent += t.SpentTime(now)
		for _, p := range t.Projects {
			ps, ok := byName[strings.ToLower(p)]
			if !ok {
				ps = &ProjectStats{Name: p}
				byName[strings.ToLower(p)] = ps
			}
			if t.Finished {
				ps.Done++
			} else {
				ps.Active++
			}
		}
	}
	s.Projects = make([]ProjectStats, 0, len(byName))
	for _, ps := range byName {
		s.Projects = append(s.Projects, *ps)
	}
	slices.SortFunc(s.Projects, func(a, b ProjectStats) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return s
}

// Markdown renders the summary for RenderMarkdown.
func (s Stats) Markdown() string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	b.WriteString("| | count |\n|---|---:|\n")
	rows := []struct {
		label string
		n     int
	}{
		{"total", s.Total},
		{"active", s.Active},
		{"done", s.Done},
		{"overdue", s.Overdue},
		{"due soon", s.Soon},
		{"recurring", s.Recurring},
		{"running timers", s.Running},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %d |\n", r.label, r.n)
	}
	fmt.Fprintf(&b, "\nTime spent: **%s**\n", FormatSpent(s.Spent))
	if len(s.Projects) > 0 {
		b.WriteString("\n## Projects\n\n")
		for _, p := range s.Projects {
			fmt.Fprintf(&b, "- +%s: %d active, %d done\n", p.Name, p.Active, p.Done)
		}
	}
	return b.String()
}

// FormatSpent prints a duration as h:mm:ss.
func FormatSpent(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}
