// Package todotxt converts between todo.txt lines and model tasks.
package todotxt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
)

// Parse reads one line. Relative due and threshold values such as
// "due:+1w" are resolved against today and rewritten as dates.
func Parse(line string, today time.Time) model.Task {
	var task model.Task
	rest := strings.TrimSpace(line)

	if strings.HasPrefix(rest, "x ") {
		task.Finished = true
		rest = strings.TrimLeft(rest[2:], " ")
	}
	if p, tail, ok := cutPriority(rest); ok {
		task.Priority = p
		rest = tail
	}
	first, tail, ok := cutDate(rest)
	if ok {
		rest = tail
		if second, tail, ok := cutDate(rest); ok && task.Finished {
			task.FinishDate = &first
			task.CreateDate = &second
			rest = tail
		} else if task.Finished {
			task.FinishDate = &first
		} else {
			task.CreateDate = &first
		}
	}

	words := strings.Fields(rest)
	for i, w := range words {
		switch {
		case len(w) > 1 && w[0] == '+':
			task.Projects = appendUnique(task.Projects, w[1:])
		case len(w) > 1 && w[0] == '@':
			task.Contexts = appendUnique(task.Contexts, w[1:])
		case len(w) > 1 && w[0] == '#':
			task.Hashtags = appendUnique(task.Hashtags, w[1:])
		default:
			key, value, ok := splitTag(w)
			if !ok {
				continue
			}
			if key == model.TagDue || key == model.TagThreshold {
				value = resolveDate(value, today)
				words[i] = key + ":" + value
			}
			task.Tags.Set(key, value)
		}
	}
	task.Subject = strings.Join(words, " ")

	for _, key := range []string{model.TagDue, model.TagThreshold, model.TagRecurrence} {
		if v, ok := task.Tags.Get(key); ok {
			setTyped(&task, key, v)
		}
	}
	return task
}

// Format renders a task back into a single todo.txt line.
func Format(task model.Task) string {
	var b strings.Builder
	if task.Finished {
		b.WriteString("x ")
	}
	if task.Priority.IsSet() {
		fmt.Fprintf(&b, "(%s) ", task.Priority)
	}
	if task.Finished && task.FinishDate != nil {
		b.WriteString(dates.Format(*task.FinishDate))
		b.WriteByte(' ')
	}
	if task.CreateDate != nil {
		b.WriteString(dates.Format(*task.CreateDate))
		b.WriteByte(' ')
	}
	b.WriteString(task.Subject)
	return strings.TrimRight(b.String(), " ")
}

// ReadAll parses every non-blank line of r.
func ReadAll(r io.Reader, today time.Time) ([]model.Task, error) {
	tasks := make([]model.Task, 0, 64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tasks = append(tasks, Parse(line, today))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("todotxt: read lines: %w", err)
	}
	return tasks, nil
}

// WriteAll writes one line per task.
func WriteAll(w io.Writer, tasks []model.Task) error {
	bw := bufio.NewWriter(w)
	for _, task := range tasks {
		if _, err := bw.WriteString(Format(task) + "\n"); err != nil {
			return fmt.Errorf("todotxt: write line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("todotxt: flush: %w", err)
	}
	return nil
}

func cutPriority(s string) (model.Priority, string, bool) {
	if len(s) < 4 || s[0] != '(' || s[2] != ')' || s[3] != ' ' {
		return model.NoPriority, s, false
	}
	p, err := model.ParsePriority(s[:3])
	if err != nil {
		return model.NoPriority, s, false
	}
	return p, strings.TrimLeft(s[4:], " "), true
}

func cutDate(s string) (time.Time, string, bool) {
	word, tail, _ := strings.Cut(s, " ")
	if strings.Count(word, "-") != 2 {
		return time.Time{}, s, false
	}
	d, err := dates.ParseDate(word)
	if err != nil {
		return time.Time{}, s, false
	}
	return d, strings.TrimLeft(tail, " "), true
}

// splitTag accepts key:value words. Values starting with "/" are treated as
// URLs, not tags.
func splitTag(w string) (string, string, bool) {
	key, value, ok := strings.Cut(w, ":")
	if !ok || key == "" || value == "" || strings.HasPrefix(value, "/") {
		return "", "", false
	}
	return key, value, true
}

func resolveDate(value string, today time.Time) string {
	if d, err := dates.ParseDate(value); err == nil {
		return dates.Format(d)
	}
	d, err := dates.Eval(value, today)
	if err != nil {
		return value
	}
	return dates.Format(d)
}

func setTyped(task *model.Task, key, value string) {
	switch key {
	case model.TagDue, model.TagThreshold:
		d, err := dates.ParseDate(value)
		if err != nil {
			return
		}
		if key == model.TagDue {
			task.DueDate = &d
		} else {
			task.ThresholdDate = &d
		}
	case model.TagRecurrence:
		if r, err := model.ParseRecurrence(value); err == nil {
			task.Recurrence = &r
		}
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
