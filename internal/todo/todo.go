// Package todo applies state changes to a task collection by position.
//
// Every mutator takes an optional id list (nil means every task) and
// returns a vector of the same length as that list telling which entries
// changed. Ids outside the collection are reported unchanged.
package todo

import (
	"errors"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

var ErrEmptySubject = errors.New("todo: task subject is empty")

// AllIDs returns 0..n-1.
func AllIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func each(tasks []model.Task, ids []int, fn func(t *model.Task) bool) []bool {
	if ids == nil {
		ids = AllIDs(len(tasks))
	}
	changed := make([]bool, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(tasks) {
			continue
		}
		changed[i] = fn(&tasks[id])
	}
	return changed
}

// Done completes the selected tasks. Recurring tasks whose recurrence
// yields a next occurrence get a follow-up appended to the returned slice.
// Appended tasks are never completed by the same call.
func Done(tasks []model.Task, ids []int, cfg model.CompletionConfig, now time.Time) ([]model.Task, []bool) {
	today := dates.Truncate(now)
	var spawned []model.Task
	changed := each(tasks, ids, func(t *model.Task) bool {
		before := t.Clone()
		if !t.Complete(now, cfg) {
			return false
		}
		if before.Recurrence != nil {
			if next, ok := before.Spawn(today); ok {
				spawned = append(spawned, next)
			}
		}
		return true
	})
	return append(tasks, spawned...), changed
}

// Undone reopens the selected tasks. Recurring tasks stay finished.
func Undone(tasks []model.Task, ids []int, mode model.CompletionMode) []bool {
	return each(tasks, ids, func(t *model.Task) bool {
		return t.Uncomplete(mode)
	})
}

func Start(tasks []model.Task, ids []int, now time.Time) []bool {
	return each(tasks, ids, func(t *model.Task) bool {
		return t.StartTimer(now)
	})
}

func Stop(tasks []model.Task, ids []int, now time.Time) []bool {
	return each(tasks, ids, func(t *model.Task) bool {
		return t.StopTimer(now)
	})
}

// Add parses subject as a new task and appends it. With autoCreateDate a
// missing creation date is set to today.
func Add(tasks []model.Task, subject string, autoCreateDate bool, today time.Time) ([]model.Task, int, error) {
	if strings.TrimSpace(subject) == "" {
		return tasks, -1, ErrEmptySubject
	}
	task := todotxt.Parse(subject, today)
	if strings.TrimSpace(task.Subject) == "" {
		return tasks, -1, ErrEmptySubject
	}
	if autoCreateDate && task.CreateDate == nil {
		task.CreateDate = model.DatePtr(today)
	}
	tasks = append(tasks, task)
	return tasks, len(tasks) - 1, nil
}
