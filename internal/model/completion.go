package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
)

var ErrInvalidCompletionMode = errors.New("model: invalid completion mode")

// CompletionMode selects what happens to the priority of a completed task.
type CompletionMode string

const (
	CompletionJustMark       CompletionMode = "just_mark"
	CompletionMovePriority   CompletionMode = "move_priority"
	CompletionPriorityToTag  CompletionMode = "priority_to_tag"
	CompletionRemovePriority CompletionMode = "remove_priority"
)

func (m CompletionMode) IsValid() bool {
	switch m {
	case CompletionJustMark, CompletionMovePriority, CompletionPriorityToTag, CompletionRemovePriority:
		return true
	default:
		return false
	}
}

// CompletionDateMode selects when a finish date is stamped.
type CompletionDateMode string

const (
	DateWhenCreated CompletionDateMode = "when_created"
	DateAlwaysSet   CompletionDateMode = "always"
)

func (m CompletionDateMode) IsValid() bool {
	return m == DateWhenCreated || m == DateAlwaysSet
}

type CompletionConfig struct {
	Mode     CompletionMode
	DateMode CompletionDateMode
}

func DefaultCompletionConfig() CompletionConfig {
	return CompletionConfig{Mode: CompletionJustMark, DateMode: DateWhenCreated}
}

func ParseCompletionConfig(mode, dateMode string) (CompletionConfig, error) {
	cfg := DefaultCompletionConfig()
	if v := strings.TrimSpace(strings.ToLower(mode)); v != "" {
		cfg.Mode = CompletionMode(v)
	}
	if v := strings.TrimSpace(strings.ToLower(dateMode)); v != "" {
		cfg.DateMode = CompletionDateMode(v)
	}
	if err := cfg.Validate(); err != nil {
		return CompletionConfig{}, err
	}
	return cfg, nil
}

func (c CompletionConfig) Validate() error {
	if !c.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCompletionMode, c.Mode)
	}
	if !c.DateMode.IsValid() {
		return fmt.Errorf("%w: date mode %q", ErrInvalidCompletionMode, c.DateMode)
	}
	return nil
}

// Complete marks an unfinished task as done at now. The timer is stopped and
// the finish date is stamped when the date mode allows it.
func (t *Task) Complete(now time.Time, cfg CompletionConfig) bool {
	if t.Finished {
		return false
	}
	t.StopTimer(now)
	t.Finished = true
	if cfg.DateMode == DateAlwaysSet || t.CreateDate != nil {
		t.FinishDate = DatePtr(now)
	}
	if !t.Priority.IsSet() {
		return true
	}
	switch cfg.Mode {
	case CompletionMovePriority:
		t.Subject = "(" + t.Priority.String() + ") " + t.Subject
		t.Priority = NoPriority
	case CompletionPriorityToTag:
		t.SetTag(TagPriority, t.Priority.String())
		t.Priority = NoPriority
	case CompletionRemovePriority:
		t.Priority = NoPriority
	}
	return true
}

// Uncomplete reopens a finished non-recurring task and restores a priority
// stored by the completion mode.
func (t *Task) Uncomplete(mode CompletionMode) bool {
	if !t.Finished || t.Recurrence != nil {
		return false
	}
	t.Finished = false
	t.FinishDate = nil
	switch mode {
	case CompletionMovePriority:
		if len(t.Subject) >= 4 && t.Subject[0] == '(' && t.Subject[2] == ')' && t.Subject[3] == ' ' {
			if p, err := ParsePriority(t.Subject[:3]); err == nil {
				t.Priority = p
				t.Subject = t.Subject[4:]
			}
		}
	case CompletionPriorityToTag:
		if v, ok := t.Tags.Get(TagPriority); ok {
			if p, err := ParsePriority(v); err == nil {
				t.Priority = p
				t.SetTag(TagPriority, "")
			}
		}
	}
	return true
}

// Spawn builds the follow-up of a recurring task from its state before
// completion. It reports false when the recurrence has no anchor date or
// has expired.
func (t Task) Spawn(today time.Time) (Task, bool) {
	occ := t.NextOccurrence(today)
	if !occ.Spawn {
		return Task{}, false
	}
	next := t.Clone()
	next.SetTag(TagTimer, "")
	next.SetTag(TagSpent, "")
	next.SetDate(TagDue, occ.Due)
	next.SetDate(TagThreshold, occ.Threshold)
	next.Finished = false
	next.FinishDate = nil
	if t.CreateDate != nil {
		next.CreateDate = DatePtr(dates.Truncate(today))
	}
	return next, true
}
