package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
)

var (
	ErrInvalidRecurrence = errors.New("model: invalid recurrence")
	ErrInvalidInterval   = errors.New("model: invalid recurrence interval")
)

// Recurrence is a rec: tag value such as "1w" or "+3b". Strict recurrences
// advance from the previous due date, the others from the completion day.
type Recurrence struct {
	Count  int
	Unit   dates.Unit
	Strict bool
}

func ParseRecurrence(s string) (Recurrence, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), TagRecurrence+":")
	var r Recurrence
	if strings.HasPrefix(v, "+") {
		r.Strict = true
		v = v[1:]
	}
	if len(v) < 2 {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
	}
	r.Unit = dates.Unit(strings.ToLower(v[len(v)-1:])[0])
	n, err := strconv.Atoi(v[:len(v)-1])
	if err != nil || strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+") {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
	}
	r.Count = n
	if err := r.Validate(); err != nil {
		return Recurrence{}, fmt.Errorf("%w (%q)", err, s)
	}
	return r, nil
}

func (r Recurrence) Validate() error {
	if !r.Unit.IsValid() {
		return fmt.Errorf("%w: unit %q", ErrInvalidRecurrence, r.Unit.String())
	}
	if r.Count <= 0 || r.Count > dates.MaxOffset {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Count)
	}
	return nil
}

func (r Recurrence) String() string {
	prefix := ""
	if r.Strict {
		prefix = "+"
	}
	return fmt.Sprintf("%s%d%s", prefix, r.Count, r.Unit)
}

// NextAfter returns base moved forward by one period.
func (r Recurrence) NextAfter(base time.Time) time.Time {
	return dates.Add(base, r.Count, r.Unit)
}

// Preview lists the next count dates after from.
func (r Recurrence) Preview(from time.Time, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	out := make([]time.Time, 0, count)
	cursor := dates.Truncate(from)
	for i := 0; i < count; i++ {
		cursor = r.NextAfter(cursor)
		out = append(out, cursor)
	}
	return out
}

// Occurrence is the outcome of completing a recurring task.
type Occurrence struct {
	Due       *time.Time
	Threshold *time.Time
	Spawn     bool
}

// Next computes the dates of the follow-up task. Without a due or threshold
// date nothing is spawned. The anchor is the due date (threshold when due is
// absent) for strict recurrences and today otherwise; the period is added
// at least once and repeated until the result is not before today. When
// both dates exist a strict threshold advances by the same periods as the
// due date, and otherwise keeps its distance in days to the due date. A
// result past until suppresses the spawn.
func (r Recurrence) Next(due, threshold, until *time.Time, today time.Time) Occurrence {
	if due == nil && threshold == nil {
		return Occurrence{}
	}
	if r.Validate() != nil {
		return Occurrence{}
	}
	today = dates.Truncate(today)

	primary := due
	if primary == nil {
		primary = threshold
	}
	start := today
	if r.Strict {
		start = dates.Truncate(*primary)
	}
	next := r.NextAfter(start)
	steps := 1
	for next.Before(today) {
		next = r.NextAfter(next)
		steps++
	}

	var occ Occurrence
	if due != nil {
		occ.Due = &next
		if threshold != nil {
			var thr time.Time
			if r.Strict {
				thr = dates.Truncate(*threshold)
				for i := 0; i < steps; i++ {
					thr = r.NextAfter(thr)
				}
			} else {
				gap := int(dates.Truncate(*due).Sub(dates.Truncate(*threshold)).Hours() / 24)
				thr = dates.AddDays(next, -gap)
			}
			occ.Threshold = &thr
		}
	} else {
		occ.Threshold = &next
	}
	occ.Spawn = until == nil || !next.After(dates.Truncate(*until))
	return occ
}

// NextOccurrence runs the task's recurrence against its own dates and
// until tag.
func (t Task) NextOccurrence(today time.Time) Occurrence {
	if t.Recurrence == nil {
		return Occurrence{}
	}
	return t.Recurrence.Next(t.DueDate, t.ThresholdDate, t.Until(), today)
}
