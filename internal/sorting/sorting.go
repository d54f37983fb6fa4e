// Package sorting orders task ids by a list of comparator keys.
package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/model"
)

var ErrUnknownField = errors.New("sorting: unknown sort field")

type Field string

const (
	FieldPriority  Field = "pri"
	FieldDue       Field = "due"
	FieldThreshold Field = "thr"
	FieldCompleted Field = "completed"
	FieldCreated   Field = "created"
	FieldSubject   Field = "subject"
	FieldDone      Field = "done"
	FieldProject   Field = "proj"
	FieldContext   Field = "ctx"
)

var aliases = map[string]Field{
	"pri":       FieldPriority,
	"priority":  FieldPriority,
	"due":       FieldDue,
	"thr":       FieldThreshold,
	"completed": FieldCompleted,
	"finished":  FieldCompleted,
	"created":   FieldCreated,
	"create":    FieldCreated,
	"subject":   FieldSubject,
	"subj":      FieldSubject,
	"text":      FieldSubject,
	"done":      FieldDone,
	"proj":      FieldProject,
	"project":   FieldProject,
	"ctx":       FieldContext,
	"context":   FieldContext,
}

func (f Field) IsValid() bool {
	_, ok := aliases[string(f)]
	return ok
}

// ParseFields reads a list such as "pri,due:subj". Both "," and ":"
// separate names.
func ParseFields(s string) ([]Field, error) {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ':' || r == ' '
	})
	fields := make([]Field, 0, len(parts))
	for _, p := range parts {
		f, ok := aliases[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, p)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Sort stable-sorts ids by fields, each key breaking ties of the previous
// one, then reverses the whole list when reverse is set. Ids outside tasks
// go to the end. An empty field list leaves ids untouched.
func Sort(ids []int, tasks []model.Task, fields []Field, reverse bool) {
	if len(fields) == 0 {
		return
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		aIn, bIn := a >= 0 && a < len(tasks), b >= 0 && b < len(tasks)
		switch {
		case !aIn && !bIn:
			return 0
		case !aIn:
			return 1
		case !bIn:
			return -1
		}
		for _, f := range fields {
			if c := compareField(f, &tasks[a], &tasks[b]); c != 0 {
				return c
			}
		}
		return 0
	})
	if reverse {
		slices.Reverse(ids)
	}
}

func compareField(f Field, a, b *model.Task) int {
	switch aliases[string(f)] {
	case FieldPriority:
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	case FieldDue:
		return compareDates(a.DueDate, b.DueDate)
	case FieldThreshold:
		return compareDates(a.ThresholdDate, b.ThresholdDate)
	case FieldCompleted:
		return compareDates(finishDate(a), finishDate(b))
	case FieldCreated:
		return compareDates(a.CreateDate, b.CreateDate)
	case FieldSubject:
		return strings.Compare(a.Subject, b.Subject)
	case FieldDone:
		return cmp.Compare(doneTier(a), doneTier(b))
	case FieldProject:
		return compareLists(a.Projects, b.Projects)
	case FieldContext:
		return compareLists(a.Contexts, b.Contexts)
	default:
		return 0
	}
}

// compareDates puts absent dates last.
func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

func finishDate(t *model.Task) *time.Time {
	if !t.Finished {
		return nil
	}
	return t.FinishDate
}

// doneTier: open tasks, then recurring tasks, then finished ones.
func doneTier(t *model.Task) int {
	switch {
	case t.Recurrence != nil:
		return 1
	case t.Finished:
		return 2
	default:
		return 0
	}
}

// compareLists compares names pairwise in appearance order, ignoring case.
// Empty lists go last and a prefix list goes before the longer one.
func compareLists(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}
	for i := 0; i < min(len(a), len(b)); i++ {
		if c := strings.Compare(strings.ToLower(a[i]), strings.ToLower(b[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
