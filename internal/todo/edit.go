package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
)

// Action is the kind of change applied to one field.
type Action int

const (
	ActNone Action = iota
	ActSet
	ActDelete
	// ActShift moves an existing date by an offset chain.
	ActShift
	ActIncrease
	ActDecrease
)

type DateEdit struct {
	Act  Action
	Expr string
}

type RecurrenceEdit struct {
	Act   Action
	Value string
}

type PriorityEdit struct {
	Act   Action
	Value model.Priority
}

// EditConf lists the field changes of one Edit call.
type EditConf struct {
	Due        DateEdit
	Threshold  DateEdit
	Recurrence RecurrenceEdit
	Priority   PriorityEdit
}

// ParseDateEdit reads a command line value: "none" deletes, a value with
// a leading "+" or "-" and no base shifts the current date, anything else
// is a date expression to set.
func ParseDateEdit(s string) DateEdit {
	v := strings.TrimSpace(s)
	switch {
	case v == "":
		return DateEdit{}
	case strings.EqualFold(v, dates.KeywordNone):
		return DateEdit{Act: ActDelete}
	case v[0] == '+' || v[0] == '-':
		return DateEdit{Act: ActShift, Expr: v}
	default:
		return DateEdit{Act: ActSet, Expr: v}
	}
}

// Edit applies c to the selected tasks. Expressions are checked before any
// task is touched, so an invalid edit changes nothing.
func Edit(tasks []model.Task, ids []int, c EditConf, today time.Time) ([]bool, error) {
	due, err := prepareDate(c.Due, today)
	if err != nil {
		return nil, fmt.Errorf("due: %w", err)
	}
	thr, err := prepareDate(c.Threshold, today)
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	var rec *model.Recurrence
	if c.Recurrence.Act == ActSet {
		r, err := model.ParseRecurrence(c.Recurrence.Value)
		if err != nil {
			return nil, err
		}
		rec = &r
	}
	if c.Priority.Act == ActSet && !c.Priority.Value.IsSet() {
		return nil, fmt.Errorf("%w: empty", model.ErrInvalidPriority)
	}

	return each(tasks, ids, func(t *model.Task) bool {
		changed := editPriority(t, c.Priority)
		changed = editDate(t, model.TagDue, t.DueDate, c.Due.Act, due) || changed
		changed = editDate(t, model.TagThreshold, t.ThresholdDate, c.Threshold.Act, thr) || changed
		changed = editRecurrence(t, c.Recurrence.Act, rec) || changed
		return changed
	}), nil
}

// preparedDate holds either a resolved date or a parsed offset chain.
type preparedDate struct {
	date    time.Time
	offsets []dates.Offset
}

func prepareDate(e DateEdit, today time.Time) (preparedDate, error) {
	switch e.Act {
	case ActSet:
		d, err := dates.Eval(e.Expr, today)
		if errors.Is(err, dates.ErrNoDate) {
			return preparedDate{}, fmt.Errorf("%w: use delete to remove a date", dates.ErrInvalidExpression)
		}
		return preparedDate{date: d}, err
	case ActShift:
		offsets, err := dates.ParseOffsets(e.Expr)
		return preparedDate{offsets: offsets}, err
	default:
		return preparedDate{}, nil
	}
}

func editDate(t *model.Task, key string, current *time.Time, act Action, p preparedDate) bool {
	switch act {
	case ActSet:
		return t.SetDate(key, &p.date)
	case ActDelete:
		return t.SetDate(key, nil)
	case ActShift:
		if current == nil {
			return false
		}
		d := *current
		for _, o := range p.offsets {
			d = o.Apply(d)
		}
		return t.SetDate(key, &d)
	default:
		return false
	}
}

// editRecurrence reopens a finished task that gets a recurrence.
func editRecurrence(t *model.Task, act Action, r *model.Recurrence) bool {
	switch act {
	case ActSet:
		changed := t.SetTag(model.TagRecurrence, r.String())
		if t.Finished {
			t.Finished = false
			t.FinishDate = nil
			changed = true
		}
		return changed
	case ActDelete:
		return t.SetTag(model.TagRecurrence, "")
	default:
		return false
	}
}

func editPriority(t *model.Task, e PriorityEdit) bool {
	old := t.Priority
	switch e.Act {
	case ActSet:
		t.Priority = e.Value
	case ActDelete:
		t.Priority = model.NoPriority
	case ActIncrease:
		switch {
		case !old.IsSet():
			t.Priority = 'Z'
		case old > 'A':
			t.Priority = old - 1
		}
	case ActDecrease:
		switch {
		case old == 'Z':
			t.Priority = model.NoPriority
		case old.IsSet():
			t.Priority = old + 1
		}
	}
	return t.Priority != old
}
