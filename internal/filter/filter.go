// Package filter selects task positions by composing independent rules.
package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/model"
)

var ErrInvalidPattern = errors.New("filter: invalid search pattern")

// DefaultSoonDays is used when Conf.SoonDays is not positive.
const DefaultSoonDays = 7

const (
	valueNone = "none"
	valueAny  = "any"
)

// Status selects tasks by completion.
type Status int

const (
	StatusAny Status = iota
	StatusActive
	StatusDone
)

type PriorityKind int

const (
	PriorityAny PriorityKind = iota
	PriorityNone
	PriorityEqual
	// PriorityHigher accepts Value and every higher priority.
	PriorityHigher
	// PriorityLower accepts Value, every lower priority and no priority.
	PriorityLower
)

type PriorityRule struct {
	Kind  PriorityKind
	Value model.Priority
}

// TextRule searches subject, projects and contexts case-insensitively.
type TextRule struct {
	Pattern string
	Regex   bool
}

// ListRule matches a list field. A task passes when it matches any Include
// value (or Include is empty) and no Exclude value. "none" matches an
// empty list and "any" a non-empty one.
type ListRule struct {
	Include []string
	Exclude []string
}

func (r ListRule) IsZero() bool {
	return len(r.Include) == 0 && len(r.Exclude) == 0
}

// Conf is a set of optional rules. A nil or zero rule accepts every task.
type Conf struct {
	Range       *Range
	Status      Status
	Priority    *PriorityRule
	Text        *TextRule
	Projects    ListRule
	Contexts    ListRule
	Tags        ListRule
	Hashtags    ListRule
	Due         *DateRule
	Threshold   *DateRule
	Created     *DateRule
	Completed   *DateRule
	SoonDays    int
	Recurring   *bool
	TimerActive bool

	// IncludeEmpty keeps tasks with a blank subject in the result.
	IncludeEmpty bool
}

type compiled struct {
	conf      Conf
	rx        *regexp.Regexp
	text      string
	due       *dateBounds
	thr       *dateBounds
	created   *dateBounds
	completed *dateBounds
}

// Filter returns the ids of tasks accepted by every rule of c, in
// ascending order.
func Filter(tasks []model.Task, c Conf, today time.Time) ([]int, error) {
	cc, err := compile(c, today)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(tasks))
	for id := range tasks {
		if cc.accept(id, &tasks[id]) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func compile(c Conf, today time.Time) (*compiled, error) {
	cc := &compiled{conf: c}
	if c.Range != nil {
		if err := c.Range.Validate(); err != nil {
			return nil, err
		}
	}
	if c.Text != nil && c.Text.Pattern != "" {
		if c.Text.Regex {
			rx, err := regexp.Compile("(?i)" + c.Text.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
			}
			cc.rx = rx
		} else {
			cc.text = strings.ToLower(c.Text.Pattern)
		}
	}
	soon := c.SoonDays
	if soon <= 0 {
		soon = DefaultSoonDays
	}
	rules := []struct {
		rule *DateRule
		dst  **dateBounds
	}{
		{c.Due, &cc.due},
		{c.Threshold, &cc.thr},
		{c.Created, &cc.created},
		{c.Completed, &cc.completed},
	}
	for _, r := range rules {
		if r.rule == nil {
			continue
		}
		b, err := r.rule.resolve(today, soon)
		if err != nil {
			return nil, err
		}
		*r.dst = &b
	}
	return cc, nil
}

func (cc *compiled) accept(id int, t *model.Task) bool {
	c := cc.conf
	if !c.IncludeEmpty && strings.TrimSpace(t.Subject) == "" {
		return false
	}
	if c.Range != nil && !c.Range.Contains(id) {
		return false
	}
	switch c.Status {
	case StatusActive:
		if t.Finished {
			return false
		}
	case StatusDone:
		if !t.Finished {
			return false
		}
	}
	if c.Priority != nil && !matchPriority(*c.Priority, t.Priority) {
		return false
	}
	if !cc.matchText(t) {
		return false
	}
	if !matchList(c.Projects, t.Projects) || !matchList(c.Contexts, t.Contexts) || !matchList(c.Hashtags, t.Hashtags) {
		return false
	}
	if !matchTags(c.Tags, t.Tags) {
		return false
	}
	if c.Recurring != nil && *c.Recurring != (t.Recurrence != nil) {
		return false
	}
	if c.TimerActive && !t.IsTimerOn() {
		return false
	}
	var finish *time.Time
	if t.Finished {
		finish = t.FinishDate
	}
	checks := []struct {
		b *dateBounds
		d *time.Time
	}{
		{cc.due, t.DueDate},
		{cc.thr, t.ThresholdDate},
		{cc.created, t.CreateDate},
		{cc.completed, finish},
	}
	for _, chk := range checks {
		if chk.b != nil && !chk.b.match(chk.d) {
			return false
		}
	}
	return true
}

func matchPriority(r PriorityRule, p model.Priority) bool {
	switch r.Kind {
	case PriorityNone:
		return !p.IsSet()
	case PriorityEqual:
		return p == r.Value
	case PriorityHigher:
		return p.Rank() <= r.Value.Rank()
	case PriorityLower:
		return p.Rank() >= r.Value.Rank()
	default:
		return p.IsSet()
	}
}

func (cc *compiled) matchText(t *model.Task) bool {
	if cc.rx == nil && cc.text == "" {
		return true
	}
	fields := make([]string, 0, 1+len(t.Projects)+len(t.Contexts))
	fields = append(fields, t.Subject)
	fields = append(fields, t.Projects...)
	fields = append(fields, t.Contexts...)
	for _, f := range fields {
		if cc.rx != nil {
			if cc.rx.MatchString(f) {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(f), cc.text) {
			return true
		}
	}
	return false
}

func matchList(r ListRule, values []string) bool {
	if len(r.Include) > 0 && !anyValue(r.Include, values) {
		return false
	}
	return len(r.Exclude) == 0 || !anyValue(r.Exclude, values)
}

func anyValue(patterns, values []string) bool {
	for _, raw := range patterns {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case valueNone:
			if len(values) == 0 {
				return true
			}
			continue
		case valueAny:
			if len(values) > 0 {
				return true
			}
			continue
		}
		p := ParsePattern(raw)
		for _, v := range values {
			if p.Match(v) {
				return true
			}
		}
	}
	return false
}

func matchTags(r ListRule, tags model.Tags) bool {
	if len(r.Include) > 0 && !anyTag(r.Include, tags) {
		return false
	}
	return len(r.Exclude) == 0 || !anyTag(r.Exclude, tags)
}

// anyTag accepts "key" or "key:valuePattern"; both parts may use wildcards.
func anyTag(patterns []string, tags model.Tags) bool {
	for _, raw := range patterns {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case valueNone:
			if len(tags) == 0 {
				return true
			}
			continue
		case valueAny:
			if len(tags) > 0 {
				return true
			}
			continue
		}
		key, value, hasValue := strings.Cut(raw, ":")
		kp := ParsePattern(key)
		vp := ParsePattern(value)
		for _, tag := range tags {
			if kp.Match(tag.Key) && (!hasValue || vp.Match(tag.Value)) {
				return true
			}
		}
	}
	return false
}
