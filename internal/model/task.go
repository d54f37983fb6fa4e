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
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidTag      = errors.New("model: invalid task tag")
)

// Reserved tag keys.
const (
	TagDue        = "due"
	TagThreshold  = "t"
	TagRecurrence = "rec"
	TagSpent      = "spent"
	TagTimer      = "tmr"
	TagUntil      = "until"
	TagPriority   = "pri"
)

// Priority is a letter A-Z. The zero value means no priority.
type Priority byte

const NoPriority Priority = 0

func ParsePriority(s string) (Priority, error) {
	v := strings.TrimSpace(s)
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		v = v[1 : len(v)-1]
	}
	if len(v) != 1 || v[0] < 'A' || v[0] > 'Z' {
		return NoPriority, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return Priority(v[0]), nil
}

func (p Priority) IsValid() bool {
	return p == NoPriority || (p >= 'A' && p <= 'Z')
}

func (p Priority) IsSet() bool {
	return p != NoPriority
}

// Rank orders priorities: A is 0, Z is 25, no priority is 26.
func (p Priority) Rank() int {
	if !p.IsSet() {
		return 26
	}
	return int(p - 'A')
}

func (p Priority) String() string {
	if !p.IsSet() {
		return ""
	}
	return string(rune(p))
}

// Task is one parsed todo.txt record. Projects, contexts, tags and hashtags
// are extracted from Subject and kept in first-appearance order.
type Task struct {
	Subject       string
	Projects      []string
	Contexts      []string
	Tags          Tags
	Hashtags      []string
	Priority      Priority
	Finished      bool
	CreateDate    *time.Time
	FinishDate    *time.Time
	DueDate       *time.Time
	ThresholdDate *time.Time
	Recurrence    *Recurrence
}

func (t Task) Validate() error {
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(rune(t.Priority)))
	}
	for _, tag := range t.Tags {
		if tag.Key == "" || tag.Value == "" {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag.Key+":"+tag.Value)
		}
	}
	if v, ok := t.Tags.Get(TagSpent); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err != nil || n < 0 {
			return fmt.Errorf("%w: spent must be a non-negative number of seconds, got %q", ErrInvalidTag, v)
		}
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	}
	if !t.Finished && t.FinishDate != nil {
		return errors.New("model: finish date must be empty when task is not finished")
	}
	return nil
}

// Clone returns a deep copy sharing no slices or pointers with t.
func (t Task) Clone() Task {
	out := t
	out.Projects = cloneStrings(t.Projects)
	out.Contexts = cloneStrings(t.Contexts)
	out.Hashtags = cloneStrings(t.Hashtags)
	out.Tags = t.Tags.Clone()
	out.CreateDate = cloneTime(t.CreateDate)
	out.FinishDate = cloneTime(t.FinishDate)
	out.DueDate = cloneTime(t.DueDate)
	out.ThresholdDate = cloneTime(t.ThresholdDate)
	if t.Recurrence != nil {
		r := *t.Recurrence
		out.Recurrence = &r
	}
	return out
}

func (t Task) Tag(key string) (string, bool) {
	return t.Tags.Get(key)
}

// SetTag updates a tag in both the tag list and the subject text. An empty
// value removes the tag. Reserved date and recurrence tags keep the typed
// fields in sync. It reports whether anything changed.
func (t *Task) SetTag(key, value string) bool {
	if key == "" {
		return false
	}
	old, exists := t.Tags.Get(key)
	switch {
	case value == "" && !exists:
		return false
	case value == "":
		t.Tags.Delete(key)
		t.Subject = replaceWord(t.Subject, key+":"+old, "")
	case !exists:
		t.Tags.Set(key, value)
		t.Subject = strings.TrimSpace(t.Subject + " " + key + ":" + value)
	case old == value:
		return false
	default:
		t.Tags.Set(key, value)
		t.Subject = replaceWord(t.Subject, key+":"+old, key+":"+value)
	}
	t.syncField(key, value)
	return true
}

// SetDate stores d in the due or threshold tag; nil removes it.
func (t *Task) SetDate(key string, d *time.Time) bool {
	if d == nil {
		return t.SetTag(key, "")
	}
	return t.SetTag(key, dates.Format(*d))
}

// Until returns the parsed until tag, if it holds a date.
func (t Task) Until() *time.Time {
	v, ok := t.Tags.Get(TagUntil)
	if !ok {
		return nil
	}
	d, err := dates.ParseDate(v)
	if err != nil {
		return nil
	}
	return &d
}

func (t *Task) syncField(key, value string) {
	switch key {
	case TagDue:
		t.DueDate = parseOptionalDate(value)
	case TagThreshold:
		t.ThresholdDate = parseOptionalDate(value)
	case TagRecurrence:
		t.Recurrence = nil
		if value == "" {
			return
		}
		if r, err := ParseRecurrence(value); err == nil {
			t.Recurrence = &r
		}
	}
}

func parseOptionalDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	d, err := dates.ParseDate(value)
	if err != nil {
		return nil
	}
	return &d
}

// replaceWord swaps a whole space-separated word. An empty replacement
// removes the word.
func replaceWord(s, old, repl string) string {
	if old == repl {
		return s
	}
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == old {
			if repl != "" {
				out = append(out, repl)
			}
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneTime(in *time.Time) *time.Time {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

// DatePtr is a convenience for building optional date fields.
func DatePtr(t time.Time) *time.Time {
	d := dates.Truncate(t)
	return &d
}
