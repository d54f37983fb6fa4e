package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
)

const previewCount = 5

// RecurrencePreview lists the dates the selected recurring task would get
// if it were completed today and every follow-up on its due day.
type RecurrencePreview struct {
	Visible bool
	Rule    string
	Dates   []time.Time
	// Ended is set when the until tag cuts the series short.
	Ended bool
}

func (p *RecurrencePreview) refresh(t *model.Task, today time.Time) {
	p.Rule, p.Dates, p.Ended = "", nil, false
	if !p.Visible || t == nil || t.Recurrence == nil {
		return
	}
	p.Rule = t.Recurrence.String()
	occ := t.NextOccurrence(today)
	first := occ.Due
	if first == nil {
		first = occ.Threshold
	}
	if first == nil {
		return
	}
	if !occ.Spawn {
		p.Ended = true
		return
	}
	until := t.Until()
	p.Dates = append(p.Dates, *first)
	for _, d := range t.Recurrence.Preview(*first, previewCount-1) {
		if until != nil && d.After(*until) {
			p.Ended = true
			break
		}
		p.Dates = append(p.Dates, d)
	}
}

func (p RecurrencePreview) render() string {
	if !p.Visible {
		return ""
	}
	if p.Rule == "" {
		return "recurrence: (selected task does not repeat)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "recurrence: rec:%s", p.Rule)
	for _, d := range p.Dates {
		b.WriteString("\n- " + dates.Format(d))
	}
	if p.Ended {
		b.WriteString("\n(series ends)")
	}
	return b.String()
}
