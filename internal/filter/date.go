package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/dates"
)

// DateSpan is the kind of a date rule.
type DateSpan int

const (
	DateAny DateSpan = iota
	DateNone
	DateRange
	DateSoon
	DateOverdue
)

const rangeSep = ".."

// DateRule filters one optional date field. For DateRange, Low and High are
// date expressions, "none" or empty for an open side. A "none" bound also
// accepts tasks without the date.
type DateRule struct {
	Span DateSpan
	Low  string
	High string
}

// ParseDateRange reads "any", "none", "soon", "overdue" or "low..high".
// A single expression without ".." matches exactly that day.
func ParseDateRange(s string) (DateRule, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "any":
		return DateRule{Span: DateAny}, nil
	case dates.KeywordNone:
		return DateRule{Span: DateNone}, nil
	case "soon":
		return DateRule{Span: DateSoon}, nil
	case "overdue":
		return DateRule{Span: DateOverdue}, nil
	}
	lo, hi, ok := strings.Cut(v, rangeSep)
	if !ok {
		hi = lo
	}
	rule := DateRule{Span: DateRange, Low: strings.TrimSpace(lo), High: strings.TrimSpace(hi)}
	if _, err := rule.resolve(dates.Day(2000, time.January, 1), 0); err != nil {
		return DateRule{}, err
	}
	return rule, nil
}

// dateBounds is a DateRule evaluated against a reference day.
type dateBounds struct {
	span          DateSpan
	low, high     *time.Time
	acceptMissing bool
	onlyMissing   bool
	soonLimit     time.Time
	today         time.Time
}

func (r DateRule) resolve(today time.Time, soonDays int) (dateBounds, error) {
	b := dateBounds{span: r.Span, today: dates.Truncate(today)}
	b.soonLimit = dates.AddDays(b.today, soonDays)
	if r.Span != DateRange {
		return b, nil
	}
	var err error
	if b.low, b.acceptMissing, err = resolveBound(r.Low, today); err != nil {
		return dateBounds{}, err
	}
	high, missing, err := resolveBound(r.High, today)
	if err != nil {
		return dateBounds{}, err
	}
	b.high = high
	b.onlyMissing = b.acceptMissing && missing
	b.acceptMissing = b.acceptMissing || missing
	return b, nil
}

func resolveBound(expr string, today time.Time) (*time.Time, bool, error) {
	if expr == "" {
		return nil, false, nil
	}
	d, err := dates.Eval(expr, today)
	if errors.Is(err, dates.ErrNoDate) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("filter: date bound: %w", err)
	}
	return &d, false, nil
}

func (b dateBounds) match(d *time.Time) bool {
	switch b.span {
	case DateNone:
		return d == nil
	case DateSoon:
		return d != nil && d.Before(b.soonLimit)
	case DateOverdue:
		return d != nil && d.Before(b.today)
	case DateRange:
		if d == nil {
			return b.acceptMissing
		}
		if b.onlyMissing {
			return false
		}
		if b.low != nil && d.Before(*b.low) {
			return false
		}
		if b.high != nil && d.After(*b.high) {
			return false
		}
		return true
	default:
		return d != nil
	}
}
