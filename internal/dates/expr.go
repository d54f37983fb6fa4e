package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidExpression = errors.New("dates: invalid date expression")
	// ErrNoDate is returned for the "none" keyword. Callers that accept field
	// removal check for it with errors.Is.
	ErrNoDate = errors.New("dates: expression means no date")
)

// KeywordNone is the sentinel expression for an absent date.
const KeywordNone = "none"

// MaxOffset bounds the count of one offset or recurrence step.
const MaxOffset = 99999

// Offset is one signed step of a date expression such as "+2w" or "-3b".
type Offset struct {
	N    int
	Unit Unit
}

func (o Offset) String() string {
	sign := "+"
	n := o.N
	if n < 0 {
		sign, n = "-", -n
	}
	return fmt.Sprintf("%s%d%s", sign, n, o.Unit)
}

// Apply moves t by the offset.
func (o Offset) Apply(t time.Time) time.Time {
	return Add(t, o.N, o.Unit)
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Eval resolves a date expression against the reference day ref.
//
// An expression is an explicit date ("2024-03-01"), a keyword (today,
// tomorrow, yesterday, a weekday or a month name), or an offset chain such
// as "+1w-2d". A base may be followed by a chain: "today+3b", "jan-1d",
// "2024-03-01+1m". Offsets without a base are applied to ref, and only the
// first of them may omit its sign ("12d").
//
// "none" yields ErrNoDate.
func Eval(expr string, ref time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	if s == KeywordNone {
		return time.Time{}, ErrNoDate
	}
	ref = Truncate(ref)

	base, rest, err := splitBase(s, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", err, expr)
	}
	offsets, err := parseChain(rest, !base.explicit)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", err, expr)
	}
	if !base.explicit && len(offsets) == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidExpression, expr)
	}
	d := base.date
	for _, o := range offsets {
		d = o.Apply(d)
	}
	return d, nil
}

// Shift applies an offset chain like "+1w" or "-2d+1b" to d.
func Shift(d time.Time, chain string) (time.Time, error) {
	offsets, err := ParseOffsets(chain)
	if err != nil {
		return time.Time{}, err
	}
	d = Truncate(d)
	for _, o := range offsets {
		d = o.Apply(d)
	}
	return d, nil
}

// ParseOffsets reads a non-empty offset chain. The first offset may omit
// its sign.
func ParseOffsets(chain string) ([]Offset, error) {
	s := strings.ToLower(strings.TrimSpace(chain))
	offsets, err := parseChain(s, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, chain)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExpression, chain)
	}
	return offsets, nil
}

type baseDate struct {
	date     time.Time
	explicit bool
}

func splitBase(s string, ref time.Time) (baseDate, string, error) {
	if end := explicitDateEnd(s); end > 0 {
		d, err := ParseDate(s[:end])
		if err != nil {
			return baseDate{}, "", ErrInvalidExpression
		}
		return baseDate{date: d, explicit: true}, s[end:], nil
	}

	end := 0
	for end < len(s) && s[end] >= 'a' && s[end] <= 'z' {
		end++
	}
	if end == 0 {
		return baseDate{date: ref}, s, nil
	}
	d, ok := keywordDate(s[:end], ref)
	if !ok {
		return baseDate{}, "", ErrInvalidExpression
	}
	return baseDate{date: d, explicit: true}, s[end:], nil
}

// explicitDateEnd returns the length of a leading "digits-digits-digits"
// prefix, or 0.
func explicitDateEnd(s string) int {
	pos := 0
	for group := 0; group < 3; group++ {
		start := pos
		for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
			pos++
		}
		if pos == start {
			return 0
		}
		if group < 2 {
			if pos >= len(s) || s[pos] != '-' {
				return 0
			}
			pos++
		}
	}
	// "2024-01-05d" is a malformed offset, not a date followed by junk.
	if pos < len(s) && s[pos] != '+' && s[pos] != '-' {
		return 0
	}
	return pos
}

func keywordDate(word string, ref time.Time) (time.Time, bool) {
	switch word {
	case "today":
		return ref, true
	case "tomorrow":
		return AddDays(ref, 1), true
	case "yesterday":
		return AddDays(ref, -1), true
	}
	if wd, ok := weekdays[word]; ok {
		diff := (int(wd) - int(ref.Weekday()) + 7) % 7
		if diff == 0 {
			diff = 7
		}
		return AddDays(ref, diff), true
	}
	if m, ok := months[word]; ok {
		d := Day(ref.Year(), m, 1)
		if !d.After(ref) {
			d = Day(ref.Year()+1, m, 1)
		}
		return d, true
	}
	return time.Time{}, false
}

func parseChain(s string, firstUnsigned bool) ([]Offset, error) {
	var out []Offset
	for len(s) > 0 {
		sign := 1
		switch s[0] {
		case '+':
			s = s[1:]
		case '-':
			sign = -1
			s = s[1:]
		default:
			if !firstUnsigned || len(out) > 0 {
				return nil, ErrInvalidExpression
			}
		}
		end := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == 0 || end >= len(s) {
			return nil, ErrInvalidExpression
		}
		n, err := strconv.Atoi(s[:end])
		if err != nil || n > MaxOffset {
			return nil, ErrInvalidExpression
		}
		u := Unit(s[end])
		if !u.IsValid() {
			return nil, ErrInvalidExpression
		}
		out = append(out, Offset{N: sign * n, Unit: u})
		s = s[end+1:]
	}
	return out, nil
}
