package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the calendar date format used by todo.txt.
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("dates: invalid date")

type Unit byte

const (
	UnitDay         Unit = 'd'
	UnitWeek        Unit = 'w'
	UnitMonth       Unit = 'm'
	UnitYear        Unit = 'y'
	UnitBusinessDay Unit = 'b'
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear, UnitBusinessDay:
		return true
	default:
		return false
	}
}

func (u Unit) String() string {
	return string(rune(u))
}

// Day returns midnight UTC of the given calendar day.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Day(y, m, d)
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func DaysInMonth(y int, m time.Month) int {
	return Day(y, m+1, 0).Day()
}

func isLastDay(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

// ParseDate reads a "year-month-day" date. A day past the end of the month
// but not past 31 is clamped to the last day of that month.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p == "" || p[0] == '+' {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		vals[i] = n
	}
	y, m, d := vals[0], vals[1], vals[2]
	if y == 0 || m == 0 || m > 12 || d == 0 || d > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if mx := DaysInMonth(y, time.Month(m)); d > mx {
		d = mx
	}
	return Day(y, time.Month(m), d), nil
}

func AddDays(t time.Time, n int) time.Time {
	return Truncate(t).AddDate(0, 0, n)
}

// AddMonths moves t by n months. A date on the last day of its month stays
// on the last day; otherwise the day is clamped to the target month length.
func AddMonths(t time.Time, n int) time.Time {
	t = Truncate(t)
	total := int(t.Month()) - 1 + n
	y := t.Year() + floorDiv(total, 12)
	m := time.Month(total - floorDiv(total, 12)*12 + 1)
	d := t.Day()
	mx := DaysInMonth(y, m)
	if (isLastDay(t) && d != mx) || d > mx {
		d = mx
	}
	return Day(y, m, d)
}

func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, n*12)
}

// AddBusinessDays moves t by n weekdays, one step at a time, skipping
// Saturdays and Sundays. A negative n walks backwards.
func AddBusinessDays(t time.Time, n int) time.Time {
	t = Truncate(t)
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(t) {
			n--
		}
	}
	return t
}

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Add applies n units to t.
func Add(t time.Time, n int, u Unit) time.Time {
	switch u {
	case UnitWeek:
		return AddDays(t, n*7)
	case UnitMonth:
		return AddMonths(t, n)
	case UnitYear:
		return AddYears(t, n)
	case UnitBusinessDay:
		return AddBusinessDays(t, n)
	default:
		return AddDays(t, n)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
