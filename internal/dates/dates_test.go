package dates

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateClampsDayOverflow(t *testing.T) {
	got, err := ParseDate("2020-11-31")
	if err != nil {
		t.Fatalf("parse date failed: %v", err)
	}
	if Format(got) != "2020-11-30" {
		t.Fatalf("unexpected clamp: %s", Format(got))
	}

	got, err = ParseDate("2019-02-30")
	if err != nil {
		t.Fatalf("parse date failed: %v", err)
	}
	if Format(got) != "2019-02-28" {
		t.Fatalf("unexpected clamp: %s", Format(got))
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "0-1-1", "1-0-1", "1-1-0", "abcde", "1900-15-15", "1900-11-32", "2020-11--23"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("parse %q: expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestAddMonthsKeepsMonthEnd(t *testing.T) {
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2021-03-15", 2, "2021-05-15"},
		{"2021-02-28", 2, "2021-04-30"},
		{"2021-01-31", 1, "2021-02-28"},
		{"2021-02-28", 36, "2024-02-29"},
		{"2021-03-15", -3, "2020-12-15"},
		{"2021-03-31", -1, "2021-02-28"},
	}
	for _, tc := range cases {
		from, _ := ParseDate(tc.from)
		if got := Format(AddMonths(from, tc.n)); got != tc.want {
			t.Fatalf("AddMonths(%s, %d) = %s, want %s", tc.from, tc.n, got, tc.want)
		}
	}
}

func TestAddBusinessDaysSkipsWeekends(t *testing.T) {
	monday := Day(2024, 1, 1)
	got := AddBusinessDays(monday, 7)
	if Format(got) != "2024-01-10" {
		t.Fatalf("unexpected business day result: %s", Format(got))
	}

	saturday := Day(2020, 2, 1)
	if got := Format(AddBusinessDays(saturday, 1)); got != "2020-02-03" {
		t.Fatalf("saturday +1b = %s", got)
	}
	if got := Format(AddBusinessDays(Day(2020, 2, 2), 14)); got != "2020-02-20" {
		t.Fatalf("sunday +14b = %s", got)
	}
	if got := Format(AddBusinessDays(monday, -1)); got != "2023-12-29" {
		t.Fatalf("monday -1b = %s", got)
	}
}

func TestAddBusinessDaysNeverLandsOnWeekend(t *testing.T) {
	start := Day(2024, 3, 1)
	for offset := 0; offset < 14; offset++ {
		from := start.AddDate(0, 0, offset)
		for n := 1; n <= 12; n++ {
			if got := AddBusinessDays(from, n); !IsBusinessDay(got) {
				t.Fatalf("%s +%db landed on %s", Format(from), n, got.Weekday())
			}
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if DaysInMonth(2024, time.February) != 29 || DaysInMonth(1900, time.February) != 28 || DaysInMonth(2000, time.February) != 29 {
		t.Fatal("unexpected february length")
	}
	if DaysInMonth(2023, time.December) != 31 {
		t.Fatal("unexpected december length")
	}
}
