package filter

import (
	"errors"
	"slices"
	"testing"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

var today = dates.Day(2024, 5, 20)

func parseAll(lines ...string) []model.Task {
	tasks := make([]model.Task, 0, len(lines))
	for _, l := range lines {
		tasks = append(tasks, todotxt.Parse(l, today))
	}
	return tasks
}

func mustFilter(t *testing.T, tasks []model.Task, c Conf) []int {
	t.Helper()
	ids, err := Filter(tasks, c, today)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	return ids
}

func expectIDs(t *testing.T, got []int, want ...int) {
	t.Helper()
	if want == nil {
		want = []int{}
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected ids: got %v, want %v", got, want)
	}
}

func TestFilterEmptyConfKeepsOrderAndDropsBlankSubjects(t *testing.T) {
	tasks := parseAll("one", "two", "three")
	tasks = append(tasks, model.Task{})
	ids := mustFilter(t, tasks, Conf{})
	expectIDs(t, ids, 0, 1, 2)
	expectIDs(t, mustFilter(t, tasks, Conf{}), ids...)
	expectIDs(t, mustFilter(t, tasks, Conf{IncludeEmpty: true}), 0, 1, 2, 3)
}

func TestFilterRangeAndStatus(t *testing.T) {
	tasks := parseAll("a", "x b", "c", "x d", "e")
	r := Span(1, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Range: &r}), 1, 2, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Range: &r, Status: StatusDone}), 1, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Status: StatusActive}), 0, 2, 4)

	list := List(4, 0, 42)
	expectIDs(t, mustFilter(t, tasks, Conf{Range: &list}), 0, 4)

	bad := Span(3, 1)
	if _, err := Filter(tasks, Conf{Range: &bad}, today); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2-7")
	if err != nil || r.Kind != RangeSpan || !r.Contains(7) || r.Contains(8) {
		t.Fatalf("unexpected span: %+v %v", r, err)
	}
	r, err = ParseRange("1,4,9")
	if err != nil || r.Kind != RangeList || !r.Contains(4) || r.Contains(2) {
		t.Fatalf("unexpected list: %+v %v", r, err)
	}
	if r, err = ParseRange("3"); err != nil || r.Kind != RangeOne {
		t.Fatalf("unexpected single id: %+v %v", r, err)
	}
	for _, in := range []string{"", "a", "7-2", "1,,2", "-3", "1-"} {
		if _, err := ParseRange(in); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("parse %q: expected ErrInvalidRange, got %v", in, err)
		}
	}
}

func TestFilterPriority(t *testing.T) {
	tasks := parseAll("(A) a", "(B) b", "(C) c", "none")
	cases := []struct {
		rule string
		want []int
	}{
		{"any", []int{0, 1, 2}},
		{"none", []int{3}},
		{"B", []int{1}},
		{"B+", []int{0, 1}},
		{"B-", []int{1, 2, 3}},
	}
	for _, tc := range cases {
		rule, err := ParsePriorityRule(tc.rule)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.rule, err)
		}
		expectIDs(t, mustFilter(t, tasks, Conf{Priority: &rule}), tc.want...)
	}
	if _, err := ParsePriorityRule("AB"); !errors.Is(err, model.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestFilterTextSearch(t *testing.T) {
	tasks := parseAll("Buy MILK", "call bob +Groceries", "email @Office", "nothing")
	expectIDs(t, mustFilter(t, tasks, Conf{Text: &TextRule{Pattern: "milk"}}), 0)
	expectIDs(t, mustFilter(t, tasks, Conf{Text: &TextRule{Pattern: "grocer"}}), 1)
	expectIDs(t, mustFilter(t, tasks, Conf{Text: &TextRule{Pattern: "^(buy|email)", Regex: true}}), 0, 2)

	_, err := Filter(tasks, Conf{Text: &TextRule{Pattern: "(", Regex: true}}, today)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestFilterProjectWildcards(t *testing.T) {
	tasks := parseAll("math +homework", "tools +workshop", "plain", "both +Work +home")
	expectIDs(t, mustFilter(t, tasks, Conf{Projects: ListRule{Include: []string{"*work"}}}), 0, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Projects: ListRule{Include: []string{"work*"}}}), 1, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Projects: ListRule{Include: []string{"*ork*"}}}), 0, 1, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Projects: ListRule{Include: []string{"work"}}}), 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Projects: ListRule{Include: []string{"none"}}}), 2)
	expectIDs(t, mustFilter(t, tasks, Conf{Projects: ListRule{Include: []string{"any"}, Exclude: []string{"home*"}}}), 1)
}

func TestFilterContextsTagsAndHashtags(t *testing.T) {
	tasks := parseAll("a @phone #urgent", "b @desk owner:alice", "c owner:bob #later", "d")
	expectIDs(t, mustFilter(t, tasks, Conf{Contexts: ListRule{Exclude: []string{"phone"}}}), 1, 2, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Tags: ListRule{Include: []string{"owner"}}}), 1, 2)
	expectIDs(t, mustFilter(t, tasks, Conf{Tags: ListRule{Include: []string{"owner:al*"}}}), 1)
	expectIDs(t, mustFilter(t, tasks, Conf{Tags: ListRule{Include: []string{"none"}}}), 0, 3)
	expectIDs(t, mustFilter(t, tasks, Conf{Hashtags: ListRule{Include: []string{"urgent", "later"}}}), 0, 2)
}

func TestFilterDateRangeWithNoneBound(t *testing.T) {
	tasks := parseAll("no due", "may due:2024-05-01", "july due:2024-07-01")
	rule, err := ParseDateRange("none..2024-06-01")
	if err != nil {
		t.Fatalf("parse range failed: %v", err)
	}
	expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule}), 0, 1)

	rule, _ = ParseDateRange("2024-06-01..none")
	expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule}), 0, 2)

	rule, _ = ParseDateRange("none..none")
	expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule}), 0)

	rule, _ = ParseDateRange("2024-05-01..2024-07-01")
	expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule}), 1, 2)

	rule, _ = ParseDateRange("..today")
	expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule}), 1)
}

func TestFilterDateSpans(t *testing.T) {
	tasks := parseAll("late due:2024-05-10", "soon due:2024-05-23", "later due:2024-06-30", "none", "x 2024-05-19 2024-05-01 done")
	for _, tc := range []struct {
		in   string
		want []int
	}{
		{"any", []int{0, 1, 2}},
		{"none", []int{3, 4}},
		{"overdue", []int{0}},
		{"soon", []int{0, 1}},
		{"-1w..+1w", []int{1}},
	} {
		rule, err := ParseDateRange(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule}), tc.want...)
	}

	rule, _ := ParseDateRange("2024-05-19")
	expectIDs(t, mustFilter(t, tasks, Conf{Completed: &rule}), 4)
	rule, _ = ParseDateRange("soon")
	expectIDs(t, mustFilter(t, tasks, Conf{Due: &rule, SoonDays: 1}), 0)

	if _, err := ParseDateRange("someday..today"); !errors.Is(err, dates.ErrInvalidExpression) {
		t.Fatalf("expected ErrInvalidExpression, got %v", err)
	}
}

func TestFilterRecurrenceAndTimer(t *testing.T) {
	tasks := parseAll("a rec:1w due:2024-05-21", "b tmr:1716200000", "c tmr:off")
	yes, no := true, false
	expectIDs(t, mustFilter(t, tasks, Conf{Recurring: &yes}), 0)
	expectIDs(t, mustFilter(t, tasks, Conf{Recurring: &no}), 1, 2)
	expectIDs(t, mustFilter(t, tasks, Conf{TimerActive: true}), 1)
}

func TestParseQuery(t *testing.T) {
	c := ParseQuery("+work -@phone #urgent write report")
	if !slices.Equal(c.Projects.Include, []string{"work"}) || !slices.Equal(c.Contexts.Exclude, []string{"phone"}) {
		t.Fatalf("unexpected list rules: %+v", c)
	}
	if !slices.Equal(c.Hashtags.Include, []string{"urgent"}) || c.Text == nil || c.Text.Pattern != "write report" {
		t.Fatalf("unexpected query: %+v", c)
	}
	if ParseQuery("   ").Text != nil {
		t.Fatal("blank query must not search")
	}
}

func TestPatternMatch(t *testing.T) {
	cases := []struct {
		value, pattern string
		want           bool
	}{
		{"abcd", "abc", false},
		{"abcd", "abcd", true},
		{"abcd", "abc*", true},
		{"abcd", "*bcd", true},
		{"abcd", "*b*", true},
		{"abcd", "bc*", false},
		{"abcd", "*bc", false},
		{"abcd", "", false},
		{"", "abcd", false},
		{"ABCD", "*a*", true},
	}
	for _, tc := range cases {
		if got := ParsePattern(tc.pattern).Match(tc.value); got != tc.want {
			t.Fatalf("match(%q, %q) = %v", tc.value, tc.pattern, got)
		}
	}
}
