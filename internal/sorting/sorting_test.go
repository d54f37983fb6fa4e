package sorting

import (
	"errors"
	"slices"
	"testing"

	"github.com/sandeepkv93/tasktxt/internal/dates"
	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

func parseAll(lines ...string) []model.Task {
	today := dates.Day(2024, 5, 20)
	tasks := make([]model.Task, 0, len(lines))
	for _, l := range lines {
		tasks = append(tasks, todotxt.Parse(l, today))
	}
	return tasks
}

func identity(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func mustFields(t *testing.T, s string) []Field {
	t.Helper()
	fields, err := ParseFields(s)
	if err != nil {
		t.Fatalf("parse fields %q: %v", s, err)
	}
	return fields
}

func expectOrder(t *testing.T, got []int, want ...int) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected order: got %v, want %v", got, want)
	}
}

func TestParseFieldsAliases(t *testing.T) {
	got := mustFields(t, "Priority,due:subj, finished,create,text,ctx,project")
	want := []Field{FieldPriority, FieldDue, FieldSubject, FieldCompleted, FieldCreated, FieldSubject, FieldContext, FieldProject}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected fields: %v", got)
	}
	if _, err := ParseFields("pri,size"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if fields := mustFields(t, ""); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestSortPriorityAbsentLast(t *testing.T) {
	tasks := parseAll("none", "(C) c", "(A) a", "also none", "(B) b")
	ids := identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "pri"), false)
	expectOrder(t, ids, 2, 4, 1, 0, 3)

	ids = identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "pri"), true)
	expectOrder(t, ids, 3, 0, 1, 4, 2)
}

func TestSortEmptyFieldsLeavesIDs(t *testing.T) {
	tasks := parseAll("b", "a")
	ids := []int{1, 0}
	Sort(ids, tasks, nil, true)
	expectOrder(t, ids, 1, 0)
}

func TestSortIsStableAcrossKeys(t *testing.T) {
	tasks := parseAll(
		"(A) one due:2024-06-01",
		"(B) two due:2024-05-01",
		"(A) three due:2024-06-01",
		"(A) four",
		"(A) five due:2024-05-15",
	)
	ids := []int{2, 0, 3, 4, 1}
	Sort(ids, tasks, mustFields(t, "pri,due"), false)
	expectOrder(t, ids, 4, 2, 0, 3, 1)
}

func TestSortDates(t *testing.T) {
	tasks := parseAll(
		"x 2024-05-02 2024-04-01 done late",
		"2024-03-01 open",
		"x 2024-05-01 2024-04-05 done early",
		"no dates",
	)
	ids := identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "completed"), false)
	expectOrder(t, ids, 2, 0, 1, 3)

	ids = identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "created"), false)
	expectOrder(t, ids, 1, 0, 2, 3)

	tasks = parseAll("a t:2024-05-03", "b", "c t:2024-05-01")
	ids = identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "thr"), false)
	expectOrder(t, ids, 2, 0, 1)
}

func TestSortSubjectIsCaseSensitive(t *testing.T) {
	tasks := parseAll("banana", "Cherry", "apple")
	ids := identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "subject"), false)
	expectOrder(t, ids, 1, 2, 0)
}

func TestSortDoneTiers(t *testing.T) {
	tasks := parseAll("x finished", "open", "recurring rec:1w", "x done recurring rec:1d", "another open")
	ids := identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "done"), false)
	expectOrder(t, ids, 1, 4, 2, 3, 0)
}

func TestSortProjectLists(t *testing.T) {
	tasks := parseAll("none", "+beta +alpha", "+Alpha", "+alpha +zeta", "+beta")
	ids := identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "proj"), false)
	expectOrder(t, ids, 2, 3, 4, 1, 0)

	tasks = parseAll("@b", "@a @c", "")
	ids = identity(len(tasks))
	Sort(ids, tasks, mustFields(t, "ctx"), false)
	expectOrder(t, ids, 1, 0, 2)
}

func TestSortUnknownIDsGoLast(t *testing.T) {
	tasks := parseAll("(B) b", "(A) a")
	ids := []int{7, 0, 1, -1}
	Sort(ids, tasks, mustFields(t, "pri"), false)
	expectOrder(t, ids, 1, 0, 7, -1)
}
