package views

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

var now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func parseAll(lines ...string) []model.Task {
	out := make([]model.Task, 0, len(lines))
	for _, l := range lines {
		out = append(out, todotxt.Parse(l, now))
	}
	return out
}

func TestDueLabel(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := DueLabel(nil, today); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
	same := today
	if got := DueLabel(&same, now); got != "today" {
		t.Fatalf("expected today, got %q", got)
	}
	tomorrow := today.AddDate(0, 0, 1)
	if got := DueLabel(&tomorrow, today); got != "1 day from now" {
		t.Fatalf("unexpected label for tomorrow: %q", got)
	}
	past := today.AddDate(0, 0, -3)
	if got := DueLabel(&past, today); got != "3 days ago" {
		t.Fatalf("unexpected label for past date: %q", got)
	}
}

func TestRenderListMarksCursorAndSkipsBadIDs(t *testing.T) {
	tasks := parseAll("(A) call mom due:2024-03-11", "x 2024-03-09 pay rent")
	out := RenderList(ListData{Tasks: tasks, IDs: []int{1, 0, 7}, Cursor: 1, Now: now, SoonDays: 7})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], ">") || strings.HasPrefix(lines[0], ">") {
		t.Fatalf("cursor should be on second line: %q", out)
	}
	if !strings.Contains(lines[1], "(A)") || !strings.Contains(lines[1], "2024-03-11") || !strings.Contains(lines[1], "1 day from now") {
		t.Fatalf("missing columns in %q", lines[1])
	}
	if !strings.Contains(lines[0], " x ") {
		t.Fatalf("expected done mark in %q", lines[0])
	}
}

func TestRenderListEmpty(t *testing.T) {
	if got := RenderList(ListData{}); got != "(no tasks)" {
		t.Fatalf("unexpected empty list rendering: %q", got)
	}
}

func TestComputeStats(t *testing.T) {
	tasks := parseAll(
		"overdue +home due:2024-03-01",
		"soon +Home due:2024-03-12 rec:1w",
		"later due:2024-05-01 spent:90",
		"x 2024-03-09 2024-03-01 shipped +work",
		"running tmr:"+strconv.FormatInt(now.Add(-30*time.Second).Unix(), 10),
	)
	s := ComputeStats(tasks, now, 7)
	if s.Total != 5 || s.Active != 4 || s.Done != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.Overdue != 1 || s.Soon != 1 || s.Recurring != 1 || s.Running != 1 {
		t.Fatalf("unexpected date counts: %+v", s)
	}
	if s.Spent != 120*time.Second {
		t.Fatalf("expected 2m spent, got %v", s.Spent)
	}
	if len(s.Projects) != 2 || s.Projects[0].Name != "home" || s.Projects[0].Active != 2 || s.Projects[1].Done != 1 {
		t.Fatalf("unexpected projects: %+v", s.Projects)
	}
	md := s.Markdown()
	for _, want := range []string{"| overdue | 1 |", "0:02:00", "+work: 0 active, 1 done"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatSpent(t *testing.T) {
	if got := FormatSpent(3*time.Hour + 4*time.Minute + 5*time.Second); got != "3:04:05" {
		t.Fatalf("unexpected spent format: %q", got)
	}
	if got := FormatSpent(-time.Second); got != "0:00:00" {
		t.Fatalf("negative durations should clamp, got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatTable {
		t.Fatalf("empty format should default to table, got %q %v", f, err)
	}
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExportYAMLAndJSON(t *testing.T) {
	tasks := parseAll("(B) 2024-03-01 plan trip +travel @home due:2024-04-01 rec:+1y")
	data := ListData{Tasks: tasks, IDs: []int{0}, Now: now}

	var buf bytes.Buffer
	if err := Export(&buf, data, FormatYAML); err != nil {
		t.Fatalf("yaml export: %v", err)
	}
	var ys []Record
	if err := yaml.Unmarshal(buf.Bytes(), &ys); err != nil {
		t.Fatalf("yaml decode: %v", err)
	}
	if len(ys) != 1 || ys[0].Due != "2024-04-01" || ys[0].Recurrence != "+1y" || ys[0].Tags["due"] != "2024-04-01" {
		t.Fatalf("unexpected yaml record: %+v", ys)
	}

	buf.Reset()
	if err := Export(&buf, data, FormatJSON); err != nil {
		t.Fatalf("json export: %v", err)
	}
	var js []Record
	if err := json.Unmarshal(buf.Bytes(), &js); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if js[0].Priority != "B" || js[0].Created != "2024-03-01" || js[0].Projects[0] != "travel" {
		t.Fatalf("unexpected json record: %+v", js[0])
	}
}

func TestExportTxt(t *testing.T) {
	tasks := parseAll("first", "second")
	var buf bytes.Buffer
	if err := Export(&buf, ListData{Tasks: tasks, IDs: []int{1, 0}}, FormatTxt); err != nil {
		t.Fatalf("txt export: %v", err)
	}
	if buf.String() != "second\nfirst\n" {
		t.Fatalf("unexpected txt output: %q", buf.String())
	}
}

func TestRenderAppShowsErrorStatus(t *testing.T) {
	out := RenderApp(AppData{Header: "tasktxt", Body: "body", StatusLine: "boom", IsError: true, Footer: "q quit"})
	for _, want := range []string{"tasktxt", "body", "boom", "q quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
