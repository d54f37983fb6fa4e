package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasktxt/internal/model"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.SoonDays != 7 || !cfg.AutoCreateDate || cfg.DefaultSort != "done,pri,due" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	comp, err := cfg.Completion()
	if err != nil {
		t.Fatalf("default completion config: %v", err)
	}
	if comp != model.DefaultCompletionConfig() {
		t.Fatalf("unexpected completion config: %+v", comp)
	}
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load or create: %v", err)
	}
	if cfg.TodoFile != filepath.Join(dir, "sub", DefaultTodoFile) {
		t.Fatalf("todo file must resolve next to config: %s", cfg.TodoFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "completion_mode") || !strings.Contains(string(data), "just_mark") {
		t.Fatalf("unexpected config file:\n%s", data)
	}
}

func TestLoadOrCreateReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	body := "todo_file = '/tmp/tasks/todo.txt'\ncompletion_mode = 'priority_to_tag'\nsoon_days = 3\n\n[keys]\nquit = 'Q'\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TodoFile != "/tmp/tasks/todo.txt" || cfg.SoonDays != 3 || cfg.Keys.Quit != "Q" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Keys.Done != "x" {
		t.Fatalf("missing keys must keep defaults: %+v", cfg.Keys)
	}
	comp, err := cfg.Completion()
	if err != nil || comp.Mode != model.CompletionPriorityToTag {
		t.Fatalf("unexpected completion config: %+v %v", comp, err)
	}
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("soon_days = 'many"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TASKTXT_TODO_FILE", "/data/todo.txt")
	t.Setenv("TASKTXT_COMPLETION_DATE_MODE", "always")
	t.Setenv("TASKTXT_SOON_DAYS", "14")
	t.Setenv("TASKTXT_AUTO_CREATE_DATE", "off")
	t.Setenv("TASKTXT_DEFAULT_SORT", "due")

	cfg := FromEnv(Default())
	if cfg.TodoFile != "/data/todo.txt" || cfg.SoonDays != 14 || cfg.AutoCreateDate || cfg.DefaultSort != "due" {
		t.Fatalf("unexpected env overrides: %+v", cfg)
	}
	if cfg.CompletionDateMode != "always" {
		t.Fatalf("unexpected date mode: %q", cfg.CompletionDateMode)
	}
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("TASKTXT_SOON_DAYS", "soon")
	t.Setenv("TASKTXT_AUTO_CREATE_DATE", "maybe")
	cfg := FromEnv(Default())
	if cfg.SoonDays != 7 || !cfg.AutoCreateDate {
		t.Fatalf("bad values must be ignored: %+v", cfg)
	}
}

func TestCompletionRejectsUnknownMode(t *testing.T) {
	cfg := Default()
	cfg.CompletionMode = "archive"
	if _, err := cfg.Completion(); !errors.Is(err, model.ErrInvalidCompletionMode) {
		t.Fatalf("expected ErrInvalidCompletionMode, got %v", err)
	}
}

func TestResolvePathFromEnv(t *testing.T) {
	t.Setenv("TASKTXT_CONFIG", "/etc/tasktxt.toml")
	path, err := ResolvePath()
	if err != nil || path != "/etc/tasktxt.toml" {
		t.Fatalf("unexpected path: %q %v", path, err)
	}
}
