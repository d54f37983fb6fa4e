// Package config loads tasktxt settings from a TOML file and TASKTXT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sandeepkv93/tasktxt/internal/model"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultTodoFile       = "todo.txt"
	DefaultDoneFile       = "done.txt"
	EnvPrefix             = "TASKTXT_"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Done      string `toml:"done"`
	Undone    string `toml:"undone"`
	Timer     string `toml:"timer"`
	Filter    string `toml:"filter"`
	Command   string `toml:"command"`
	DueLater  string `toml:"due_later"`
	DueSooner string `toml:"due_sooner"`
	Help      string `toml:"help"`
}

type Config struct {
	TodoFile           string `toml:"todo_file"`
	DoneFile           string `toml:"done_file"`
	CompletionMode     string `toml:"completion_mode"`
	CompletionDateMode string `toml:"completion_date_mode"`
	SoonDays           int    `toml:"soon_days"`
	DefaultSort        string `toml:"default_sort"`
	AutoCreateDate     bool   `toml:"auto_create_date"`
	Keys               Keymap `toml:"keys"`
}

func Default() Config {
	return Config{
		TodoFile:           DefaultTodoFile,
		DoneFile:           DefaultDoneFile,
		CompletionMode:     string(model.CompletionJustMark),
		CompletionDateMode: string(model.DateWhenCreated),
		SoonDays:           7,
		DefaultSort:        "done,pri,due",
		AutoCreateDate:     true,
		Keys: Keymap{
			Quit:      "q",
			Up:        "k",
			Down:      "j",
			Done:      "x",
			Undone:    "u",
			Timer:     "s",
			Filter:    "/",
			Command:   ":",
			DueLater:  "]",
			DueSooner: "[",
			Help:      "?",
		},
	}
}

// ResolvePath returns TASKTXT_CONFIG or the file under the user config dir.
func ResolvePath() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "CONFIG")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, "tasktxt", DefaultConfigFileName), nil
}

// LoadOrCreate reads path, writing the defaults there first when the file
// does not exist. Relative todo and done paths resolve against the config
// file directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolveFiles(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.TodoFile == "" {
		cfg.TodoFile = DefaultTodoFile
	}
	if cfg.DoneFile == "" {
		cfg.DoneFile = DefaultDoneFile
	}
	if cfg.SoonDays <= 0 {
		cfg.SoonDays = Default().SoonDays
	}
	return cfg.resolveFiles(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) resolveFiles(dir string) Config {
	if !filepath.IsAbs(c.TodoFile) {
		c.TodoFile = filepath.Join(dir, c.TodoFile)
	}
	if !filepath.IsAbs(c.DoneFile) {
		c.DoneFile = filepath.Join(dir, c.DoneFile)
	}
	return c
}

// FromEnv applies TASKTXT_* overrides to base. Unparseable values are
// ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TODO_FILE"); ok {
		cfg.TodoFile = v
	}
	if v, ok := getEnvString("DONE_FILE"); ok {
		cfg.DoneFile = v
	}
	if v, ok := getEnvString("COMPLETION_MODE"); ok {
		cfg.CompletionMode = v
	}
	if v, ok := getEnvString("COMPLETION_DATE_MODE"); ok {
		cfg.CompletionDateMode = v
	}
	if v, ok := getEnvInt("SOON_DAYS"); ok && v > 0 {
		cfg.SoonDays = v
	}
	if v, ok := getEnvString("DEFAULT_SORT"); ok {
		cfg.DefaultSort = v
	}
	if v, ok := getEnvBool("AUTO_CREATE_DATE"); ok {
		cfg.AutoCreateDate = v
	}
	return cfg
}

// Completion converts the completion settings into model values.
func (c Config) Completion() (model.CompletionConfig, error) {
	return model.ParseCompletionConfig(c.CompletionMode, c.CompletionDateMode)
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
