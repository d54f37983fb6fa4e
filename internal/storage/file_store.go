package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/model"
	"github.com/sandeepkv93/tasktxt/internal/todotxt"
)

const filePerm = 0o644

// FileStore keeps tasks in a todo.txt file.
type FileStore struct {
	Path string
}

var _ Repository = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &FileStore{Path: path}, nil
}

// Load reads the file. A missing file is an empty list.
func (s *FileStore) Load(ctx context.Context, today time.Time) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.Path, err)
	}
	return todotxt.ReadAll(bytes.NewReader(data), today)
}

// LoadExisting is Load without the missing-file fallback.
func (s *FileStore) LoadExisting(ctx context.Context, today time.Time) ([]model.Task, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
	}
	return s.Load(ctx, today)
}

// Save replaces the file by writing a sibling temp file and renaming it.
func (s *FileStore) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := todotxt.WriteAll(&buf, tasks); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: replace %s: %w", s.Path, err)
	}
	return nil
}

// Append adds tasks to the end of the file, creating it when needed.
func (s *FileStore) Append(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", s.Path, err)
	}
	if err := todotxt.WriteAll(f, tasks); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", s.Path, err)
	}
	return nil
}

// Archive moves finished tasks from the todo store to the done store and
// returns the remaining tasks.
func Archive(ctx context.Context, todo, done Repository, tasks []model.Task) ([]model.Task, int, error) {
	keep := make([]model.Task, 0, len(tasks))
	var finished []model.Task
	for _, t := range tasks {
		if t.Finished {
			finished = append(finished, t)
			continue
		}
		keep = append(keep, t)
	}
	if len(finished) == 0 {
		return tasks, 0, nil
	}
	if err := done.Append(ctx, finished); err != nil {
		return nil, 0, err
	}
	if err := todo.Save(ctx, keep); err != nil {
		return nil, 0, err
	}
	return keep, len(finished), nil
}
