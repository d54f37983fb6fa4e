package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/tasktxt/internal/model"
)

var (
	ErrNoPath   = errors.New("storage: empty file path")
	ErrNotFound = errors.New("storage: file not found")
)

// Repository persists a whole task list. Ids are positions, so every save
// replaces the list.
type Repository interface {
	Load(ctx context.Context, today time.Time) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
	Append(ctx context.Context, tasks []model.Task) error
}
