package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/google/uuid"
)

// RunStore persists evaluation runs. Save is an upsert keyed by run ID.
type RunStore interface {
	Save(ctx context.Context, run *domain.Run) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Run, error)
	// List returns the most recent runs first.
	List(ctx context.Context, limit int) ([]domain.Run, error)
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

var ErrRunNotFound = errors.New("run not found")

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

const DefaultListLimit = 20

// NormalizeLimit clamps a caller supplied page size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
