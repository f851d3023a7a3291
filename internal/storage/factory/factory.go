package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/es"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/pg"
	"github.com/DjordjeVuckovic/linkeval/pkg/server"
)

// Backend bundles a run store with its health probe and release hook.
type Backend struct {
	Store  storage.RunStore
	Health server.HealthChecker
	Close  func()
}

// NewBackend creates the run store selected by cfg.
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return &Backend{
			Store:  pg.NewRunStore(pool),
			Health: pool,
			Close:  pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		store, err := es.NewRunStore(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store, Health: store, Close: func() {}}, nil

	case storage.InMem:
		store := in_mem.NewRunStore()
		return &Backend{Store: store, Health: store, Close: func() {}}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
