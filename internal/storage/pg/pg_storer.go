package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RunStore struct {
	db *pgxpool.Pool
}

func NewRunStore(pool *ConnectionPool) *RunStore {
	return &RunStore{db: pool.conn}
}

const upsertRunSQL = `
	INSERT INTO eval_runs (id, config_path, prediction_paths, metrics, k_values, results, status, error, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		prediction_paths = EXCLUDED.prediction_paths,
		results          = EXCLUDED.results,
		status           = EXCLUDED.status,
		error            = EXCLUDED.error,
		updated_at       = EXCLUDED.updated_at
`

const selectRunSQL = `
	SELECT id, config_path, prediction_paths, metrics, k_values, results, status, error, created_at, updated_at
	FROM eval_runs
`

func (s *RunStore) Save(ctx context.Context, run *domain.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	if run.UpdatedAt.IsZero() {
		run.UpdatedAt = now
	}

	paths, err := json.Marshal(nonNil(run.PredictionPaths))
	if err != nil {
		return fmt.Errorf("failed to marshal prediction paths: %w", err)
	}
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	ks, err := json.Marshal(nonNil(run.KValues))
	if err != nil {
		return fmt.Errorf("failed to marshal k values: %w", err)
	}
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	var runErr *string
	if run.Error != "" {
		runErr = &run.Error
	}

	_, err = s.db.Exec(ctx, upsertRunSQL,
		run.ID,
		run.ConfigPath,
		paths,
		metricsJSON,
		ks,
		results,
		string(run.Status),
		runErr,
		run.CreatedAt,
		run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert run: %w", err)
	}

	slog.Debug("Run saved", "id", run.ID, "status", run.Status)
	return nil
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	row := s.db.QueryRow(ctx, selectRunSQL+" WHERE id = $1", id)

	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}

func (s *RunStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := s.db.Query(ctx, selectRunSQL+" ORDER BY created_at DESC LIMIT $1", storage.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*domain.Run, error) {
	var (
		run                                  domain.Run
		status                               string
		runErr                               *string
		paths, metricsJSON, ks, resultsJSON []byte
	)
	err := row.Scan(
		&run.ID,
		&run.ConfigPath,
		&paths,
		&metricsJSON,
		&ks,
		&resultsJSON,
		&status,
		&runErr,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Status = domain.RunStatus(status)
	if runErr != nil {
		run.Error = *runErr
	}
	if err := json.Unmarshal(paths, &run.PredictionPaths); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction paths: %w", err)
	}
	if err := json.Unmarshal(metricsJSON, &run.Metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	if err := json.Unmarshal(ks, &run.KValues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal k values: %w", err)
	}
	run.Results = make(metrics.Results)
	if err := json.Unmarshal(resultsJSON, &run.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return &run, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
