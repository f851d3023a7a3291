package in_mem

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/google/uuid"
)

type RunStore struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Run
}

func NewRunStore() *RunStore {
	return &RunStore{
		storage: make(map[uuid.UUID]domain.Run),
	}
}

func (s *RunStore) Save(_ context.Context, run *domain.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.storage[run.ID] = cloneRun(*run)

	slog.Debug("Saved run to in-memory storage", "id", run.ID, "status", run.Status)
	return nil
}

func (s *RunStore) Get(_ context.Context, id uuid.UUID) (*domain.Run, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	run, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	out := cloneRun(run)
	return &out, nil
}

func (s *RunStore) List(_ context.Context, limit int) ([]domain.Run, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	runs := make([]domain.Run, 0, len(s.storage))
	for _, r := range s.storage {
		runs = append(runs, cloneRun(r))
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	limit = storage.NormalizeLimit(limit)
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *RunStore) Healthy(context.Context) bool {
	return true
}

// cloneRun detaches the stored run from caller owned slices and maps.
func cloneRun(r domain.Run) domain.Run {
	r.PredictionPaths = append([]string(nil), r.PredictionPaths...)
	r.Metrics = append(r.Metrics[:0:0], r.Metrics...)
	r.KValues = append([]int(nil), r.KValues...)
	if r.Results != nil {
		results := make(metrics.Results, len(r.Results))
		results.Merge(r.Results)
		r.Results = results
	}
	return r
}
