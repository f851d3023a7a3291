package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
)

// RunWriter stores every intermediate result of an evaluation on its run.
type RunWriter struct {
	store RunStore
	run   *domain.Run
}

func NewRunWriter(store RunStore, run *domain.Run) *RunWriter {
	return &RunWriter{store: store, run: run}
}

func (w *RunWriter) Write(ctx context.Context, results metrics.Results) error {
	snapshot := make(metrics.Results, len(results))
	snapshot.Merge(results)

	w.run.Results = snapshot
	w.run.UpdatedAt = time.Now().UTC()

	if err := w.store.Save(ctx, w.run); err != nil {
		return fmt.Errorf("save run %s: %w", w.run.ID, err)
	}
	return nil
}

// Finish records the terminal status of the run.
func (w *RunWriter) Finish(ctx context.Context, evalErr error) error {
	w.run.Status = domain.RunStatusCompleted
	if evalErr != nil {
		w.run.Status = domain.RunStatusFailed
		w.run.Error = evalErr.Error()
	}
	w.run.UpdatedAt = time.Now().UTC()
	return w.store.Save(ctx, w.run)
}
