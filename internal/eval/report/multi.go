package report

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
)

// Writer is implemented by every results sink.
type Writer interface {
	Write(ctx context.Context, results metrics.Results) error
}

// MultiWriter fans results out to every writer and joins their errors.
type MultiWriter struct {
	writers []Writer
}

func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (m *MultiWriter) Write(ctx context.Context, results metrics.Results) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(ctx, results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
