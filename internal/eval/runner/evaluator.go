package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/anyburl"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/prediction"
)

// ResultWriter persists the accumulated results of an evaluation.
type ResultWriter interface {
	Write(ctx context.Context, results metrics.Results) error
}

type Evaluator struct {
	config Config
	writer ResultWriter
}

// New creates the output directory if it does not exist yet.
func New(cfg Config, writer ResultWriter) (*Evaluator, error) {
	if cfg.OutputFolder == "" {
		cfg.OutputFolder = DefaultOutputFolder
	}
	if len(cfg.KValues) == 0 {
		cfg.KValues = metrics.DefaultKValues
	}

	if err := os.MkdirAll(cfg.OutputDir(), 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &Evaluator{config: cfg, writer: writer}, nil
}

func (e *Evaluator) Config() Config {
	return e.config
}

// Evaluate resolves the prediction files named by the tool config at
// configPath and evaluates them in order.
func (e *Evaluator) Evaluate(ctx context.Context, configPath string, set metrics.Set, ks []int) (metrics.Results, error) {
	paths, err := e.PredictionPaths(configPath)
	if err != nil {
		return nil, err
	}
	return e.EvaluateFiles(ctx, paths, set, ks)
}

// PredictionPaths lists the prediction files named by a tool config.
func (e *Evaluator) PredictionPaths(configPath string) ([]string, error) {
	return anyburl.PredictionPaths(e.config.resolve(configPath))
}

// EvaluateFiles evaluates each prediction file sequentially. Results of later
// files overwrite colliding keys of earlier ones, and the accumulated mapping
// is handed to the writer after every file.
func (e *Evaluator) EvaluateFiles(ctx context.Context, paths []string, set metrics.Set, ks []int) (metrics.Results, error) {
	if len(ks) == 0 {
		ks = e.config.KValues
	}

	results := make(metrics.Results)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		fileResults, err := e.evaluateFile(e.config.resolve(p), set, ks)
		if err != nil {
			return results, err
		}
		results.Merge(fileResults)

		if e.writer != nil {
			if err := e.writer.Write(ctx, results); err != nil {
				return results, fmt.Errorf("write results: %w", err)
			}
		}
	}

	return results, nil
}

func (e *Evaluator) evaluateFile(path string, set metrics.Set, ks []int) (metrics.Results, error) {
	start := time.Now()

	records, err := prediction.ReadFile(path)
	if err != nil {
		return nil, err
	}

	results := make(metrics.Results)
	if set.HasKind(metrics.KindRanked) {
		results.Merge(metrics.EvaluateRanked(set, ks, records))
	}
	if set.HasKind(metrics.KindThreshold) {
		threshold, err := metrics.EvaluateThreshold(set, records)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", path, err)
		}
		results.Merge(threshold)
	}

	slog.Info("Evaluated predictions",
		"path", path,
		"records", len(records),
		"metrics", len(results),
		"duration", time.Since(start))

	return results, nil
}
