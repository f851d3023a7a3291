package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/anyburl"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/report"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/spec"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/split"
	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/factory"
	"github.com/DjordjeVuckovic/linkeval/pkg/config/env"
)

const kValuesEnv = "DEFAULT_HITS_AT_K"

type outputOptions struct {
	Files []string
	Table bool
	Store bool
	Out   io.Writer
}

func envKValues() ([]int, error) {
	return env.IntList(kValuesEnv, metrics.DefaultKValues)
}

// evaluate wires the result writers and runs the evaluator. File writers
// see every intermediate result; the table is printed once at the end.
func evaluate(ctx context.Context, cfg runner.Config, configPath string, set metrics.Set, opts outputOptions) (metrics.Results, error) {
	var writers []runner.ResultWriter
	for _, name := range opts.Files {
		writers = append(writers, report.NewFileWriter(resolveIn(cfg.OutputDir(), name)))
	}

	var runWriter *storage.RunWriter
	if opts.Store {
		backend, err := newBackend(ctx)
		if err != nil {
			return nil, err
		}
		defer backend.Close()

		run := domain.NewRun(configPath, set, cfg.KValues)
		if err := backend.Store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		runWriter = storage.NewRunWriter(backend.Store, run)
		writers = append(writers, runWriter)
		defer logRun(run)
	}

	evaluator, err := runner.New(cfg, multiWriter(writers))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results, evalErr := evaluator.Evaluate(ctx, configPath, set, cfg.KValues)

	if runWriter != nil {
		if err := runWriter.Finish(ctx, evalErr); err != nil {
			slog.Error("Failed to record run status", "error", err)
		}
	}
	if evalErr != nil {
		return results, evalErr
	}

	if opts.Table && opts.Out != nil {
		report.WriteTable(results, opts.Out)
	}
	slog.Info("Evaluation finished", "config", configPath, "metrics", len(results), "duration", time.Since(start))
	return results, nil
}

func multiWriter(writers []runner.ResultWriter) runner.ResultWriter {
	if len(writers) == 0 {
		return nil
	}
	ws := make([]report.Writer, 0, len(writers))
	for _, w := range writers {
		ws = append(ws, w)
	}
	return report.NewMultiWriter(ws...)
}

func newBackend(ctx context.Context) (*factory.Backend, error) {
	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}
	return factory.NewBackend(ctx, cfg)
}

// runJob executes the stages a job configures, in order: split export,
// rule learning, rule application and evaluation.
func runJob(ctx context.Context, job *spec.JobSpec, out io.Writer) (metrics.Results, error) {
	cfg := job.RunnerConfig()
	slog.Info("Running job", "name", job.Name, "output", cfg.OutputDir())

	if !job.Splits.Empty() {
		dir := job.WorkingDir
		paths := split.Paths{
			Train: resolveIn(dir, job.Splits.Train),
			Test:  resolveIn(dir, job.Splits.Test),
			Valid: resolveIn(dir, job.Splits.Valid),
		}
		if err := os.MkdirAll(cfg.OutputDir(), 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		if err := split.NewExporter(cfg.OutputDir()).Export(paths); err != nil {
			return nil, err
		}
	}

	if job.Tool.LearnConfig != "" || job.Tool.ApplyConfig != "" {
		tool, err := jobTool(job)
		if err != nil {
			return nil, err
		}
		tool.Output = out

		if job.Tool.LearnConfig != "" {
			if err := tool.Learn(ctx, resolveIn(job.WorkingDir, job.Tool.LearnConfig)); err != nil {
				return nil, fmt.Errorf("learn: %w", err)
			}
		}
		if job.Tool.ApplyConfig != "" {
			if err := tool.Apply(ctx, resolveIn(job.WorkingDir, job.Tool.ApplyConfig)); err != nil {
				return nil, fmt.Errorf("apply: %w", err)
			}
		}
	}

	return evaluate(ctx, cfg, job.Evaluate.Config, job.MetricSet(), outputOptions{
		Files: job.Results.Files,
		Table: job.Results.Table,
		Store: job.Results.Store,
		Out:   out,
	})
}

func jobTool(job *spec.JobSpec) (*anyburl.Tool, error) {
	paths, err := anyburl.ResolvePaths(resolveIn(job.WorkingDir, job.Tool.Dir))
	if errors.Is(err, anyburl.ErrUnsupportedOS) {
		slog.Error("IRIFAB is not available for this platform", "error", err)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if err := paths.Verify(); err != nil {
		return nil, err
	}

	tool := anyburl.NewTool(paths)
	if job.Tool.MaxHeap != "" {
		tool.MaxHeap = job.Tool.MaxHeap
	}
	tool.Timeout = job.ToolTimeout()
	return tool, nil
}
