package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/anyburl"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/spec"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/split"
	"github.com/spf13/cobra"
)

func newExportSplitsCmd() *cobra.Command {
	var (
		paths      split.Paths
		workingDir string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export-splits",
		Short: "Re-emit train/test/valid sample files as AnyBURL triples",
		Long: `Reads tab-separated sample files (id1, edgeType, id2, qscore, value) and writes
headerless train.txt, test.txt and valid.txt files holding only the triple
columns into the evaluation output folder. Splits that are not given are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := runner.Config{WorkingDir: workingDir, OutputFolder: output}
			if err := os.MkdirAll(cfg.OutputDir(), 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			return split.NewExporter(cfg.OutputDir()).Export(paths)
		},
	}

	cmd.Flags().StringVar(&paths.Train, "train", "", "Train split sample file")
	cmd.Flags().StringVar(&paths.Test, "test", "", "Test split sample file")
	cmd.Flags().StringVar(&paths.Valid, "valid", "", "Validation split sample file")
	cmd.Flags().StringVar(&workingDir, "working-dir", "", "Directory relative paths are resolved against")
	cmd.Flags().StringVarP(&output, "output", "o", runner.DefaultOutputFolder, "Evaluation output folder")
	return cmd
}

type toolFlags struct {
	dir     string
	maxHeap string
	javaBin string
	timeout time.Duration
}

func (f *toolFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "tool-dir", "anyburl", "Directory holding AnyBURL-RE.jar and IRIFAB")
	cmd.Flags().StringVar(&f.maxHeap, "max-heap", anyburl.DefaultMaxHeap, "Maximum JVM heap for rule learning")
	cmd.Flags().StringVar(&f.javaBin, "java", anyburl.DefaultJavaBin, "Java executable")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Abort the tool after this long (0 disables)")
}

func (f *toolFlags) tool() (*anyburl.Tool, error) {
	paths, err := anyburl.ResolvePaths(f.dir)
	if err != nil {
		return nil, err
	}
	if err := paths.Verify(); err != nil {
		return nil, err
	}

	t := anyburl.NewTool(paths)
	t.MaxHeap = f.maxHeap
	t.JavaBin = f.javaBin
	t.Timeout = f.timeout
	return t, nil
}

func newLearnCmd() *cobra.Command {
	var flags toolFlags

	cmd := &cobra.Command{
		Use:   "learn <learn-config>",
		Short: "Learn rules with AnyBURL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.tool()
			if err != nil {
				return err
			}
			t.Output = cmd.OutOrStdout()
			return t.Learn(cmd.Context(), args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func newApplyCmd() *cobra.Command {
	var flags toolFlags

	cmd := &cobra.Command{
		Use:   "apply <apply-config>",
		Short: "Apply learned rules with IRIFAB to produce predictions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.tool()
			if err != nil {
				return err
			}
			t.Output = cmd.OutOrStdout()
			return t.Apply(cmd.Context(), args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func newEvaluateCmd() *cobra.Command {
	var (
		workingDir  string
		output      string
		metricNames []string
		ks          []int
		results     []string
		table       bool
		store       bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <eval-config>",
		Short: "Score the prediction files named by an evaluation config",
		Long: `Resolves PATH_PREDICTIONS from the evaluation config (a literal path or
"prefix|s1,s2,..."), parses every prediction file in order and computes the
requested metrics. Results of later files overwrite colliding keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := metrics.ParseSet(metricNames)
			if err != nil {
				return err
			}

			cfg, err := defaultRunnerConfig()
			if err != nil {
				return err
			}
			cfg.WorkingDir = workingDir
			cfg.OutputFolder = output
			if len(ks) > 0 {
				cfg.KValues = ks
			}

			_, err = evaluate(cmd.Context(), cfg, args[0], set, outputOptions{
				Files: results,
				Table: table,
				Store: store,
				Out:   cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().StringVar(&workingDir, "working-dir", "", "Directory relative paths are resolved against")
	cmd.Flags().StringVarP(&output, "output", "o", runner.DefaultOutputFolder, "Evaluation output folder")
	cmd.Flags().StringSliceVarP(&metricNames, "metrics", "m", nil, "Metrics to compute (empty = all)")
	cmd.Flags().IntSliceVarP(&ks, "k", "k", nil, "K values for Hits@K (default from DEFAULT_HITS_AT_K or 1,3,10)")
	cmd.Flags().StringSliceVar(&results, "results", []string{"metrics.json"}, "Result files written into the output folder (.json or .yaml)")
	cmd.Flags().BoolVar(&table, "table", true, "Print a results table")
	cmd.Flags().BoolVar(&store, "store", false, "Persist the run in the store selected by STORAGE_TYPE")
	return cmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <job.yaml>",
		Short: "Run a job: export splits, learn, apply and evaluate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := spec.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			_, err = runJob(cmd.Context(), job, cmd.OutOrStdout())
			return err
		},
	}
}

func defaultRunnerConfig() (runner.Config, error) {
	cfg := runner.DefaultConfig()
	ks, err := envKValues()
	if err != nil {
		return cfg, err
	}
	cfg.KValues = ks
	return cfg, nil
}

func resolveIn(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func logRun(run *domain.Run) {
	if run == nil {
		return
	}
	slog.Info("Run stored", "id", run.ID, "status", run.Status)
}
