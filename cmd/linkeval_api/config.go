package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/factory"
	"github.com/DjordjeVuckovic/linkeval/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type LinkEvalConfig struct {
	StorageConfig factory.StorageConfig
	RunnerConfig  runner.Config
}

func (as *AppConfig) Load() (*LinkEvalConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/linkeval_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	runnerCfg := runner.DefaultConfig()
	runnerCfg.WorkingDir = os.Getenv("WORKING_DIR")
	if folder := os.Getenv("OUTPUT_FOLDER"); folder != "" {
		runnerCfg.OutputFolder = folder
	}
	ks, err := env.IntList("DEFAULT_HITS_AT_K", runnerCfg.KValues)
	if err != nil {
		return nil, fmt.Errorf("load DEFAULT_HITS_AT_K: %w", err)
	}
	runnerCfg.KValues = ks

	return &LinkEvalConfig{
		StorageConfig: *storageCfg,
		RunnerConfig:  runnerCfg,
	}, nil
}
