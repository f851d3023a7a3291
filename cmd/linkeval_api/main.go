// Package main Link Evaluation API
// @title Link Evaluation API
// @version 1.0
// @description Evaluates knowledge graph link predictions and stores evaluation runs
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/linkeval/docs"
	"github.com/DjordjeVuckovic/linkeval/internal/api/router"
	"github.com/DjordjeVuckovic/linkeval/internal/api/server"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/linkeval/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := factory.NewBackend(initCtx, &cfg.StorageConfig)
	cancel()
	if err != nil {
		slog.Error("Failed to create run store", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	outputDir := cfg.RunnerConfig.OutputDir()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		slog.Error("Failed to create output folder", "path", outputDir, "error", err)
		os.Exit(1)
	}
	health := pkgserver.AllHealthy(backend.Health, pkgserver.HealthFunc(func(context.Context) bool {
		info, err := os.Stat(outputDir)
		return err == nil && info.IsDir()
	}))

	s := server.New(sCfg, health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Link Evaluation API is running")
	})

	runsRouter := router.NewRunsRouter(s.Echo, backend.Store, cfg.RunnerConfig)
	runsRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
