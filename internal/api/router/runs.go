package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/DjordjeVuckovic/linkeval/internal/apperr"
	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/report"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RunsRouter struct {
	e      *echo.Echo
	store  storage.RunStore
	config runner.Config
}

func NewRunsRouter(e *echo.Echo, store storage.RunStore, cfg runner.Config) *RunsRouter {
	return &RunsRouter{
		e:      e,
		store:  store,
		config: cfg,
	}
}

func (r *RunsRouter) Bind() {
	g := r.e.Group("/v1/runs")
	g.POST("", r.createRun)
	g.GET("", r.listRuns)
	g.GET("/:id", r.getRun)
}

type CreateRunRequest struct {
	ConfigPath string   `json:"config_path" example:"anyburl/config-apply.properties"`
	Metrics    []string `json:"metrics" example:"hits@k,mrr"`
	KValues    []int    `json:"k_values" example:"1,3,10"`
}

type ListRunsResponse struct {
	Runs []domain.Run `json:"runs"`
}

// createRun godoc
// @Summary Evaluate link predictions
// @Description Resolves the prediction files named by the tool config, computes the requested metrics and stores the run.
// @Description config_path and the prediction paths it names must be relative to the working directory.
// @Tags runs
// @Accept json
// @Produce json
// @Param request body CreateRunRequest true "Evaluation request"
// @Success 201 {object} domain.Run
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string "evaluation failed; run_id names the stored failed run"
// @Router /v1/runs [post]
func (r *RunsRouter) createRun(c echo.Context) error {
	var req CreateRunRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if req.ConfigPath == "" {
		return apperr.NewValidation("config_path is required")
	}
	if !filepath.IsLocal(req.ConfigPath) {
		return apperr.NewValidation("config_path must be a relative path inside the working directory")
	}
	set, err := metrics.ParseSet(req.Metrics)
	if err != nil {
		return apperr.NewValidationWrap("invalid metrics", err)
	}
	for _, k := range req.KValues {
		if k <= 0 {
			return apperr.NewValidation(fmt.Sprintf("k_values must be positive, got %d", k))
		}
	}

	ctx := c.Request().Context()
	ks := req.KValues
	if len(ks) == 0 {
		ks = r.config.KValues
	}

	run := domain.NewRun(req.ConfigPath, set, ks)
	if err := r.store.Save(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	evalErr := r.evaluate(ctx, run, set)

	runWriter := storage.NewRunWriter(r.store, run)
	if err := runWriter.Finish(ctx, evalErr); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if evalErr != nil {
		slog.Warn("Evaluation failed", "run", run.ID, "error", evalErr)
		c.Response().Header().Set(echo.HeaderLocation, "/v1/runs/"+run.ID.String())
		return apperr.NewRunError(run.ID.String(), evalErr)
	}

	return c.JSON(http.StatusCreated, run)
}

func (r *RunsRouter) evaluate(ctx context.Context, run *domain.Run, set metrics.Set) error {
	resultsFile := filepath.Join(r.config.OutputDir(), run.ID.String()+".json")
	writer := report.NewMultiWriter(
		storage.NewRunWriter(r.store, run),
		report.NewFileWriter(resultsFile),
	)

	evaluator, err := runner.New(r.config, writer)
	if err != nil {
		return err
	}

	paths, err := evaluator.PredictionPaths(run.ConfigPath)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if !filepath.IsLocal(p) {
			return apperr.NewValidation("prediction paths must be relative paths inside the working directory")
		}
	}
	run.PredictionPaths = paths

	_, err = evaluator.EvaluateFiles(ctx, paths, set, run.KValues)
	return err
}

// getRun godoc
// @Summary Get an evaluation run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} domain.Run
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /v1/runs/{id} [get]
func (r *RunsRouter) getRun(c echo.Context) error {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return apperr.NewValidationWrap("invalid run id", err)
	}

	run, err := r.store.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return apperr.NewNotFound("run", idParam)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// listRuns godoc
// @Summary List recent evaluation runs
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {object} ListRunsResponse
// @Failure 400 {object} map[string]string
// @Router /v1/runs [get]
func (r *RunsRouter) listRuns(c echo.Context) error {
	limit := storage.DefaultListLimit
	if l := c.QueryParam("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			return apperr.NewValidation("limit must be a positive integer")
		}
		limit = v
	}

	runs, err := r.store.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []domain.Run{}
	}
	return c.JSON(http.StatusOK, ListRunsResponse{Runs: runs})
}
