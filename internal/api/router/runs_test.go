package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/linkeval/internal/apperr"
	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/linkeval/internal/eval/runner"
	"github.com/DjordjeVuckovic/linkeval/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const predictions = "GENE:1 GENE_DIS DIS:9\n" +
	"Heads: GENE:1\t0.9\tGENE:2\t0.5\n" +
	"Tails: DIS:9\t0.8\tDIS:2\t0.2\n"

type fixture struct {
	e     *echo.Echo
	store *in_mem.RunStore
	dir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "preds.txt"), []byte(predictions), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config-apply.properties"),
		[]byte("PATH_PREDICTIONS = preds.txt\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.properties"),
		[]byte("PATH_RULES = rules\n"), 0644))

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	store := in_mem.NewRunStore()

	cfg := runner.DefaultConfig()
	cfg.WorkingDir = dir
	NewRunsRouter(e, store, cfg).Bind()

	return &fixture{e: e, store: store, dir: dir}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestCreateRun(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/runs", `{"config_path":"config-apply.properties","metrics":["hits@k","mrr"],"k_values":[1]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var run domain.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, domain.RunStatusCompleted, run.Status)
	assert.Equal(t, []string{"preds.txt"}, run.PredictionPaths)
	assert.InDelta(t, 1.0, run.Results[metrics.HitsAtK].AtK[1], 1e-12)

	_, err := os.Stat(filepath.Join(f.dir, runner.DefaultOutputFolder, run.ID.String()+".json"))
	assert.NoError(t, err, "results file is written to the output folder")

	rec = f.do(http.MethodGet, "/v1/runs/"+run.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stored domain.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, run.ID, stored.ID)

	rec = f.do(http.MethodGet, "/v1/runs?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list ListRunsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Runs, 1)
}

func TestCreateRun_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing config", `{"metrics":["mrr"]}`},
		{"unknown metric", `{"config_path":"config-apply.properties","metrics":["ndcg"]}`},
		{"bad k", `{"config_path":"config-apply.properties","k_values":[0]}`},
		{"bad json", `{"config_path":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/v1/runs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateRun_ConfigErrorMarksRunFailed(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/v1/runs", `{"config_path":"broken.properties"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["run_id"])
	assert.Equal(t, "/v1/runs/"+body["run_id"], rec.Header().Get(echo.HeaderLocation))

	rec = f.do(http.MethodGet, "/v1/runs/"+body["run_id"], "")
	require.Equal(t, http.StatusOK, rec.Code)
	var run domain.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, domain.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "PATH_PREDICTIONS")
}

func TestCreateRun_RejectsPathsOutsideWorkingDir(t *testing.T) {
	f := newFixture(t)

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.env")
	require.NoError(t, os.WriteFile(secret, []byte("DB_PASSWORD_IS_hunter2\n"), 0644))

	for _, configPath := range []string{secret, "../secret.env", "../../etc/hostname"} {
		t.Run(configPath, func(t *testing.T) {
			body, err := json.Marshal(CreateRunRequest{ConfigPath: configPath})
			require.NoError(t, err)

			rec := f.do(http.MethodPost, "/v1/runs", string(body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}

	runs, err := f.store.List(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs, "rejected requests do not create runs")
}

func TestCreateRun_RejectsPredictionPathsOutsideWorkingDir(t *testing.T) {
	f := newFixture(t)

	for name, value := range map[string]string{
		"absolute.properties": filepath.Join(t.TempDir(), "preds.txt"),
		"parent.properties":   "../preds/|1,2",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, name), []byte("PATH_PREDICTIONS = "+value+"\n"), 0644))

		rec := f.do(http.MethodPost, "/v1/runs", `{"config_path":"`+name+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "run_id", name)
	}
}

func TestGetRun_Errors(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/v1/runs/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/v1/runs/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/v1/runs?limit=-1", "").Code)
}
