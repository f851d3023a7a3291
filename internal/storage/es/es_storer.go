package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/linkeval/internal/domain"
	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

type RunStore struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewRunStore(ctx context.Context, config ClientConfig) (*RunStore, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	store := &RunStore{
		client:    client,
		indexName: config.IndexName,
	}

	if err := store.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return store, nil
}

func (e *RunStore) Save(ctx context.Context, run *domain.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	res, err := e.client.Index(e.indexName).
		Id(run.ID.String()).
		Document(run).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index run: %w", err)
	}

	slog.Debug("Run indexed", "id", run.ID, "index", e.indexName, "result", res.Result)
	return nil
}

func (e *RunStore) Get(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	res, err := e.client.Get(e.indexName, id.String()).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusNotFound {
			return nil, storage.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	if !res.Found {
		return nil, storage.ErrRunNotFound
	}

	var run domain.Run
	if err := json.Unmarshal(res.Source_, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}
	return &run, nil
}

func (e *RunStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	sortOrderDesc := sortorder.Desc

	res, err := e.client.Search().
		Index(e.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Size(storage.NormalizeLimit(limit)).
		Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortOrderDesc},
			},
		}).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch run listing failed", "error", err, "index", e.indexName)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]domain.Run, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var run domain.Run
		if err := json.Unmarshal(hit.Source_, &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (e *RunStore) Healthy(ctx context.Context) bool {
	ok, err := e.client.Ping().Do(ctx)
	return err == nil && ok
}

// EnsureIndex creates the runs index. Results carry relation names as keys,
// so the results object is stored but not indexed.
func (e *RunStore) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	disabled := false
	results := types.NewObjectProperty()
	results.Enabled = &disabled

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewKeywordProperty(),
			"config_path":      types.NewKeywordProperty(),
			"prediction_paths": types.NewKeywordProperty(),
			"metrics":          types.NewKeywordProperty(),
			"k_values":         types.NewIntegerNumberProperty(),
			"results":          results,
			"status":           types.NewKeywordProperty(),
			"error":            types.NewTextProperty(),
			"created_at":       types.NewDateProperty(),
			"updated_at":       types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}
