package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/linkeval/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("defaults to in-memory", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, storage.InMem, cfg.Type)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "mongo")
		_, err := LoadEnv()
		assert.ErrorContains(t, err, "invalid STORAGE_TYPE")
	})

	t.Run("pg without connection string", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("pg max conns", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "postgres://u:p@localhost:5432/linkeval")
		t.Setenv("PG_MAX_CONNS", "8")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, int32(8), cfg.Pg.MaxConns)

		t.Setenv("PG_MAX_CONNS", "lots")
		_, err = LoadEnv()
		assert.ErrorContains(t, err, "PG_MAX_CONNS")
	})

	t.Run("es", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", "http://es1:9200, http://es2:9200,")
		t.Setenv("ES_INDEX_NAME", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Es.Addresses)
		assert.Equal(t, defaultESIndex, cfg.Es.IndexName)
	})

	t.Run("es without addresses", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", "")
		_, err := LoadEnv()
		assert.ErrorContains(t, err, "ES_ADDRESSES")
	})
}

func TestNewBackend_InMem(t *testing.T) {
	b, err := NewBackend(context.Background(), &StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer b.Close()

	assert.NotNil(t, b.Store)
	assert.True(t, b.Health.Healthy(context.Background()))
}

func TestNewBackend_Unsupported(t *testing.T) {
	_, err := NewBackend(context.Background(), &StorageConfig{Type: "mongo"})
	assert.ErrorContains(t, err, "unsupported storer type: mongo")
}
