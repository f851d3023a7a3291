package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntList(t *testing.T) {
	def := []int{1, 3, 10}

	tests := []struct {
		name    string
		value   string
		want    []int
		wantErr bool
	}{
		{name: "unset", value: "", want: def},
		{name: "list", value: "1, 5,20", want: []int{1, 5, 20}},
		{name: "trailing comma", value: "2,", want: []int{2}},
		{name: "only commas", value: ",,", want: def},
		{name: "not a number", value: "1,x", wantErr: true},
		{name: "zero", value: "0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_KS", tt.value)
			got, err := IntList("TEST_KS", def)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LINKEVAL_TEST_VALUE=loaded\n"), 0644))

	t.Setenv("ENV_PATH", path)
	t.Setenv("LINKEVAL_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("LINKEVAL_TEST_VALUE"))

	require.NoError(t, LoadDotEnv("local", "ignored"))
	assert.Equal(t, "loaded", os.Getenv("LINKEVAL_TEST_VALUE"))

	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, LoadDotEnv("local", "ignored"))
	assert.NoError(t, LoadDotEnv("prod", "ignored"))
}
