package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 50, cfg.Extraction.RowBudget)
	assert.Equal(t, "AC", cfg.ArticleNumber.Prefix)
	assert.Equal(t, 8, cfg.ArticleNumber.Width)
	assert.Equal(t, 1000, cfg.ArticleNumber.Base)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_port: 9090
llm:
  model: gpt-4o
extraction:
  row_budget: 25
limits:
  max_rows_per_sheet: 200
article_number:
  base: 5000
  counter_path: /tmp/counter.db
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 25, cfg.Extraction.RowBudget)
	assert.Equal(t, 200, cfg.Limits.MaxRowsPerSheet)
	assert.Equal(t, 5000, cfg.ArticleNumber.Base)
	assert.Equal(t, "/tmp/counter.db", cfg.ArticleNumber.CounterPath)
	// Untouched values keep their defaults.
	assert.Equal(t, 4, cfg.Extraction.Parallelism)
	assert.Equal(t, "AC", cfg.ArticleNumber.Prefix)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extraction:\n  row_budget: -1\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
