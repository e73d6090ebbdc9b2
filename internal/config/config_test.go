package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccdi-federation/ccdi-catalog/internal/config"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CCDI_CATALOG_SEED_FILE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.API.ListenAddr)
	assert.Empty(t, cfg.API.BaseURL)
	assert.Equal(t, config.DefaultPerPage, cfg.Catalog.DefaultPerPage)
	assert.Equal(t, config.DefaultEntityCount, cfg.Store.Subjects)
	assert.Equal(t, config.DefaultEntityCount, cfg.Store.Samples)
	assert.Equal(t, config.DefaultEntityCount, cfg.Store.Files)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CCDI_CATALOG_API_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("CCDI_CATALOG_API_BASE_URL", "https://catalog.example.org")
	t.Setenv("CCDI_CATALOG_DEFAULT_PER_PAGE", "25")
	t.Setenv("CCDI_CATALOG_RANDOM_SEED", "7")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.API.ListenAddr)
	assert.Equal(t, "https://catalog.example.org", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.Catalog.DefaultPerPage)
	assert.Equal(t, uint64(7), cfg.Store.RandomSeed)
}

func TestConfigEnvOverrideInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CCDI_CATALOG_DEFAULT_PER_PAGE", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_per_page")
}
