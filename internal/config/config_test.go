package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trade-master/internal/errors"
)

func TestLoadCreatesTemplateAndDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 4, cfg.UI.HistoryWeeks)

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err, "first load writes a config template")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	override := t.TempDir()
	t.Setenv("TRADEMASTER_DATA_DIR", override)
	t.Setenv("TRADEMASTER_BACKEND", "sqlite")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, override, cfg.Storage.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestValidateRejectsBadValues(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Backend: "file", DataDir: "/tmp/trademaster"},
			UI:      UIConfig{HistoryWeeks: 4},
		}
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Storage.Backend = "redis"
	assert.ErrorIs(t, c.Validate(), apperrors.ErrConfigInvalid)

	c = valid()
	c.Storage.DataDir = ""
	assert.ErrorIs(t, c.Validate(), apperrors.ErrConfigInvalid)

	c = valid()
	c.UI.HistoryWeeks = 0
	assert.ErrorIs(t, c.Validate(), apperrors.ErrConfigInvalid)
}
