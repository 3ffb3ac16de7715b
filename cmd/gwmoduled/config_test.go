package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 1883, cfg.Port)
	assert.Equal(t, "gwmodule", cfg.ModuleName)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host":"broker.local","port":8883,"module_name":"gw-1"}`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "broker.local", cfg.Host)
	assert.Equal(t, 8883, cfg.Port)
	assert.Equal(t, "gw-1", cfg.ModuleName)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host":"broker.local","port":8883}`), 0o644))

	require.NoError(t, serveCmd.Flags().Set("host", "override.local"))
	defer serveCmd.Flags().Set("host", "")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "override.local", cfg.Host)
	assert.Equal(t, 8883, cfg.Port)
}
