// internal/config/discover_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	// Clear XDG var to test default
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, ".config/arrscout/config.toml")
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path := DefaultPath()
	assert.Equal(t, "/custom/config/arrscout/config.toml", path)
}

func TestDiscover_ARRSCOUT_CONFIG(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "custom.toml")
	err := os.WriteFile(cfgPath, []byte("[log]"), 0644)
	require.NoError(t, err, "failed to create test config")

	t.Setenv("ARRSCOUT_CONFIG", cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_ARRSCOUT_CONFIG_NotFound(t *testing.T) {
	t.Setenv("ARRSCOUT_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err, "expected error for missing ARRSCOUT_CONFIG")
	assert.Contains(t, err.Error(), "ARRSCOUT_CONFIG")
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv("ARRSCOUT_CONFIG", "")

	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	err := os.WriteFile(cfgPath, []byte("[log]"), 0644)
	require.NoError(t, err, "failed to create test config")
	t.Chdir(tmp)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(path))
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv("ARRSCOUT_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Chdir(t.TempDir())

	_, err := Discover()
	require.Error(t, err, "expected error when no config found")
	assert.ErrorIs(t, err, ErrNoConfig)
	assert.Contains(t, err.Error(), "config not found")
}
