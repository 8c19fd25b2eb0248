package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "snaglist.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "stdio", cfg.Transport.Mode)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SNAGLIST_SERVER_HOST", "0.0.0.0")
	t.Setenv("SNAGLIST_SERVER_PORT", "9090")
	t.Setenv("SNAGLIST_DB_PATH", "/var/data/site.db")
	t.Setenv("SNAGLIST_LOG_LEVEL", "debug")
	t.Setenv("SNAGLIST_TRANSPORT_MODE", "http")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/var/data/site.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SNAGLIST_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidTransport(t *testing.T) {
	t.Setenv("SNAGLIST_TRANSPORT_MODE", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("db:\n  path: from-file.db\nlog:\n  level: warn\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("SNAGLIST_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-file.db", cfg.DB.Path)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "stdio", cfg.Transport.Mode, "file leaves untouched keys at defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: from-file.db\n"), 0o600))
	t.Setenv("SNAGLIST_CONFIG_PATH", path)
	t.Setenv("SNAGLIST_DB_PATH", "from-env.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env.db", cfg.DB.Path)
}
