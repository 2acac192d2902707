package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"demo/minimart/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	require.EqualValues(t, 10, cfg.DB.MaxConns)
	require.True(t, cfg.DB.MigrateOnStart)
	require.Equal(t, config.DefaultUpstreamURL, cfg.Upstream.URL)
	require.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	require.EqualValues(t, 8<<20, cfg.Upstream.MaxResponseBytes)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/minimart")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("UPSTREAM_URL", "http://subgraph.local/graphql")
	t.Setenv("UPSTREAM_TIMEOUT", "250ms")
	t.Setenv("UPSTREAM_MAX_RESPONSE_BYTES", "65536")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Env)
	require.Equal(t, ":9000", cfg.HTTP.Addr)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, "postgres://u:p@db:5432/minimart", cfg.DB.DSN)
	require.EqualValues(t, 4, cfg.DB.MaxConns)
	require.False(t, cfg.DB.MigrateOnStart)
	require.Equal(t, "http://subgraph.local/graphql", cfg.Upstream.URL)
	require.Equal(t, 250*time.Millisecond, cfg.Upstream.Timeout)
	require.EqualValues(t, 65536, cfg.Upstream.MaxResponseBytes)
}

func TestLoad_ConfigFileIsOverriddenByEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":7000\"\nlog_level: debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.HTTP.Addr)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")
		_, err := config.Load("")
		require.ErrorContains(t, err, "invalid config")
	})
	t.Run("upstream url", func(t *testing.T) {
		t.Setenv("UPSTREAM_URL", "not a url")
		_, err := config.Load("")
		require.Error(t, err)
	})
	t.Run("max conns", func(t *testing.T) {
		t.Setenv("DB_MAX_CONNS", "0")
		_, err := config.Load("")
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "reading config")
	})
}
