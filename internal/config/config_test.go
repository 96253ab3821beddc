package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/unitconv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unitconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, time.Duration(0), cfg.Store.Redis.TTL)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
log_level: debug
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 10m
    lock: true
http:
  port: 9090
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Store.Redis.TTL)
	assert.True(t, cfg.Store.Redis.Lock)
	assert.Equal(t, "unitconv:session:", cfg.Store.Redis.Prefix, "untouched nested defaults survive")
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "http:\n  port: 9090\n")
	t.Setenv("UNITCONV_HTTP_PORT", "7070")
	t.Setenv("UNITCONV_STORE_BACKEND", "memory")
	t.Setenv("UNITCONV_STORE_DIR", "/tmp/sessions")
	t.Setenv("UNITCONV_REDIS_DB", "3")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "/tmp/sessions", cfg.Store.Dir)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "store: [unclosed"},
		{"unknown backend", "store:\n  backend: etcd\n"},
		{"unknown key", "colour: blue\n"},
		{"bad duration", "http:\n  shutdown_timeout: soon\n"},
		{"port out of range", "http:\n  port: 70000\n"},
		{"bad log format", "log_format: xml\n"},
		{"key and passphrase", "store:\n  encryption_key: abc\n  encryption_passphrase: def\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
