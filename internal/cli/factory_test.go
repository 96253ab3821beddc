package cli

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/unitconv/internal/config"
	"github.com/aretw0/unitconv/internal/logging"
	"github.com/aretw0/unitconv/pkg/adapters/file"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_Memory(t *testing.T) {
	cfg := config.Default().Store
	cfg.Backend = config.BackendMemory

	b, err := OpenBackend(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer b.Close()

	assert.Nil(t, b.Locker)
	ports.RunStateStoreContract(t, b.Store)
}

func TestOpenBackend_File(t *testing.T) {
	cfg := config.Default().Store
	cfg.Backend = config.BackendFile
	cfg.Dir = t.TempDir()

	b, err := OpenBackend(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	c := NewConverter(b, logging.NewNop())
	ctx := context.Background()
	_, err = c.Start(ctx, "f")
	require.NoError(t, err)

	state, err := file.New(cfg.Dir).Load(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, "0.0 Meters", state.Result)
}

func TestOpenBackend_RedisWithLock(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default().Store
	cfg.Backend = config.BackendRedis
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Lock = true
	cfg.Redis.TTL = time.Hour

	b, err := OpenBackend(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer b.Close()
	require.NotNil(t, b.Locker)

	var converted []string
	hooks := domain.LifecycleHooks{
		OnConverted: func(_ context.Context, e *domain.Event) { converted = append(converted, e.Result) },
	}
	c := NewConverter(b, logging.NewNop(), hooks)

	ctx := context.Background()
	_, err = c.Start(ctx, "r")
	require.NoError(t, err)
	state, err := c.InputChanged(ctx, "r", "1")
	require.NoError(t, err)

	assert.Equal(t, "1000.0 Meters", state.Result)
	assert.Equal(t, []string{"1000.0 Meters"}, converted)
	assert.True(t, mr.Exists(cfg.Redis.Prefix+"r"))
	assert.False(t, mr.Exists(cfg.Redis.Prefix+"lock:r"), "lock released")
}

func TestOpenBackend_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default().Store
	cfg.Backend = config.BackendRedis
	cfg.Redis.Addr = addr

	_, err := OpenBackend(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "redis unreachable")
}

func TestOpenBackend_Encrypted(t *testing.T) {
	dir := t.TempDir()
	key := hex.EncodeToString([]byte(strings.Repeat("k", 32)))

	tests := []struct {
		name string
		cfg  func(*config.StoreConfig)
	}{
		{"hex key", func(c *config.StoreConfig) { c.EncryptionKey = key }},
		{"passphrase", func(c *config.StoreConfig) { c.Passphrase = "open sesame" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Store
			cfg.Backend = config.BackendFile
			cfg.Dir = dir
			tt.cfg(&cfg)

			b, err := OpenBackend(context.Background(), cfg, logging.NewNop())
			require.NoError(t, err)

			ctx := context.Background()
			c := NewConverter(b, logging.NewNop())
			_, err = c.Start(ctx, tt.name[:3])
			require.NoError(t, err)
			_, err = c.InputChanged(ctx, tt.name[:3], "42")
			require.NoError(t, err)

			raw, err := file.New(dir).Load(ctx, tt.name[:3])
			require.NoError(t, err)
			assert.NotEqual(t, "42", raw.Input, "stored input is encrypted")

			state, err := c.State(ctx, tt.name[:3])
			require.NoError(t, err)
			assert.Equal(t, "42", state.Input)
			assert.Equal(t, "42000.0 Meters", state.Result)
		})
	}
}

func TestOpenBackend_BadKey(t *testing.T) {
	cfg := config.Default().Store
	cfg.Backend = config.BackendMemory
	cfg.EncryptionKey = "short"

	_, err := OpenBackend(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}
