package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/unitconv"
	"github.com/aretw0/unitconv/internal/config"
	"github.com/aretw0/unitconv/pkg/adapters/file"
	"github.com/aretw0/unitconv/pkg/adapters/memory"
	"github.com/aretw0/unitconv/pkg/adapters/redis"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/persistence/middleware"
	"github.com/aretw0/unitconv/pkg/ports"
)

// Backend is the persistence selected by configuration.
type Backend struct {
	Store  ports.StateStore
	Locker ports.DistributedLocker // nil unless redis locking is enabled
	Close  func() error
}

// OpenBackend builds the state store described by cfg, wrapped with encryption when a key is set.
func OpenBackend(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Backend, error) {
	b := &Backend{Close: func() error { return nil }}

	switch cfg.Backend {
	case config.BackendMemory:
		b.Store = memory.NewStore()
	case config.BackendFile:
		b.Store = file.New(cfg.Dir)
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		b.Store = store
		b.Close = store.Close
		if cfg.Redis.Lock {
			b.Locker = redis.NewLocker(store.Client(), cfg.Redis.Prefix+"lock:")
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	key, err := encryptionKey(cfg)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if key != nil {
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Store = middleware.Chain(b.Store, mw)
	}

	logger.Debug("Store opened", "backend", cfg.Backend, "encrypted", key != nil, "locking", b.Locker != nil)
	return b, nil
}

func encryptionKey(cfg config.StoreConfig) ([]byte, error) {
	switch {
	case cfg.EncryptionKey != "":
		return middleware.ParseKey(cfg.EncryptionKey)
	case cfg.Passphrase != "":
		return middleware.DeriveKey(cfg.Passphrase, nil)
	default:
		return nil, nil
	}
}

// NewConverter wires a Converter over the backend.
func NewConverter(b *Backend, logger *slog.Logger, hooks ...domain.LifecycleHooks) *unitconv.Converter {
	opts := []unitconv.Option{
		unitconv.WithStore(b.Store),
		unitconv.WithLogger(logger),
	}
	if b.Locker != nil {
		opts = append(opts, unitconv.WithLocker(b.Locker))
	}
	for _, h := range hooks {
		opts = append(opts, unitconv.WithLifecycleHooks(h))
	}
	return unitconv.New(opts...)
}
