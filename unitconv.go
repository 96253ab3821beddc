package unitconv

import (
	"context"
	"log/slog"

	"github.com/aretw0/unitconv/internal/logging"
	"github.com/aretw0/unitconv/pkg/adapters/memory"
	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/ports"
	"github.com/aretw0/unitconv/pkg/session"
)

// Converter is the high-level entry point for the library.
// It wires the conversion engine, embedded sessions and the hosted session Manager.
type Converter struct {
	manager *session.Manager
	store   ports.StateStore
	locker  ports.DistributedLocker
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in call order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Converter) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithStore sets where hosted sessions are persisted (default: in memory).
func WithStore(store ports.StateStore) Option {
	return func(c *Converter) {
		c.store = store
	}
}

// WithLocker enables distributed locking of hosted sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(c *Converter) {
		c.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New initializes a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.store == nil {
		c.store = memory.NewStore()
	}

	managerOpts := []session.Option{
		session.WithLogger(c.logger),
		session.WithLifecycleHooks(c.hooks),
	}
	if c.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(c.locker))
	}
	c.manager = session.NewManager(c.store, managerOpts...)

	return c
}

// Convert computes the result for raw under mode without any session.
func (c *Converter) Convert(raw string, mode domain.Mode) string {
	return conversion.Convert(raw, mode)
}

// Modes returns the supported unit pairs in menu order.
func (c *Converter) Modes() []conversion.UnitPair {
	return conversion.Pairs()
}

// NewSession starts an embedded, single-owner session carrying the Converter's hooks.
func (c *Converter) NewSession(opts ...session.SessionOption) *session.Session {
	return session.New(append([]session.SessionOption{session.WithHooks(c.hooks)}, opts...)...)
}

// Start loads a hosted session or creates it when missing.
func (c *Converter) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	return c.manager.LoadOrStart(ctx, sessionID)
}

// InputChanged forwards new input to a hosted session.
func (c *Converter) InputChanged(ctx context.Context, sessionID, text string) (*domain.State, error) {
	return c.manager.InputChanged(ctx, sessionID, text)
}

// ModeSelected forwards a mode selection to a hosted session.
func (c *Converter) ModeSelected(ctx context.Context, sessionID string, mode domain.Mode) (*domain.State, error) {
	return c.manager.ModeSelected(ctx, sessionID, mode)
}

// State returns the current snapshot of a hosted session.
func (c *Converter) State(ctx context.Context, sessionID string) (*domain.State, error) {
	return c.manager.Load(ctx, sessionID)
}

// Manager returns the underlying session Manager.
func (c *Converter) Manager() *session.Manager {
	return c.manager
}

// Store returns the underlying state store.
func (c *Converter) Store() ports.StateStore {
	return c.store
}
