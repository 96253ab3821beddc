package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/unitconv/internal/logging"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed session lock is held if the holder dies.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	hooks   domain.LifecycleHooks
	now     func() time.Time
	logger  *slog.Logger // Logger for internal events (like deferred errors)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks (default DefaultLockTTL).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers hooks passed to every session the Manager drives.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithTimeSource overrides the clock used for session timestamps.
func WithTimeSource(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		now:     time.Now,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// LoadOrStart tries to load a session. If not found, it initializes a new one
// with empty input in the default mode and persists it immediately.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.loadOrInit(ctx, sessionID)
		return err
	})
	return state, err
}

// loadOrInit must be called with the session lock held.
func (m *Manager) loadOrInit(ctx context.Context, sessionID string) (*domain.State, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	s := New(WithID(sessionID), WithClock(m.now))
	snapshot := s.CurrentState()

	// Persist immediately to reserve the ID
	if err := m.store.Save(ctx, sessionID, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.logger.Debug("Session started", "session_id", sessionID)
	return &snapshot, nil
}

// InputChanged forwards new input text to a stored session.
func (m *Manager) InputChanged(ctx context.Context, sessionID, text string) (*domain.State, error) {
	_, next, err := m.Update(ctx, sessionID, InputChanged(text))
	return next, err
}

// ModeSelected forwards a mode selection to a stored session.
func (m *Manager) ModeSelected(ctx context.Context, sessionID string, mode domain.Mode) (*domain.State, error) {
	_, next, err := m.Update(ctx, sessionID, ModeSelected(mode))
	return next, err
}

// Update runs Load -> Restore -> Apply -> Save under the session lock and
// returns the states before and after the change.
func (m *Manager) Update(ctx context.Context, sessionID string, c Change) (before, after *domain.State, err error) {
	return m.update(ctx, sessionID, c, false)
}

// StartOrUpdate is Update for sessions that may not exist yet.
// Starting and applying the change happen under a single lock.
func (m *Manager) StartOrUpdate(ctx context.Context, sessionID string, c Change) (before, after *domain.State, err error) {
	return m.update(ctx, sessionID, c, true)
}

func (m *Manager) update(ctx context.Context, sessionID string, c Change, start bool) (before, after *domain.State, err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var stored *domain.State
		var err error
		if start {
			stored, err = m.loadOrInit(ctx, sessionID)
		} else {
			stored, err = m.store.Load(ctx, sessionID)
		}
		if err != nil {
			return err
		}

		s := Restore(*stored, WithID(sessionID), WithHooks(m.hooks), WithClock(m.now))
		next := s.Apply(ctx, c)

		if err := m.store.Save(ctx, sessionID, &next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.logger.Debug("Session updated", "session_id", sessionID, "event", c.Type, "revision", next.Revision)
		before, after = stored, &next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, state *domain.State) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}

	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
