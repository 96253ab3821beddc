package session

import (
	"context"
	"time"

	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
)

// Session owns the state of one converter screen.
type Session struct {
	state domain.State
	hooks domain.LifecycleHooks
	now   func() time.Time

	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(domain.State)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithID tags the session snapshots with an identifier.
func WithID(id string) SessionOption {
	return func(s *Session) {
		s.state.SessionID = id
	}
}

// WithHooks registers lifecycle hooks fired on every event.
func WithHooks(hooks domain.LifecycleHooks) SessionOption {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a session with empty input in the default mode.
func New(opts ...SessionOption) *Session {
	s := &Session{
		state: domain.State{Mode: domain.DefaultMode},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Result = conversion.Convert(s.state.Input, s.state.Mode)
	s.state.UpdatedAt = s.now()
	return s
}

// Restore rebuilds a session from a persisted snapshot.
// The result is recomputed so a stale or tampered snapshot cannot break the invariant.
func Restore(snapshot domain.State, opts ...SessionOption) *Session {
	s := New(opts...)
	id := s.state.SessionID
	s.state = snapshot
	if s.state.SessionID == "" {
		s.state.SessionID = id
	}
	if s.state.Mode == "" {
		s.state.Mode = domain.DefaultMode
	}
	s.state.Result = conversion.Convert(s.state.Input, s.state.Mode)
	return s
}

// OnInputChanged replaces the raw input and refreshes the result.
func (s *Session) OnInputChanged(text string) {
	s.Apply(context.Background(), InputChanged(text))
}

// OnModeSelected switches the mode and refreshes the result against the current input.
func (s *Session) OnModeSelected(mode domain.Mode) {
	s.Apply(context.Background(), ModeSelected(mode))
}

// CurrentState returns a snapshot of the session.
func (s *Session) CurrentState() domain.State {
	return s.state
}

// Apply runs a single change to completion and returns the new snapshot.
// Hooks receive ctx; subscribers are notified after hooks.
func (s *Session) Apply(ctx context.Context, c Change) domain.State {
	prev := s.state
	switch c.Type {
	case domain.EventInputChanged:
		s.state.Input = c.Input
	case domain.EventModeSelected:
		s.state.Mode = c.Mode
	default:
		return s.state
	}

	if hook := s.hookFor(c.Type); hook != nil {
		hook(ctx, s.event(c.Type, 0))
	}

	start := time.Now()
	s.state.Result = conversion.Convert(s.state.Input, s.state.Mode)
	elapsed := time.Since(start)

	// Repeating an event leaves the snapshot untouched.
	if !s.state.SameView(prev) {
		s.state.Revision++
		s.state.UpdatedAt = s.now()
	}

	if s.hooks.OnConverted != nil {
		s.hooks.OnConverted(ctx, s.event(domain.EventConverted, elapsed))
	}

	snapshot := s.state
	// Subscribers may cancel themselves while being notified.
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(snapshot)
	}
	return snapshot
}

// Subscribe registers fn to receive the snapshot after every event.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(domain.State)) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) hookFor(t domain.EventType) func(context.Context, *domain.Event) {
	switch t {
	case domain.EventInputChanged:
		return s.hooks.OnInputChanged
	case domain.EventModeSelected:
		return s.hooks.OnModeSelected
	}
	return nil
}

func (s *Session) event(t domain.EventType, d time.Duration) *domain.Event {
	e := &domain.Event{
		Timestamp: s.now(),
		Type:      t,
		SessionID: s.state.SessionID,
		Input:     s.state.Input,
		Mode:      s.state.Mode,
		Duration:  d,
	}
	if t == domain.EventConverted {
		e.Result = s.state.Result
	}
	return e
}
