package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInputChanged EventType = "input_changed"
	EventModeSelected EventType = "mode_selected"
	EventConverted    EventType = "converted"
)

// Event describes a single change applied to a session.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
	Input     string    `json:"input"`
	Mode      Mode      `json:"mode"`
	Result    string    `json:"result,omitempty"`
	// Duration is only set on EventConverted.
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for session observability.
type LifecycleHooks struct {
	OnInputChanged func(context.Context, *Event)
	OnModeSelected func(context.Context, *Event)
	OnConverted    func(context.Context, *Event)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnInputChanged: chain(h.OnInputChanged, other.OnInputChanged),
		OnModeSelected: chain(h.OnModeSelected, other.OnModeSelected),
		OnConverted:    chain(h.OnConverted, other.OnConverted),
	}
}

func chain(a, b func(context.Context, *Event)) func(context.Context, *Event) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *Event) {
		a(ctx, e)
		b(ctx, e)
	}
}
