package domain

import "time"

// State represents the current snapshot of a converter session.
type State struct {
	// SessionID identifies the session when hosted by a Manager. Empty for embedded sessions.
	SessionID string `json:"session_id,omitempty"`

	// Input is the raw text entered by the user. It may be empty or non-numeric.
	Input string `json:"input"`

	// Mode is the selected conversion.
	Mode Mode `json:"mode"`

	// Result is the formatted conversion of Input under Mode.
	Result string `json:"result"`

	// Revision counts the events applied since the session started.
	Revision int `json:"revision"`

	// UpdatedAt is the time of the last applied event.
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// SameView reports whether two states display the same thing,
// ignoring bookkeeping fields (Revision, UpdatedAt, SessionID).
func (s State) SameView(other State) bool {
	return s.Input == other.Input && s.Mode == other.Mode && s.Result == other.Result
}
