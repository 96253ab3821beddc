package domain

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Input    *string `json:"input,omitempty"`
	Mode     *Mode   `json:"mode,omitempty"`
	Result   *string `json:"result,omitempty"`
	Revision *int    `json:"revision,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.Input != newState.Input {
		diff.Input = &newState.Input
	}
	if oldState == nil || oldState.Mode != newState.Mode {
		diff.Mode = &newState.Mode
	}
	if oldState == nil || oldState.Result != newState.Result {
		diff.Result = &newState.Result
	}
	if oldState == nil || oldState.Revision != newState.Revision {
		diff.Revision = &newState.Revision
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Input == nil &&
		d.Mode == nil &&
		d.Result == nil &&
		d.Revision == nil
}

// ViewChanged reports whether the diff touches a displayed field.
// A repeated identical event only bumps the revision.
func (d *StateDiff) ViewChanged() bool {
	return d.Input != nil || d.Mode != nil || d.Result != nil
}
