package session

import "github.com/aretw0/unitconv/pkg/domain"

// Change is an event forwarded by a front-end.
type Change struct {
	Type  domain.EventType
	Input string
	Mode  domain.Mode
}

// InputChanged builds the change for new input text.
func InputChanged(text string) Change {
	return Change{Type: domain.EventInputChanged, Input: text}
}

// ModeSelected builds the change for a mode selection.
func ModeSelected(mode domain.Mode) Change {
	return Change{Type: domain.EventModeSelected, Mode: mode}
}
