package domain

import "fmt"

const maxSessionIDLength = 128

// ValidateSessionID rejects IDs that cannot be used as storage keys or file names.
// Allowed characters are ASCII letters, digits, '.', '_' and '-'.
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSessionID)
	}
	if len(id) > maxSessionIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidSessionID, maxSessionIDLength)
	}
	if id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: illegal character %q", ErrInvalidSessionID, r)
		}
	}
	return nil
}
