package domain

const (
	// ResultInvalid is the result produced for a Mode outside the declared set.
	ResultInvalid = "Invalid"

	// DefaultSessionID is used by hosts when no session ID is provided.
	DefaultSessionID = "default"
)
