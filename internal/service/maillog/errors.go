package maillog

import "errors"

// Sentinel errors for the mail log service layer.
var (
	ErrNotFound          = errors.New("log entry not found")
	ErrInvalidStatus     = errors.New("unknown log status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
