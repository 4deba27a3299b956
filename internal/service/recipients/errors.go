package recipients

import "errors"

// Sentinel errors for the recipient service layer.
var (
	ErrNotFound       = errors.New("recipient not found")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrDuplicateEmail = errors.New("email already exists in recipients")
)
