package templates

import "errors"

// Sentinel errors for the template service layer.
var (
	ErrNotFound        = errors.New("template not found")
	ErrMissingName     = errors.New("template name is required")
	ErrMissingSubject  = errors.New("template subject is required")
	ErrMissingBody     = errors.New("template body is required")
	ErrInvalidCategory = errors.New("invalid template category")
)
