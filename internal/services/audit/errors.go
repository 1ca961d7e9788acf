package audit

import "errors"

// Audit-related errors
var (
	ErrInvalidTaskID = errors.New("invalid task ID")
	ErrMissingKind   = errors.New("audit entry kind is required")
)
