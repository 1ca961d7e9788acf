package models

import "errors"

// Cross-cutting domain errors shared by more than one service
var (
	// ErrInvalidStatus indicates an unknown project status string
	ErrInvalidStatus = errors.New("invalid project status")
)
