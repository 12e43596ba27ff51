package services

import "errors"

// Sentinel errors for every semantic failure the services can produce. Callers
// match with errors.Is; the wrapped message carries the offending id.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("a user with this email already exists")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUserAlreadyInactive = errors.New("user is already inactive")

	ErrTaskNotFound            = errors.New("task not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrTaskCannotBeCompleted   = errors.New("task cannot be completed")

	ErrSubtaskNotFound = errors.New("subtask not found")
)
