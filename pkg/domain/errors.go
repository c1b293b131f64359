package domain

import "errors"

// Common domain errors. Package specific errors wrap one of these kinds with %w so
// transports can map them without knowing every concrete error.
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrConflict is returned when an operation clashes with the current state
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrPersistence is returned when the storage layer fails
	ErrPersistence = errors.New("persistence error")
)

// IsConflict reports whether err is a conflict, including duplicate records.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrAlreadyExists)
}
