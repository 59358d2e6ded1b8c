package model

import "errors"

var (
	// ErrUnauthenticated means no usable identity was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrBlocked means the identity is on the block list.
	ErrBlocked = errors.New("blocked")
	// ErrNotAllowed means the identity is neither allow-listed nor admin.
	ErrNotAllowed = errors.New("not allowed")
	// ErrForbidden means the caller is not an administrator.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned by stores when the entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the entity is not in a state that permits the operation.
	ErrConflict = errors.New("conflict")
	// ErrValidation wraps malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrUpstream wraps failures of stores and external collaborators.
	ErrUpstream = errors.New("upstream failure")
)
