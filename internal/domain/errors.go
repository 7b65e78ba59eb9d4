package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the store, the use cases and the API layer.
// Callers classify with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")

	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	ErrDuplicateUsername  = fmt.Errorf("%w: username already exists", ErrConflict)
)
