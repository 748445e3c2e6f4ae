package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler layer free of per-type
// switch statements for every new error kind.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError
type (
	// NotFoundError indicates a resource does not exist, or exists but is
	// not visible to the principal. The two cases are deliberately
	// indistinguishable to callers so that private documents do not leak
	// their existence.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates malformed input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates no valid principal could be resolved
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates the principal lacks the required role
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Conflict codes carried by ConflictError. The UI branches on these, so they
// are part of the contract, not just display text.
const (
	ConflictCodeDuplicate     = "DUPLICATE"
	ConflictCodeCategoryInUse = "CATEGORY_IN_USE"
	ConflictCodeClientInUse   = "CLIENT_IN_USE"
)

// ConflictError represents a resource conflict with a machine-readable code
// identifying the specific conflict kind.
type ConflictError struct {
	Message      string // Human-readable error message
	Code         string // Machine-readable conflict code (e.g. CLIENT_IN_USE)
	ResourceType string // Type of resource (document, category, client)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
