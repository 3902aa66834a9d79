package models

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Input validation errors. They are always returned before any call to the collaborator service.
var (
	ErrInvalidInput      = errors.Wrap(BadParameterError, "invalid input")
	ErrInvalidAssignment = errors.Wrap(BadParameterError, "invalid assignment")
	ErrUnresolvedActor   = errors.Wrap(UnAuthorizedError, "no actor identity resolved for this action")
)

// Collaborator service errors
var (
	// ErrFetchFailed marks a failed read of the inbox workspace. Readers recover from it by
	// serving the last known (or default) aggregate.
	ErrFetchFailed = errors.New("inbox workspace fetch failed")

	// ErrWriteFailed marks a mutation rejected by the collaborator service. The message of the
	// underlying error is the one returned by the collaborator, untouched.
	ErrWriteFailed = errors.New("write failed")

	// ErrCancelled marks an operation aborted by the caller's context.
	ErrCancelled = errors.New("cancelled")
)

// InvalidInput returns a validation error on a single field.
func InvalidInput(field, reason string) error {
	return errors.Wrapf(ErrInvalidInput, "%s %s", field, reason)
}

// IsCancellation reports whether err was caused by a cancelled or expired context.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

type FieldValidationError map[string]string

func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%v", map[string]string(e))
}
