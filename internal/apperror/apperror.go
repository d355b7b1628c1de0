// Package apperror defines the error kinds shared by every layer of the
// questions database.
//
// Three kinds matter to callers:
//   - ErrNotFound    : a lookup that requires a row found none
//   - ErrInvalidQuery: the caller asked for a query that cannot be built
//     (empty criteria, unknown column, insert of an already-persisted record)
//   - ErrStorage     : the database itself failed (constraint violation,
//     lost connection, bad SQL). Wrapped in *StorageError so the driver error
//     is still reachable with errors.As / errors.Is.
//
// Check kinds with errors.Is, never by comparing messages.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrInvalidQuery = errors.New("invalid query")
	ErrStorage      = errors.New("storage error")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field or column causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// NotFoundBy is NotFound for lookups keyed on something other than the id.
func NotFoundBy(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidQuery reports a query the store refuses to build. field names the
// offending column when there is one.
func InvalidQuery(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidQuery,
		Message: message,
		Field:   field,
	}
}

// StorageError wraps a failure reported by the database driver.
//
// It matches ErrStorage through Is and unwraps to the driver error, so both
//
//	errors.Is(err, apperror.ErrStorage)
//	errors.Is(err, sql.ErrConnDone)
//
// work on the same value.
type StorageError struct {
	Op    string // store operation, e.g. "users.insert"
	Query string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Storage wraps err as a *StorageError. A nil err stays nil.
func Storage(op, query string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Query: query, Err: err}
}
