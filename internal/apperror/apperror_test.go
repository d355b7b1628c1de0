package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("question", 7),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "NotFoundBy wraps ErrNotFound",
			err:       NotFoundBy("user", "Ada Lovelace"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "InvalidQuery wraps ErrInvalidQuery",
			err:       InvalidQuery("", "criteria must not be empty"),
			target:    ErrInvalidQuery,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("driver", "unknown driver"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "StorageError matches ErrStorage",
			err:       Storage("users.insert", "INSERT ...", errors.New("disk I/O error")),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrStorage",
			err:       NotFound("reply", 1),
			target:    ErrStorage,
			wantMatch: false,
		},
		{
			name:      "InvalidQuery does NOT match ErrNotFound",
			err:       InvalidQuery("colour", "unknown column"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("question", 42),
			wantMessage: "question not found with id 42",
		},
		{
			name:        "NotFoundBy message includes key",
			err:         NotFoundBy("user", "Ada Lovelace"),
			wantMessage: "user not found: Ada Lovelace",
		},
		{
			name:        "InvalidQuery uses custom message",
			err:         InvalidQuery("", "criteria must not be empty"),
			wantMessage: "criteria must not be empty",
		},
		{
			name:        "StorageError includes op and cause",
			err:         Storage("replies.update", "UPDATE ...", errors.New("database is locked")),
			wantMessage: "storage: replies.update: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("user", 3)
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestStorageKeepsDriverError(t *testing.T) {
	// The driver error must survive wrapping, including an extra fmt.Errorf layer.
	err := fmt.Errorf("sqlstore: listing users: %w", Storage("users.all", "SELECT ...", sql.ErrConnDone))

	if !errors.Is(err, ErrStorage) {
		t.Errorf("errors.Is(err, ErrStorage) = false, want true")
	}
	if !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("errors.Is(err, sql.ErrConnDone) = false, want true")
	}

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatal("errors.As(err, *StorageError) = false, want true")
	}
	if se.Op != "users.all" {
		t.Errorf("Op = %q, want %q", se.Op, "users.all")
	}
}

func TestStorageNil(t *testing.T) {
	if err := Storage("users.all", "SELECT ...", nil); err != nil {
		t.Errorf("Storage(nil) = %v, want nil", err)
	}
}

func TestInvalidQueryField(t *testing.T) {
	err := InvalidQuery("colour", "unknown column colour")

	if err.Field != "colour" {
		t.Errorf("Field = %q, want %q", err.Field, "colour")
	}
}
