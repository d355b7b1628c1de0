package commands

// ERROR REPORTING:
// Commands return domain errors untouched; this file turns them into what
// the user sees and the exit status scripts can test.
//
//	apperror.ErrValidation, ErrInvalidQuery → exit 2  "validation_error"
//	apperror.ErrNotFound                    → exit 3  "not_found"
//	apperror.ErrStorage                     → exit 4  "storage_error"
//	anything else                           → exit 1  "internal_error"
//
// errors.Is walks the whole chain, so a not-found wrapped by the service
// ("service: ...: %w") still maps to 3.

import (
	"errors"
	"io"

	"github.com/sakif/questions-db/cmd/qadb/output"
	"github.com/sakif/questions-db/internal/apperror"
)

const (
	exitInternal   = 1
	exitValidation = 2
	exitNotFound   = 3
	exitStorage    = 4
)

// ErrorResponse is the --json shape of a failed command.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

// classify returns the exit code and error kind for err.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrInvalidQuery):
		return exitValidation, "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		return exitNotFound, "not_found"
	case errors.Is(err, apperror.ErrStorage):
		return exitStorage, "storage_error"
	default:
		return exitInternal, "internal_error"
	}
}

// reportError writes err to w and returns the exit code to use.
//
// For an *apperror.AppError only its Message is shown; the "service: ..."
// prefixes are for logs, not for people. Storage errors keep their full
// text since the driver message is the useful part.
func reportError(w io.Writer, err error, asJSON bool) int {
	code, kind := classify(err)

	msg := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	p := output.New(w)
	if asJSON {
		if encErr := p.JSON(ErrorResponse{Error: kind, Message: msg}); encErr != nil {
			p.Error("%v", err)
		}
		return code
	}
	p.Error("%s", msg)
	return code
}
