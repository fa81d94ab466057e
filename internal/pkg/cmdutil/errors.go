package cmdutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/alfurqan/aidctl/internal/pkg/apiclient"
	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"github.com/alfurqan/aidctl/internal/pkg/importer"
	"github.com/alfurqan/aidctl/internal/pkg/session"
	"github.com/alfurqan/aidctl/internal/pkg/sheet"
	"github.com/alfurqan/aidctl/internal/pkg/validation"
)

// Exit codes for CLI commands
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitConnectionError = 2
	ExitValidationError = 3
	ExitNotFoundError   = 4
	ExitAuthError       = 5
)

// UsageError is a bad flag, argument or record detected before any change
// is made. Err optionally carries the underlying cause.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Usagef formats a UsageError
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// exit is replaced in tests
var exit = os.Exit

// ExitCodeFor maps an error onto a process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		usageErr   *UsageError
		fieldErr   *validation.Error
		fieldErrs  validation.Errors
		parseErr   *filters.ParseError
		missingErr *importer.MissingColumnsError
		apiErr     *apiclient.APIError
		netErr     net.Error
	)
	switch {
	case errors.As(err, &usageErr),
		errors.As(err, &fieldErr),
		errors.As(err, &fieldErrs),
		errors.As(err, &parseErr),
		errors.As(err, &missingErr),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, sheet.ErrUnsupportedFormat),
		errors.Is(err, filters.ErrUnknownField),
		errors.Is(err, filters.ErrKindMismatch):
		return ExitValidationError

	case errors.Is(err, apiclient.ErrUnauthorized),
		errors.Is(err, session.ErrNotLoggedIn),
		errors.Is(err, session.ErrExpired):
		return ExitAuthError

	case errors.Is(err, apiclient.ErrNotFound):
		return ExitNotFoundError
	}

	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusBadRequest,
			apiErr.Status == http.StatusConflict,
			apiErr.Status == http.StatusUnprocessableEntity:
			return ExitValidationError
		case apiErr.Status >= 500:
			return ExitConnectionError
		}
		return ExitGeneralError
	}

	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ExitConnectionError
	}
	return ExitGeneralError
}

// WriteError writes err to w as a single JSON line
func WriteError(w io.Writer, err error, exitCode int) {
	resp := ErrorResponse{
		Error: err.Error(),
		Code:  mapExitCodeToString(exitCode),
	}
	data, _ := json.Marshal(resp)
	fmt.Fprintln(w, string(data))
}

// OutputError writes an error response to stderr in JSON format and exits
func OutputError(err error, exitCode int) {
	WriteError(os.Stderr, err, exitCode)
	exit(exitCode)
}

// Fail reports err with the exit code ExitCodeFor picks
func Fail(err error) {
	OutputError(err, ExitCodeFor(err))
}

func mapExitCodeToString(code int) string {
	switch code {
	case ExitSuccess:
		return "OK"
	case ExitConnectionError:
		return "UNAVAILABLE"
	case ExitValidationError:
		return "INVALID_ARGUMENT"
	case ExitNotFoundError:
		return "NOT_FOUND"
	case ExitAuthError:
		return "UNAUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}
