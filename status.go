package standings

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

var (
	ErrNoUpdates       = Statusf(400, "No updates specified")
	ErrMissingRequired = Statusf(400, "Missing required fields")

	ErrNotFound     = Statusf(404, "Not found")
	ErrUnknownError = Statusf(500, "Unknown error occurred")

	ErrFeatureDisabled = Statusf(400, "Feature disabled by administrator")
)

var _ error = &StatusError{}

type StatusError struct {
	Code int
	Text string

	WrappedError error
}

func (s *StatusError) LogValue() slog.Value {
	if s == nil {
		return slog.Value{}
	}
	return slog.StringValue(s.Error())
}

func (s *StatusError) Error() string {
	if s.WrappedError != nil {
		return fmt.Sprintf("%s: %s", s.Text, s.WrappedError.Error())
	}
	return s.Text
}

func (s *StatusError) Unwrap() error {
	return s.WrappedError
}

func (s *StatusError) Is(target error) bool {
	if err, ok := target.(*StatusError); ok {
		return err.Text == s.Text
	}
	return false
}

func (s *StatusError) WriteError(w http.ResponseWriter) {
	StatusData(w, "error", s.Text, s.Code)
}

func Statusf(status int, format string, args ...any) *StatusError {
	return &StatusError{Code: status, Text: fmt.Sprintf(format, args...)}
}

// WrapError attaches a user-facing message to an internal error,
// keeping the original around for logs and errors.Is checks.
func WrapError(err error, text string) *StatusError {
	code := 500
	var sErr *StatusError
	if errors.As(err, &sErr) {
		code = sErr.Code
	}
	return &StatusError{Code: code, Text: text, WrappedError: err}
}
