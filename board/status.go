package board

import (
	"github.com/aojudge/standings"
)

var (
	ErrNoUpdates       = standings.ErrNoUpdates
	ErrMissingRequired = standings.ErrMissingRequired

	ErrNotFound     = standings.ErrNotFound
	ErrUnknownError = standings.ErrUnknownError
)

type StatusError = standings.StatusError

// Reimplement Statusf and WrapError functions here for faster reference

func Statusf(status int, format string, args ...any) *StatusError {
	return standings.Statusf(status, format, args...)
}

func WrapError(err error, text string) *StatusError {
	return standings.WrapError(err, text)
}
