package fru

import (
	"errors"

	"github.com/liumorgan/openipmi/internal/core"
)

// ErrorKind classifies the errors this package can return.
type ErrorKind = core.ErrorKind

// Error is the error type returned by every exported operation in this
// package. Use errors.As to recover one and inspect its Kind.
type Error = core.Error

const (
	BadFormat   = core.BadFormat
	NotPresent  = core.NotPresent
	Exists      = core.Exists
	NoSpace     = core.NoSpace
	InvalidArg  = core.InvalidArg
	ReadOnly    = core.ReadOnly
	OutOfMemory = core.OutOfMemory
)

// KindOf extracts the ErrorKind from err, if it (or something it wraps)
// is an *Error. It returns false if no such error is found.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
