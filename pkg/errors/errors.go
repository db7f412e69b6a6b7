// Package errors gives contentstack failures a machine-readable [Code].
//
// Codes fall into three classes. Validation codes describe bad input (a
// malformed snapshot, an unknown event, a banner size the engine cannot
// place); the HTTP API answers them with 400. Not-found codes answer 404.
// Everything else is internal.
//
// Missing feed or spoc data is never an error: the layout resolver renders
// placeholders for it instead.
//
//	err := errors.New(errors.ErrCodeUnsupportedAdType, "unsupported ad type %q", t)
//	errors.Is(err, errors.ErrCodeUnsupportedAdType) // true
//	errors.IsValidation(err)                       // true
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidLayout     Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidEvent      Code = "INVALID_EVENT"
	ErrCodeUnsupportedAdType Code = "UNSUPPORTED_AD_TYPE"

	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeSnapshotNotFound Code = "SNAPSHOT_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

type class int

const (
	classInternal class = iota
	classValidation
	classNotFound
)

var classes = map[Code]class{
	ErrCodeInvalidInput:      classValidation,
	ErrCodeInvalidLayout:     classValidation,
	ErrCodeInvalidFormat:     classValidation,
	ErrCodeInvalidPath:       classValidation,
	ErrCodeInvalidEvent:      classValidation,
	ErrCodeUnsupportedAdType: classValidation,
	ErrCodeNotFound:          classNotFound,
	ErrCodeSnapshotNotFound:  classNotFound,
}

// Error carries a code, a message for humans and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is/As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// UserMessage returns the message without the code prefix for an *Error, and
// err.Error() for anything else.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err was caused by bad input.
func IsValidation(err error) bool { return classOf(err) == classValidation }

// IsNotFound reports whether err names something that does not exist.
func IsNotFound(err error) bool { return classOf(err) == classNotFound }

func classOf(err error) class {
	code := GetCode(err)
	if code == "" {
		return classInternal
	}
	return classes[code]
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
