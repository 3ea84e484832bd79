package common

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeInvalidState Code = "invalid_state"
	CodeConflict     Code = "conflict"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal"
)

// Error is the error type surfaced by services and repositories. Handlers turn it into an
// HTTP response through the response package.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	e := &Error{Code: code, Message: message, Err: err}
	if code == CodeInternal {
		e.Stack = captureStack(message, err)
	}
	return e
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func captureStack(message string, err error) []byte {
	if err == nil {
		return goerrors.New(message).Stack()
	}
	var stackErr *goerrors.Error
	if errors.As(err, &stackErr) {
		return stackErr.Stack()
	}
	return goerrors.Wrap(err, 2).Stack()
}

// Is reports whether err is an *Error carrying the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
