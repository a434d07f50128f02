package api

import (
	"context"
	"errors"

	"github.com/valyala/fasthttp"
)

// Result is the envelope every upstream call resolves to. Exactly one of
// Data (Success) or Error (!Success) is set.
type Result[T any] struct {
	Success bool
	Status  int
	Error   *Error
	Data    *T
}

type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (r Result[T]) Unauthorized() bool {
	return !r.Success && r.Status == fasthttp.StatusUnauthorized
}

func (r Result[T]) Cancelled() bool {
	if r.Success || r.Error == nil {
		return false
	}
	return errors.Is(r.Error, context.Canceled) || errors.Is(r.Error, context.DeadlineExceeded)
}

func succeeded[T any](status int, data *T) Result[T] {
	return Result[T]{Success: true, Status: status, Data: data}
}

func failed[T any](status int, message string, cause error) Result[T] {
	return Result[T]{
		Status: status,
		Error:  &Error{Message: message, Cause: cause},
	}
}
