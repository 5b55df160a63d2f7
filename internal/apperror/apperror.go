// Package apperror defines the application's error taxonomy.
//
// Services return these errors; handlers translate them into HTTP
// behaviour (re-render, redirect, notice) with errors.Is / errors.As.
// No error in this package is ever fatal to the process.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError wraps a sentinel with a human-readable message and, for
// validation failures, the field that caused it.
type AppError struct {
	Err     error  // sentinel (ErrNotFound, ErrValidation, ...)
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, detail string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict: %s", resource, detail),
	}
}

// Unauthorized returns an AppError indicating the action requires an
// established session. Handlers map this to a login redirect, not a
// raw error page.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// ValidationErrors collects per-field validation messages for a whole
// form submission. It satisfies the error interface and unwraps to
// ErrValidation, so errors.Is(err, ErrValidation) works on it.
//
// The zero-length map is ready to use:
//
//	ve := apperror.ValidationErrors{}
//	ve.Add("email", "enter a valid email address")
//	if len(ve) > 0 { return ve }
type ValidationErrors map[string][]string

func (ve ValidationErrors) Add(field, message string) {
	ve[field] = append(ve[field], message)
}

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation error"
	}
	fields := make([]string, 0, len(ve))
	for f := range ve {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(ve[f], "; ")))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (ve ValidationErrors) Unwrap() error {
	return ErrValidation
}
