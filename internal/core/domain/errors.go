package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrGSTINTaken         = errors.New("gstin already onboarded by this broker")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("insufficient privileges")
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Param   string `json:"param"`
	Message string `json:"msg"`
}

// ValidationError aggregates per-field validation failures so handlers can
// surface every broken rule in one response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError from param/message pairs.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
