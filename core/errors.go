package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wansing/patriam/auth"
)

// ErrNotFound is returned by the database interfaces if a row does not exist.
// It is also returned for articles which the principal can't read.
var ErrNotFound = errors.New("not found")

// A ValidationError reports a required field which is missing or empty after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// An AdapterError wraps an unexpected failure of the database. It is never retried.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// adapterError passes ErrNotFound and nil through and wraps everything else.
func adapterError(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var ae *AdapterError
	if errors.As(err, &ae) {
		return err
	}
	return &AdapterError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsAdapter(err error) bool {
	var ae *AdapterError
	return errors.As(err, &ae)
}

// StatusCode maps an error kind to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidState), errors.Is(err, ErrAdminExists), errors.Is(err, ErrUserExists):
		return http.StatusConflict
	case IsValidation(err), errors.Is(err, ErrDeleteSelf), errors.Is(err, ErrEmptyPassword), errors.Is(err, ErrWrongPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
