// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type every service returns to the HTTP layer.

An [AppError] carries a machine-readable code, a message safe to show to
editors, the HTTP status and, for validation failures, per-field details.
Any other error reaching respond.Error is rendered as INTERNAL_ERROR.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Machine-readable codes shared by several packages.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError is a client-facing error. Cause is logged but never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// # Constructors

// New creates an [AppError] with an explicit code and status.
//
//	apperr.New("LAST_ROW", "A table must keep at least one row", http.StatusConflict)
func New(code, msg string, status int) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// NotFound returns a 404 whose message is "<resource> not found".
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// Conflict returns a 409, used for slug collisions and unique violations.
func Conflict(msg string) *AppError {
	return New(CodeConflict, msg, http.StatusConflict)
}

// ValidationError returns a 400 listing the failed fields.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := New(CodeValidation, msg, http.StatusBadRequest)
	err.Details = details
	return err
}

// Unprocessable returns a 422 for well-formed input that breaks a structural rule.
func Unprocessable(msg string) *AppError {
	return New(CodeUnprocessable, msg, http.StatusUnprocessableEntity)
}

// Internal returns a generic 500 that keeps cause for logging.
func Internal(cause error) *AppError {
	err := New(CodeInternal, "An unexpected error occurred", http.StatusInternalServerError)
	err.Cause = cause
	return err
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var target *AppError
	if errors.As(err, &target) {
		return target
	}
	return nil
}

// IsAppError reports whether err's chain contains an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}
