// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level input errors in services.

A [Validator] runs every rule and reports all failures at once, so the editor
sees each bad field in a single round trip:

	validator := &validate.Validator{}
	validator.Required("title", entry.Title).MaxLen("title", entry.Title, 200)
	if err := validator.Err(); err != nil {
	    return nil, err
	}
*/
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/pkg/slug"
)

const failedMessage = "Validation failed"

// ErrInvalidJSON is returned for request bodies that do not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates [apperr.FieldError] values. Use one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails on empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen fails when value has more than max characters (runes, not bytes).
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// Slug fails unless value is lowercase ASCII letters and digits joined by single hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	return v.Custom(field, !slug.Valid(value), "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Err returns a VALIDATION_ERROR listing every failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.errs...)
}

// RequiredError builds a single-field VALIDATION_ERROR outside a chain.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}
