// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into [apperr.AppError] values so SQL
// details never reach a response.
package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/konstra/internal/platform/apperr"
)

// ErrNotFound is returned for queries that matched no row.
var ErrNotFound = apperr.NotFound("Resource")

/*
Wrap maps a driver error to an [apperr.AppError].

Description:
  - pgx.ErrNoRows becomes NOT_FOUND.
  - A unique violation becomes CONFLICT, naming the slug when the violated
    constraint is a slug index.
  - Check and length violations become UNPROCESSABLE.
  - Anything else becomes INTERNAL_ERROR tagged with action.
*/
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			message := "Record conflicts with an existing one"
			if strings.Contains(pgErr.ConstraintName, "slug") {
				message = "Slug is already used by another record"
			}
			conflict := apperr.Conflict(message)
			conflict.Cause = err
			return conflict

		case pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			unprocessable := apperr.Unprocessable("Record violates a storage constraint")
			unprocessable.Cause = err
			return unprocessable
		}
	}

	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}

// IsNotFound reports whether err is a raw or wrapped missing-row error.
func IsNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	ae := apperr.As(err)
	return ae != nil && ae.Code == apperr.CodeNotFound
}
