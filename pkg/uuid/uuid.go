// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues the identifiers of records, drafts, requests and column keys.

All values are version 7, so primary keys sort by creation time and append
to the B-tree index instead of scattering across it.
*/
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a hyphenated UUIDv7. It panics only if the system entropy source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Token returns a UUIDv7 as 32 lowercase hex characters, for keys embedded in
// documents and object names.
func Token() string {
	return strings.ReplaceAll(New(), "-", "")
}

// Valid reports whether s is a hyphenated UUID of any version.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
