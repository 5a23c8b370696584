// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slugs assigns collision-free public slugs to content records.

A slug is derived from the record title and made unique within its
collection (projects, insights, ...) by appending "-1", "-2", ... until the
record store reports the candidate as free.

Core Responsibility:

  - Derivation: Delegates text normalization to [slug.Make].
  - Uniqueness: Probes the injected [Finder] sequentially, one candidate at a time.
  - Overrides: Validates editor-supplied slugs via [Resolver.Ensure].

Probing is not transactional. Two editors creating the same title at the
same instant can both observe a free candidate; the unique index on the slug
column is the final arbiter and surfaces as a CONFLICT error.
*/
package slugs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/pkg/slug"
)

// # Dependencies

// Finder answers whether a slug is already owned by a record in a collection.
//
// excludeID, when non-empty, is ignored during the lookup so that a record
// being edited does not collide with its own current slug.
type Finder interface {
	SlugTaken(context context.Context, collection, candidate, excludeID string) (bool, error)
}

// # Resolver

// Resolver produces unique slugs for a [Finder]-backed record store.
type Resolver struct {
	finder Finder
	logger *slog.Logger
}

// NewResolver constructs a [Resolver] around the given record store.
func NewResolver(finder Finder, logger *slog.Logger) *Resolver {
	return &Resolver{finder: finder, logger: logger}
}

/*
Unique derives a slug from title and returns the first free candidate.

Description: Candidates are tried in order base, base-1, base-2, ... with one
awaited store round trip per candidate. There is no upper bound; the counter
strictly increases so every probe is distinct.

Parameters:
  - context: context.Context
  - collection: string (record collection, e.g. "projects")
  - title: string (editor-supplied title)
  - excludeID: string (record to ignore, empty on create)

Returns:
  - string: Free slug, or "" when the title yields no slug characters
  - error: Store failures, never swallowed
*/
func (resolver *Resolver) Unique(context context.Context, collection, title, excludeID string) (string, error) {
	base := slug.Make(title)

	// Empty input is surfaced to the caller, not probed
	if base == "" {
		return "", nil
	}

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := resolver.finder.SlugTaken(context, collection, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("slugs: lookup %q in %s: %w", candidate, collection, err)
		}

		if !taken {
			return candidate, nil
		}

		resolver.logger.Debug("slug_collision",
			slog.String("collection", collection),
			slog.String("candidate", candidate),
		)

		candidate = slug.WithSuffix(base, counter)
	}
}

/*
Ensure accepts an editor-supplied slug override.

Description: The value must already be a canonical slug; it is not rewritten.
An override gives up the automatic title sync, so a collision is reported
to the editor instead of being silently suffixed.

Parameters:
  - context: context.Context
  - collection: string
  - desired: string (manual slug)
  - excludeID: string (the record being edited)

Returns:
  - string: The accepted slug
  - error: VALIDATION_ERROR, CONFLICT, or store failures
*/
func (resolver *Resolver) Ensure(context context.Context, collection, desired, excludeID string) (string, error) {
	if !slug.Valid(desired) {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "slug",
			Message: "Must be a valid URL slug (lowercase letters, digits, hyphens only)",
		})
	}

	taken, err := resolver.finder.SlugTaken(context, collection, desired, excludeID)
	if err != nil {
		return "", fmt.Errorf("slugs: lookup %q in %s: %w", desired, collection, err)
	}

	if taken {
		return "", apperr.Conflict(fmt.Sprintf("Slug %q is already used in %s", desired, collection))
	}

	return desired, nil
}
