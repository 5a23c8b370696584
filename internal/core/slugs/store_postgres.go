// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slugs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/internal/platform/constants"
	"github.com/taibuivan/konstra/internal/platform/database/schema"
	"github.com/taibuivan/konstra/internal/platform/dberr"
)

// collectionTable maps a public collection name to its backing table and columns.
type collectionTable struct {
	table string
	id    string
	slug  string
}

// PostgresFinder implements [Finder] against the content tables.
type PostgresFinder struct {
	pool   *pgxpool.Pool
	tables map[string]collectionTable
}

// NewPostgresFinder creates a [Finder] covering every slugged collection.
func NewPostgresFinder(pool *pgxpool.Pool) *PostgresFinder {
	return &PostgresFinder{
		pool: pool,
		tables: map[string]collectionTable{
			constants.CollectionProjects: {schema.CoreProject.Table, schema.CoreProject.ID, schema.CoreProject.Slug},
			constants.CollectionInsights: {schema.CoreInsight.Table, schema.CoreInsight.ID, schema.CoreInsight.Slug},
		},
	}
}

/*
SlugTaken reports whether any row other than excludeID owns candidate.

Parameters:
  - context: context.Context
  - collection: string ("projects" or "insights")
  - candidate: string
  - excludeID: string (UUID, may be empty)

Returns:
  - bool: true if the slug is owned by another row
  - error: Unknown collection or query failures
*/
func (finder *PostgresFinder) SlugTaken(context context.Context, collection, candidate, excludeID string) (bool, error) {
	target, ok := finder.tables[collection]
	if !ok {
		return false, apperr.NotFound("Collection")
	}

	// Table identifiers come from the static schema map, never from input.
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND ($2 = '' OR %s::text <> $2)
		)`,
		target.table, target.slug, target.id,
	)

	var taken bool
	if err := finder.pool.QueryRow(context, query, candidate, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "slug_taken")
	}

	return taken, nil
}
