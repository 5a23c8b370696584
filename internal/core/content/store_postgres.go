// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/konstra/internal/core/spectable"
	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/internal/platform/database/schema"
	"github.com/taibuivan/konstra/internal/platform/dberr"
)

// # Table Layout

// table describes the backing table of one collection.
type table struct {
	name      string
	columns   []string
	id        string
	title     string
	slug      string
	summary   string
	body      string
	coverRef  string
	gallery   string
	specs     string
	createdAt string
	updatedAt string
}

var tables = map[Collection]table{
	CollectionProjects: {
		name:      schema.CoreProject.Table,
		columns:   schema.CoreProject.Columns(),
		id:        schema.CoreProject.ID,
		title:     schema.CoreProject.Title,
		slug:      schema.CoreProject.Slug,
		summary:   schema.CoreProject.Summary,
		body:      schema.CoreProject.Body,
		coverRef:  schema.CoreProject.CoverRef,
		gallery:   schema.CoreProject.Gallery,
		specs:     schema.CoreProject.Specs,
		createdAt: schema.CoreProject.CreatedAt,
		updatedAt: schema.CoreProject.UpdatedAt,
	},
	CollectionInsights: {
		name:      schema.CoreInsight.Table,
		columns:   schema.CoreInsight.Columns(),
		id:        schema.CoreInsight.ID,
		title:     schema.CoreInsight.Title,
		slug:      schema.CoreInsight.Slug,
		summary:   schema.CoreInsight.Summary,
		body:      schema.CoreInsight.Body,
		coverRef:  schema.CoreInsight.CoverRef,
		createdAt: schema.CoreInsight.CreatedAt,
		updatedAt: schema.CoreInsight.UpdatedAt,
	},
}

func tableFor(collection Collection) (table, error) {
	t, ok := tables[collection]
	if !ok {
		return table{}, ErrUnknownCollection
	}
	return t, nil
}

// storedImage is the JSONB shape of a gallery item.
type storedImage struct {
	Ref     string `json:"ref"`
	Caption string `json:"caption,omitempty"`
}

// # PostgreSQL Repository

// entryRepository implements [Repository] using pgx.
type entryRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed content store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &entryRepository{pool: pool}
}

/*
Create inserts a new entry row.

Parameters:
  - context: context.Context
  - entry: *Entry (ID, slug and timestamps already assigned)

Returns:
  - error: CONFLICT on a duplicate slug, or database errors
*/
func (repository *entryRepository) Create(context context.Context, entry *Entry) error {
	t, err := tableFor(entry.Collection)
	if err != nil {
		return err
	}

	values, err := rowValues(entry, t)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(t.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		t.name,
		strings.Join(t.columns, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := repository.pool.Exec(context, query, values...); err != nil {
		return dberr.Wrap(err, "create_entry")
	}

	return nil
}

/*
Update overwrites title, slug, text, images and specs of an entry.

Parameters:
  - context: context.Context
  - entry: *Entry (fully merged state)

Returns:
  - error: NOT_FOUND, CONFLICT on a duplicate slug, or database errors
*/
func (repository *entryRepository) Update(context context.Context, entry *Entry) error {
	t, err := tableFor(entry.Collection)
	if err != nil {
		return err
	}

	assignments := []string{
		fmt.Sprintf("%s = $2", t.title),
		fmt.Sprintf("%s = $3", t.slug),
		fmt.Sprintf("%s = $4", t.summary),
		fmt.Sprintf("%s = $5", t.body),
		fmt.Sprintf("%s = $6", t.coverRef),
		fmt.Sprintf("%s = $7", t.updatedAt),
	}
	args := []any{entry.ID, entry.Title, entry.Slug, entry.Summary, entry.Body, entry.CoverRef, entry.UpdatedAt}

	if t.gallery != "" {
		gallery, specs, err := encodeExtras(entry)
		if err != nil {
			return err
		}
		assignments = append(assignments,
			fmt.Sprintf("%s = $8", t.gallery),
			fmt.Sprintf("%s = $9", t.specs),
		)
		args = append(args, gallery, specs)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`, t.name, strings.Join(assignments, ", "), t.id)

	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "update_entry")
	}

	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// FindByID loads one entry by primary key.
func (repository *entryRepository) FindByID(context context.Context, collection Collection, id string) (*Entry, error) {
	return repository.findOne(context, collection, "id", id)
}

// FindBySlug loads one entry by its public slug.
func (repository *entryRepository) FindBySlug(context context.Context, collection Collection, slug string) (*Entry, error) {
	return repository.findOne(context, collection, "slug", slug)
}

func (repository *entryRepository) findOne(context context.Context, collection Collection, by, value string) (*Entry, error) {
	t, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	column := t.id
	if by == "slug" {
		column = t.slug
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(t.columns, ", "), t.name, column)

	entry, err := scanEntry(repository.pool.QueryRow(context, query, value), collection, t, nil)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

/*
List returns a page of entries ordered newest first.

Description: The total is computed in the same round trip with COUNT(*) OVER().

Parameters:
  - context: context.Context
  - collection: Collection
  - limit: int
  - offset: int

Returns:
  - []*Entry: Page of entries
  - int: Total number of entries in the collection
  - error: Database errors
*/
func (repository *entryRepository) List(context context.Context, collection Collection, limit, offset int) ([]*Entry, int, error) {
	t, err := tableFor(collection)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		strings.Join(t.columns, ", "),
		t.name,
		t.createdAt, t.id,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	var total int

	for rows.Next() {
		entry, err := scanEntry(rows, collection, t, &total)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_entries")
	}

	return entries, total, nil
}

// Delete removes one entry row.
func (repository *entryRepository) Delete(context context.Context, collection Collection, id string) error {
	t, err := tableFor(collection)
	if err != nil {
		return err
	}

	tag, err := repository.pool.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.name, t.id), id)
	if err != nil {
		return dberr.Wrap(err, "delete_entry")
	}

	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// # Row Mapping

// rowValues returns insert arguments in the order of t.columns.
func rowValues(entry *Entry, t table) ([]any, error) {
	values := []any{entry.ID, entry.Title, entry.Slug, entry.Summary, entry.Body, entry.CoverRef}

	if t.gallery != "" {
		gallery, specs, err := encodeExtras(entry)
		if err != nil {
			return nil, err
		}
		values = append(values, gallery, specs)
	}

	return append(values, entry.CreatedAt, entry.UpdatedAt), nil
}

// encodeExtras serialises the JSONB gallery and specs columns.
func encodeExtras(entry *Entry) ([]byte, []byte, error) {
	images := make([]storedImage, 0, len(entry.Gallery))
	for _, image := range entry.Gallery {
		images = append(images, storedImage{Ref: image.Ref, Caption: image.Caption})
	}

	gallery, err := json.Marshal(images)
	if err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("encode gallery: %w", err))
	}

	specs := []byte("[]")
	if entry.Specs != nil {
		if specs, err = json.Marshal(entry.Specs); err != nil {
			return nil, nil, apperr.Internal(fmt.Errorf("encode specs: %w", err))
		}
	}

	return gallery, specs, nil
}

// scanEntry reads one row laid out as t.columns, optionally followed by a total count.
func scanEntry(row pgx.Row, collection Collection, t table, total *int) (*Entry, error) {
	entry := &Entry{Collection: collection}
	var gallery, specs []byte

	targets := []any{&entry.ID, &entry.Title, &entry.Slug, &entry.Summary, &entry.Body, &entry.CoverRef}
	if t.gallery != "" {
		targets = append(targets, &gallery, &specs)
	}
	targets = append(targets, &entry.CreatedAt, &entry.UpdatedAt)
	if total != nil {
		targets = append(targets, total)
	}

	if err := row.Scan(targets...); err != nil {
		return nil, dberr.Wrap(err, "scan_entry")
	}

	if t.gallery == "" {
		return entry, nil
	}

	var images []storedImage
	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &images); err != nil {
			return nil, apperr.Internal(fmt.Errorf("decode gallery of %s: %w", entry.ID, err))
		}
	}
	for _, image := range images {
		entry.Gallery = append(entry.Gallery, Image{Ref: image.Ref, Caption: image.Caption})
	}

	entry.Specs = spectable.NewDocument()
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, entry.Specs); err != nil {
			return nil, apperr.Internal(fmt.Errorf("decode specs of %s: %w", entry.ID, err))
		}
	}

	return entry, nil
}
