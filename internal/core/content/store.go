// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// # Repository Interface

// Repository is the persistence contract for content entries.
//
// Every method operates on a single row. The collection selects the table.
type Repository interface {
	// Create inserts a new entry. A duplicate slug returns CONFLICT.
	Create(context context.Context, entry *Entry) error

	// Update overwrites the mutable columns of an existing entry and refreshes UpdatedAt.
	Update(context context.Context, entry *Entry) error

	// FindByID returns the entry with the given UUID.
	FindByID(context context.Context, collection Collection, id string) (*Entry, error)

	// FindBySlug returns the entry with the given slug.
	FindBySlug(context context.Context, collection Collection, slug string) (*Entry, error)

	// List returns a page of entries, newest first, and the total count.
	List(context context.Context, collection Collection, limit, offset int) ([]*Entry, int, error)

	// Delete removes an entry.
	Delete(context context.Context, collection Collection, id string) error
}
