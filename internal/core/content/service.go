// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/konstra/internal/core/spectable"
	"github.com/taibuivan/konstra/internal/platform/validate"
	"github.com/taibuivan/konstra/pkg/slice"
	"github.com/taibuivan/konstra/pkg/uuid"
)

// # Dependencies

// SlugResolver assigns unique slugs within a collection.
type SlugResolver interface {
	Unique(context context.Context, collection, title, excludeID string) (string, error)
	Ensure(context context.Context, collection, desired, excludeID string) (string, error)
}

// Images resolves and deletes image references.
type Images interface {
	DisplayURL(ref, bucket string) string
	Delete(context context.Context, bucket, ref string) (bool, error)
}

// # Service Layer

// Service orchestrates content records, their slugs and their images.
type Service struct {
	repo   Repository
	slugs  SlugResolver
	images Images
	bucket string
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new content [Service]. bucket holds every image of every collection.
func NewService(repo Repository, slugs SlugResolver, images Images, bucket string, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		slugs:  slugs,
		images: images,
		bucket: bucket,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// # Lookups

/*
Get fetches a single entry by UUID or slug.

Description: UUID-shaped identifiers are looked up by primary key, anything
else by slug. Image references are resolved to display URLs and the specs
are normalized against drift.

Parameters:
  - context: context.Context
  - collection: Collection
  - identifier: string (UUID or slug)

Returns:
  - *Entry: The entry with display URLs
  - error: NOT_FOUND or repository errors
*/
func (service *Service) Get(context context.Context, collection Collection, identifier string) (*Entry, error) {
	var entry *Entry
	var err error

	if uuid.Valid(identifier) {
		entry, err = service.repo.FindByID(context, collection, identifier)
	} else {
		entry, err = service.repo.FindBySlug(context, collection, identifier)
	}
	if err != nil {
		return nil, err
	}

	return service.present(entry), nil
}

// List returns a page of entries with display URLs and the total count.
func (service *Service) List(context context.Context, collection Collection, limit, offset int) ([]*Entry, int, error) {
	entries, total, err := service.repo.List(context, collection, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i, entry := range entries {
		entries[i] = service.present(entry)
	}

	return entries, total, nil
}

// SlugPreview returns the slug a title would receive, without reserving it.
func (service *Service) SlugPreview(context context.Context, collection Collection, title, excludeID string) (string, error) {
	return service.assignSlug(context, collection, title, excludeID)
}

// # Management

/*
Create validates and persists a new entry.

Description: The slug comes from the editor when supplied (validated and
checked for uniqueness) and is otherwise derived from the title. Specs are
normalized and must satisfy the table invariants.

Parameters:
  - context: context.Context
  - entry: *Entry (Collection, Title and optional fields set)

Returns:
  - *Entry: The stored entry with display URLs
  - error: Validation, conflict or repository errors
*/
func (service *Service) Create(context context.Context, entry *Entry) (*Entry, error) {

	if err := service.validate(entry); err != nil {
		return nil, err
	}

	// Slug assignment
	var err error
	if entry.Slug != "" {
		entry.Slug, err = service.slugs.Ensure(context, string(entry.Collection), entry.Slug, "")
	} else {
		entry.Slug, err = service.assignSlug(context, entry.Collection, entry.Title, "")
	}
	if err != nil {
		return nil, err
	}

	entry.ID = uuid.New()
	entry.CreatedAt = service.now()
	entry.UpdatedAt = entry.CreatedAt

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("entry_created",
		slog.String("collection", string(entry.Collection)),
		slog.String("entry_id", entry.ID),
		slog.String("slug", entry.Slug),
	)

	return service.present(entry), nil
}

/*
Update applies a partial update to an existing entry.

Description: The slug only changes when the editor supplies one or asks for
a resync from the title. Images the entry no longer references are deleted
from storage after the row has been updated.

Parameters:
  - context: context.Context
  - collection: Collection
  - id: string (UUID)
  - patch: Patch

Returns:
  - *Entry: The updated entry with display URLs
  - error: Validation, conflict, not-found or repository errors
*/
func (service *Service) Update(context context.Context, collection Collection, id string, patch Patch) (*Entry, error) {
	if !uuid.Valid(id) {
		return nil, ErrEntryNotFound
	}

	entry, err := service.repo.FindByID(context, collection, id)
	if err != nil {
		return nil, err
	}
	previousRefs := entry.imageRefs()

	applyPatch(entry, patch)

	if err := service.validate(entry); err != nil {
		return nil, err
	}

	switch {
	case patch.Slug != nil:
		entry.Slug, err = service.slugs.Ensure(context, string(collection), *patch.Slug, id)
	case patch.ResyncSlug:
		entry.Slug, err = service.assignSlug(context, collection, entry.Title, id)
	}
	if err != nil {
		return nil, err
	}

	entry.UpdatedAt = service.now()

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("entry_updated",
		slog.String("collection", string(collection)),
		slog.String("entry_id", id),
	)

	service.deleteImages(context, slice.Without(previousRefs, entry.imageRefs()))

	return service.present(entry), nil
}

// Delete removes an entry and then every image it referenced.
func (service *Service) Delete(context context.Context, collection Collection, id string) error {
	if !uuid.Valid(id) {
		return ErrEntryNotFound
	}

	entry, err := service.repo.FindByID(context, collection, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, collection, id); err != nil {
		return err
	}

	service.logger.Info("entry_deleted",
		slog.String("collection", string(collection)),
		slog.String("entry_id", id),
	)

	service.deleteImages(context, entry.imageRefs())

	return nil
}

// # Helpers

// assignSlug derives a unique slug and rejects titles without slug characters.
func (service *Service) assignSlug(context context.Context, collection Collection, title, excludeID string) (string, error) {
	slug, err := service.slugs.Unique(context, string(collection), title, excludeID)
	if err != nil {
		return "", err
	}
	if slug == "" {
		return "", validate.RequiredError(FieldSlug, "Title must contain at least one letter or digit")
	}
	return slug, nil
}

// validate checks the entry fields and normalizes its specs in place.
func (service *Service) validate(entry *Entry) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, entry.Title).MaxLen(FieldTitle, entry.Title, maxTitleLength)
	validator.MaxLen(FieldSummary, entry.Summary, maxSummaryLength)
	validator.MaxLen(FieldCoverRef, entry.CoverRef, maxRefLength)

	if entry.Slug != "" {
		validator.Slug(FieldSlug, entry.Slug).MaxLen(FieldSlug, entry.Slug, maxSlugLength)
	}

	if !entry.Collection.HasGallery() {
		validator.Custom(FieldGallery, len(entry.Gallery) > 0, "This collection does not support a gallery")
		validator.Custom(FieldSpecs, entry.Specs != nil && len(entry.Specs.Tables) > 0, "This collection does not support specification tables")
	}

	validator.Custom(FieldGallery, len(entry.Gallery) > maxGalleryImages, "Too many gallery images")
	for _, image := range entry.Gallery {
		validator.Required(FieldGallery, image.Ref)
		validator.MaxLen(FieldGallery, image.Ref, maxRefLength)
		validator.MaxLen(FieldGallery, image.Caption, maxCaptionLength)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if entry.Collection.HasGallery() {
		if entry.Specs == nil {
			entry.Specs = spectable.NewDocument()
		}
		entry.Specs.Normalize()
		return entry.Specs.Validate()
	}

	return nil
}

// present resolves display URLs and normalizes specs for output.
func (service *Service) present(entry *Entry) *Entry {
	entry.CoverURL = service.images.DisplayURL(entry.CoverRef, service.bucket)
	for i := range entry.Gallery {
		entry.Gallery[i].URL = service.images.DisplayURL(entry.Gallery[i].Ref, service.bucket)
	}
	if entry.Specs != nil {
		entry.Specs.Normalize()
	}
	return entry
}

// deleteImages removes objects best-effort. The record change has already
// been committed, so failures are logged rather than returned.
func (service *Service) deleteImages(context context.Context, refs []string) {
	for _, ref := range refs {
		if _, err := service.images.Delete(context, service.bucket, ref); err != nil {
			service.logger.Warn("orphan_image_delete_failed",
				slog.String("ref", ref),
				slog.Any("error", err),
			)
		}
	}
}

// applyPatch copies the non-nil patch fields onto entry.
func applyPatch(entry *Entry, patch Patch) {
	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Summary != nil {
		entry.Summary = *patch.Summary
	}
	if patch.Body != nil {
		entry.Body = *patch.Body
	}
	if patch.CoverRef != nil {
		entry.CoverRef = *patch.CoverRef
	}
	if patch.Gallery != nil {
		entry.Gallery = *patch.Gallery
	}
	if patch.Specs != nil {
		entry.Specs = patch.Specs
	}
	if patch.Slug != nil {
		entry.Slug = *patch.Slug
	}
}
