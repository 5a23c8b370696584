// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content manages the slugged, image-bearing records of the site.

Two collections share one shape:

  - projects: portfolio entries with a cover, a gallery and specification tables.
  - insights: articles with a cover image.

Records are addressed publicly by slug. Stored image references are resolved
to display URLs on every read and the underlying objects are removed when a
record stops referencing them.
*/
package content

import (
	"time"

	"github.com/taibuivan/konstra/internal/core/spectable"
	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/internal/platform/constants"
	"github.com/taibuivan/konstra/pkg/slice"
)

// # Collections

// Collection names a record collection. Slugs are unique per collection.
type Collection string

const (
	CollectionProjects Collection = constants.CollectionProjects
	CollectionInsights Collection = constants.CollectionInsights
)

// ErrUnknownCollection is returned for collection names outside [Collections].
var ErrUnknownCollection = apperr.NotFound("Collection")

// ErrEntryNotFound is returned for identifiers that match no entry.
var ErrEntryNotFound = apperr.NotFound("Entry")

// Collections lists every supported collection.
func Collections() []Collection {
	return []Collection{CollectionProjects, CollectionInsights}
}

// ParseCollection validates a collection name.
func ParseCollection(name string) (Collection, error) {
	for _, collection := range Collections() {
		if string(collection) == name {
			return collection, nil
		}
	}
	return "", ErrUnknownCollection
}

// HasGallery reports whether entries of the collection carry a gallery and specification tables.
func (c Collection) HasGallery() bool {
	return c == CollectionProjects
}

// # Entities

// Image is one gallery item. URL is derived on read and never stored.
type Image struct {
	Ref     string `json:"ref"`
	Caption string `json:"caption,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Entry is a content record of any collection.
type Entry struct {
	ID         string              `json:"id"`
	Collection Collection          `json:"collection"`
	Title      string              `json:"title"`
	Slug       string              `json:"slug"`
	Summary    string              `json:"summary"`
	Body       string              `json:"body"`
	CoverRef   string              `json:"cover_ref"`
	CoverURL   string              `json:"cover_url,omitempty"`
	Gallery    []Image             `json:"gallery,omitempty"`
	Specs      *spectable.Document `json:"specs,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// imageRefs returns every image reference held by the entry.
func (entry *Entry) imageRefs() []string {
	refs := append([]string{entry.CoverRef}, slice.Map(entry.Gallery, func(image Image) string { return image.Ref })...)
	return slice.Filter(refs, func(ref string) bool { return ref != "" })
}

// Patch holds the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Title    *string
	Slug     *string
	Summary  *string
	Body     *string
	CoverRef *string
	Gallery  *[]Image
	Specs    *spectable.Document

	// ResyncSlug regenerates the slug from the (possibly new) title.
	ResyncSlug bool
}

// # Field Names

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldSummary  = "summary"
	FieldBody     = "body"
	FieldCoverRef = "cover_ref"
	FieldGallery  = "gallery"
	FieldSpecs    = "specs"
)

// # Limits

const (
	maxTitleLength   = 200
	maxSlugLength    = 220
	maxSummaryLength = 500
	maxRefLength     = 1024
	maxCaptionLength = 300
	maxGalleryImages = 50
)
