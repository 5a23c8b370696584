// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"io"
)

// # Object Store Interface

// ObjectStore is the bucket-based blob storage behind storage references.
type ObjectStore interface {
	// PublicURL returns the public URL of key in bucket. An empty key yields the bucket prefix.
	PublicURL(bucket, key string) string

	// PublicPathSegment returns the path segment that precedes keys in public URLs (e.g. "/media/").
	PublicPathSegment(bucket string) string

	// Exists reports whether an object is stored under key.
	Exists(context context.Context, bucket, key string) (bool, error)

	// Put stores size bytes from body under key.
	Put(context context.Context, bucket, key, contentType string, body io.ReadSeeker, size int64) error

	// Delete removes an object. A missing object is not an error.
	Delete(context context.Context, bucket, key string) error
}
