// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"net/url"
	"strings"
)

// # Normalizer

// Normalizer converts references between their stored and displayed forms.
type Normalizer struct {
	store ObjectStore
}

// NewNormalizer creates a [Normalizer] over the object store's URL layout.
func NewNormalizer(store ObjectStore) *Normalizer {
	return &Normalizer{store: store}
}

/*
DisplayURL resolves a reference for rendering.

Description: External URLs and local paths are returned unchanged. Storage
keys are resolved to the bucket's public URL. An empty reference stays empty.

Parameters:
  - ref: string (stored reference)
  - bucket: string

Returns:
  - string: URL or path suitable for an <img src>
*/
func (normalizer *Normalizer) DisplayURL(ref, bucket string) string {
	reference := Classify(ref)
	if reference.Kind != KindStorage {
		return ref
	}
	return normalizer.store.PublicURL(bucket, reference.Key)
}

/*
StorageKey derives the bucket-relative key from any representation of a reference.

Description: A URL containing the bucket's public path segment yields the
remainder after that segment, without query or fragment and path-unescaped.
A leading "/" is stripped. Anything else is already a bare key.

For every storage key k: StorageKey(DisplayURL(k, b), b) == k.

Parameters:
  - ref: string (stored key or previously resolved display URL)
  - bucket: string

Returns:
  - string: Object key
*/
func (normalizer *Normalizer) StorageKey(ref, bucket string) string {
	if isAbsoluteURL(ref) {
		if key, ok := normalizer.keyFromURL(ref, bucket); ok {
			return key
		}
		return ref
	}
	return strings.TrimPrefix(ref, "/")
}

// Owns reports whether ref points at an object this service manages in bucket.
//
// Only storage keys and URLs under the current public base qualify. Local
// paths and foreign URLs are never deleted. A URL saved under an earlier
// public base still resolves through [Normalizer.StorageKey] but is not owned
// here, so a host change never deletes objects behind another origin.
func (normalizer *Normalizer) Owns(ref, bucket string) bool {
	switch Classify(ref).Kind {
	case KindStorage:
		return true
	case KindExternal:
		return strings.HasPrefix(ref, normalizer.store.PublicURL(bucket, ""))
	default:
		return false
	}
}

// keyFromURL extracts the key after our public prefix, or after the first
// occurrence of the bucket's path segment.
func (normalizer *Normalizer) keyFromURL(ref, bucket string) (string, bool) {
	trimmed := ref
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}

	var escaped string
	if prefix := normalizer.store.PublicURL(bucket, ""); strings.HasPrefix(trimmed, prefix) {
		escaped = trimmed[len(prefix):]
	} else {
		segment := normalizer.store.PublicPathSegment(bucket)
		i := strings.Index(trimmed, segment)
		if i < 0 {
			return "", false
		}
		escaped = trimmed[i+len(segment):]
	}

	key, err := url.PathUnescape(escaped)
	if err != nil {
		return escaped, true
	}
	return key, true
}
