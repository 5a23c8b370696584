// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media resolves image references held by content records and manages
the objects they point to.

A reference is one of three shapes:

  - External: an absolute http(s) URL, used verbatim.
  - Local: a path starting with "/", served by the site's static assets.
  - Storage: a bucket-relative key, resolved to a public URL and deletable.

Classification happens in one place ([Classify]) so the display and delete
paths cannot disagree about what a string means.
*/
package media

import "strings"

// # Reference Kinds

// Kind tags the shape of an image reference.
type Kind int

const (
	// KindNone is an empty reference.
	KindNone Kind = iota
	// KindExternal is an absolute http(s) URL.
	KindExternal
	// KindLocal is a site-relative static path.
	KindLocal
	// KindStorage is a bucket-relative object key.
	KindStorage
)

// String returns the lowercase kind name used in API payloads.
func (k Kind) String() string {
	switch k {
	case KindExternal:
		return "external"
	case KindLocal:
		return "local"
	case KindStorage:
		return "storage"
	default:
		return "none"
	}
}

// MarshalText renders the kind as its name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reference is a classified image reference. Key is set only for
// [KindStorage] and is the object key within the bucket.
type Reference struct {
	Raw  string
	Kind Kind
	Key  string
}

// Classify tags a raw reference by its shape.
func Classify(ref string) Reference {
	switch {
	case ref == "":
		return Reference{Raw: ref, Kind: KindNone}
	case isAbsoluteURL(ref):
		return Reference{Raw: ref, Kind: KindExternal}
	case strings.HasPrefix(ref, "/"):
		return Reference{Raw: ref, Kind: KindLocal}
	default:
		return Reference{Raw: ref, Kind: KindStorage, Key: ref}
	}
}

// isAbsoluteURL matches http:// and https:// case-insensitively.
func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
