// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from editor-supplied titles.
//
// # Usage
//
// Slugs are the public identity of content records (e.g., "jalan-lingkar-tuban").
// This package handles normalization, accent removal, and character sanitization.
// It never fails: a title without any usable character yields "", and callers
// decide how to surface that to the editor.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches every character that cannot survive into a slug.
	disallowed = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	// separators matches runs of whitespace, underscores and hyphens.
	separators = regexp.MustCompile(`[\s_-]+`)
	// pattern is the canonical slug shape.
	pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make converts an arbitrary title into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and removes combining marks (é → e).
// 2. Lowercases and trims surrounding whitespace.
// 3. Strips every character outside [a-z0-9], whitespace, '_' and '-'.
// 4. Collapses runs of whitespace/underscore/hyphen into a single hyphen.
// 5. Trims leading/trailing hyphens.
//
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(title string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, title)
	if err != nil {
		result = title
	}

	// 2. Lowercase and trim
	result = strings.TrimSpace(strings.ToLower(result))

	// 3. Strip everything that is not a slug character or a separator
	result = disallowed.ReplaceAllString(result, "")

	// 4. Collapse separators
	result = separators.ReplaceAllString(result, "-")

	// 5. Trim edge hyphens
	return strings.Trim(result, "-")
}

// Valid reports whether s is a well-formed, non-empty slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// WithSuffix appends a numeric disambiguator: WithSuffix("base", 2) is "base-2".
func WithSuffix(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
