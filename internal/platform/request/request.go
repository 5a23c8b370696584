// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters, query values and JSON bodies
// from chi requests.
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/konstra/internal/platform/validate"
)

// maxJSONBytes caps JSON request bodies. Images go through multipart uploads instead.
const maxJSONBytes = 1 << 20

// DecodeJSON decodes the body into target and answers [validate.ErrInvalidJSON]
// for malformed or oversized payloads.
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(io.LimitReader(request.Body, maxJSONBytes)).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns a path parameter holding a UUID or slug.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Param returns a raw path parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Index parses a zero-based positional path parameter.
func Index(request *http.Request, name string) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || index < 0 {
		return 0, validate.RequiredError(name, "Must be a non-negative integer index")
	}
	return index, nil
}

// Query returns a whitespace-trimmed query value.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}
