// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/internal/platform/validate"
	"github.com/taibuivan/konstra/pkg/slug"
	"github.com/taibuivan/konstra/pkg/uuid"
)

// # Errors

var (
	// ErrUnsupportedType rejects uploads that are not raster images.
	ErrUnsupportedType = apperr.New("UNSUPPORTED_MEDIA_TYPE", "Only JPEG, PNG, GIF and WebP images are accepted", http.StatusUnsupportedMediaType)

	// ErrTooLarge rejects uploads above the configured size limit.
	ErrTooLarge = apperr.New("PAYLOAD_TOO_LARGE", "The uploaded file is too large", http.StatusRequestEntityTooLarge)

	// ErrCorruptImage rejects files whose signature matches an image format but whose header does not decode.
	ErrCorruptImage = apperr.Unprocessable("The uploaded image could not be decoded")
)

// Field names used in validation errors.
const (
	FieldFolder = "folder"
	FieldFile   = "file"
	FieldRef    = "ref"
)

// extensions maps accepted sniffed content types to the stored file extension.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// maxCounterAttempts bounds the "-n" suffix search before falling back to a random suffix.
const maxCounterAttempts = 100

// defaultBaseName is used when the original filename has no usable characters.
const defaultBaseName = "image"

// # Types

// Upload is a single file to be stored.
type Upload struct {
	Folder   string
	Filename string
	Body     io.Reader
}

// Object is a stored object and its public URL.
type Object struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Resolution describes how a reference is interpreted.
type Resolution struct {
	Kind      Kind   `json:"kind"`
	Key       string `json:"key,omitempty"`
	URL       string `json:"url"`
	Deletable bool   `json:"deletable"`
}

// # Service Layer

// Service stores and deletes images and resolves references for display.
type Service struct {
	store      ObjectStore
	normalizer *Normalizer
	bucket     string
	maxBytes   int64
	logger     *slog.Logger
}

// NewService constructs a new media [Service].
//
// bucket is the default bucket for uploads and for callers that do not
// track their own.
func NewService(store ObjectStore, bucket string, maxBytes int64, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		normalizer: NewNormalizer(store),
		bucket:     bucket,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Bucket returns the default bucket.
func (service *Service) Bucket() string {
	return service.bucket
}

// DisplayURL resolves a reference for rendering (see [Normalizer.DisplayURL]).
func (service *Service) DisplayURL(ref, bucket string) string {
	return service.normalizer.DisplayURL(ref, bucket)
}

// Resolve reports the kind, key and display URL of a reference.
func (service *Service) Resolve(ref, bucket string) Resolution {
	resolution := Resolution{
		Kind:      Classify(ref).Kind,
		URL:       service.normalizer.DisplayURL(ref, bucket),
		Deletable: service.normalizer.Owns(ref, bucket),
	}
	if resolution.Deletable {
		resolution.Key = service.normalizer.StorageKey(ref, bucket)
	}
	return resolution
}

/*
Delete removes the object behind a reference.

Description: Only references owned by this service are deleted: storage keys
and URLs under our public base. External URLs and local paths are left alone
and reported as not deleted. The key is re-derived from whatever form the
caller holds, so a previously resolved display URL works as well as the raw
key. A missing object counts as deleted.

Parameters:
  - context: context.Context
  - bucket: string
  - ref: string (stored key or display URL)

Returns:
  - bool: true if a delete was issued to the store
  - error: Store failures
*/
func (service *Service) Delete(context context.Context, bucket, ref string) (bool, error) {

	if !service.normalizer.Owns(ref, bucket) {
		service.logger.Debug("object_delete_skipped",
			slog.String("ref", ref),
			slog.String("kind", Classify(ref).Kind.String()),
		)
		return false, nil
	}

	key := service.normalizer.StorageKey(ref, bucket)
	if key == "" {
		return false, nil
	}

	if err := service.store.Delete(context, bucket, key); err != nil {
		return false, err
	}

	service.logger.Info("object_deleted",
		slog.String("bucket", bucket),
		slog.String("key", key),
	)

	return true, nil
}

/*
Upload stores an image under a unique, readable key in the default bucket.

Description: The key is "<folder>/<slugified-name><ext>". When it is taken,
"-1", "-2", ... is appended to the name. The extension follows the sniffed
content type, not the client-supplied filename.

Parameters:
  - context: context.Context
  - upload: Upload

Returns:
  - *Object: Stored key, public URL and pixel dimensions
  - error: Validation, ErrUnsupportedType, ErrCorruptImage, ErrTooLarge or store errors
*/
func (service *Service) Upload(context context.Context, upload Upload) (*Object, error) {

	folder := strings.Trim(upload.Folder, "/")
	validator := &validate.Validator{}
	validator.Required(FieldFolder, folder)
	for _, segment := range strings.Split(folder, "/") {
		if folder != "" && !slug.Valid(segment) {
			validator.Custom(FieldFolder, true, "Folder segments must be valid slugs")
			break
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Read at most one byte over the limit to detect oversize bodies
	data, err := io.ReadAll(io.LimitReader(upload.Body, service.maxBytes+1))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > service.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, validate.RequiredError(FieldFile, "The uploaded file is empty")
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	dimensions, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrCorruptImage
	}

	base := slug.Make(strings.TrimSuffix(path.Base(upload.Filename), path.Ext(upload.Filename)))
	if base == "" {
		base = defaultBaseName
	}

	key, err := service.uniqueKey(context, folder, base, ext)
	if err != nil {
		return nil, err
	}

	if err := service.store.Put(context, service.bucket, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}

	service.logger.Info("object_uploaded",
		slog.String("key", key),
		slog.String("content_type", contentType),
		slog.Int("size", len(data)),
		slog.Int("width", dimensions.Width),
		slog.Int("height", dimensions.Height),
	)

	return &Object{
		Key:    key,
		URL:    service.store.PublicURL(service.bucket, key),
		Width:  dimensions.Width,
		Height: dimensions.Height,
	}, nil
}

// uniqueKey probes "<folder>/<base><ext>", then "-1", "-2", ... and finally a random suffix.
func (service *Service) uniqueKey(context context.Context, folder, base, ext string) (string, error) {
	name := base
	for counter := 1; counter <= maxCounterAttempts; counter++ {
		candidate := folder + "/" + name + ext

		exists, err := service.store.Exists(context, service.bucket, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		name = slug.WithSuffix(base, counter)
	}

	return folder + "/" + base + "-" + uuid.Token() + ext, nil
}
