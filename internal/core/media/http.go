// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/konstra/internal/platform/request"
	"github.com/taibuivan/konstra/internal/platform/respond"
	"github.com/taibuivan/konstra/internal/platform/validate"
)

// multipartOverhead leaves room for form boundaries and the folder field.
const multipartOverhead = 1 << 20

// Handler exposes uploads, reference resolution and deletion.
type Handler struct {
	service *Service
}

// NewHandler constructs a new media [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted under /api/v1/media.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", handler.upload)
	router.Get("/resolve", handler.resolve)
	router.Delete("/", handler.delete)

	return router
}

/*
POST /api/v1/media/upload.

Description: Stores one image from a multipart form in the default bucket.

Request:
  - file: binary (JPEG, PNG, GIF or WebP)
  - folder: string (e.g. "projects" or "insights/covers")

Response:
  - 201: Object{key, url}
  - 400: VALIDATION_ERROR
  - 413: PAYLOAD_TOO_LARGE
  - 415: UNSUPPORTED_MEDIA_TYPE
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, handler.service.maxBytes+multipartOverhead)

	if err := request.ParseMultipartForm(handler.service.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, ErrTooLarge)
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldFile, "A multipart form with a file is required"))
		return
	}

	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "No file provided"))
		return
	}
	defer file.Close()

	object, err := handler.service.Upload(request.Context(), Upload{
		Folder:   request.FormValue(FieldFolder),
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, object)
}

/*
GET /api/v1/media/resolve?ref=.

Response:
  - 200: Resolution{kind, key, url, deletable}
*/
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	ref := requestutil.Query(request, FieldRef)
	if ref == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRef, "This field is required"))
		return
	}

	respond.OK(writer, handler.service.Resolve(ref, handler.service.Bucket()))
}

/*
DELETE /api/v1/media?ref=.

Description: Deletes the object behind an owned reference. Foreign URLs,
local paths and already-missing objects all answer 204.

Response:
  - 204: No Content
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ref := requestutil.Query(request, FieldRef)
	if ref == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRef, "This field is required"))
		return
	}

	if _, err := handler.service.Delete(request.Context(), handler.service.Bucket(), ref); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
