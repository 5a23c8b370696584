// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/konstra/internal/core/spectable"
	requestutil "github.com/taibuivan/konstra/internal/platform/request"
	"github.com/taibuivan/konstra/internal/platform/respond"
	"github.com/taibuivan/konstra/internal/platform/validate"
	"github.com/taibuivan/konstra/pkg/pagination"
)

// # Handler Implementation

// Handler exposes one collection over HTTP.
type Handler struct {
	service    *Service
	collection Collection
}

// NewHandler constructs a [Handler] bound to a single collection.
func NewHandler(service *Service, collection Collection) *Handler {
	return &Handler{service: service, collection: collection}
}

// Routes returns a [chi.Router] mounted under /api/v1/<collection>.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEntries)
	router.Post("/", handler.createEntry)
	router.Get("/slug-preview", handler.slugPreview)
	router.Get("/{identifier}", handler.getEntry)
	router.Patch("/{id}", handler.updateEntry)
	router.Delete("/{id}", handler.deleteEntry)

	return router
}

// # Request Payloads

type createEntryRequest struct {
	Title    string              `json:"title"`
	Slug     string              `json:"slug"`
	Summary  string              `json:"summary"`
	Body     string              `json:"body"`
	CoverRef string              `json:"cover_ref"`
	Gallery  []Image             `json:"gallery"`
	Specs    *spectable.Document `json:"specs"`
}

type updateEntryRequest struct {
	Title      *string             `json:"title"`
	Slug       *string             `json:"slug"`
	Summary    *string             `json:"summary"`
	Body       *string             `json:"body"`
	CoverRef   *string             `json:"cover_ref"`
	Gallery    *[]Image            `json:"gallery"`
	Specs      *spectable.Document `json:"specs"`
	ResyncSlug bool                `json:"resync_slug"`
}

type slugPreviewResponse struct {
	Slug string `json:"slug"`
}

// # Endpoints

/*
GET /api/v1/{collection}.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Entry (paginated)
*/
func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	entries, total, err := handler.service.List(request.Context(), handler.collection, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/{collection}/{identifier}.

Request:
  - identifier: string (UUID or slug)

Response:
  - 200: Entry
  - 404: NOT_FOUND
*/
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.Get(request.Context(), handler.collection, requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

/*
GET /api/v1/{collection}/slug-preview?title=&exclude=.

Description: Returns the slug the title would receive now. Nothing is reserved,
so the value may differ at save time if another record claims it first.

Response:
  - 200: {slug}
  - 400: VALIDATION_ERROR (title without letters or digits)
*/
func (handler *Handler) slugPreview(writer http.ResponseWriter, request *http.Request) {
	title := requestutil.Query(request, FieldTitle)
	if title == "" {
		respond.Error(writer, request, validate.RequiredError(FieldTitle, "This field is required"))
		return
	}

	slug, err := handler.service.SlugPreview(request.Context(), handler.collection, title, requestutil.Query(request, "exclude"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slugPreviewResponse{Slug: slug})
}

/*
POST /api/v1/{collection}.

Response:
  - 201: Entry
  - 400: VALIDATION_ERROR
  - 409: CONFLICT (slug taken)
  - 422: UNPROCESSABLE (malformed specs)
*/
func (handler *Handler) createEntry(writer http.ResponseWriter, request *http.Request) {
	var input createEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Create(request.Context(), &Entry{
		Collection: handler.collection,
		Title:      input.Title,
		Slug:       input.Slug,
		Summary:    input.Summary,
		Body:       input.Body,
		CoverRef:   input.CoverRef,
		Gallery:    input.Gallery,
		Specs:      input.Specs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

// PATCH /api/v1/{collection}/{id}.
func (handler *Handler) updateEntry(writer http.ResponseWriter, request *http.Request) {
	var input updateEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Update(request.Context(), handler.collection, requestutil.ID(request, "id"), Patch{
		Title:      input.Title,
		Slug:       input.Slug,
		Summary:    input.Summary,
		Body:       input.Body,
		CoverRef:   input.CoverRef,
		Gallery:    input.Gallery,
		Specs:      input.Specs,
		ResyncSlug: input.ResyncSlug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// DELETE /api/v1/{collection}/{id}.
func (handler *Handler) deleteEntry(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), handler.collection, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
