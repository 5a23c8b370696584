// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/konstra/internal/platform/request"
	"github.com/taibuivan/konstra/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes specification drafts over HTTP.
//
// Tables and rows are addressed by position, columns by their opaque key.
// Every mutation responds with the full updated draft.
type Handler struct {
	service *Service
}

// NewHandler constructs a new spec draft [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted under /api/v1/spec-drafts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createDraft)

	router.Route("/{draftID}", func(draft chi.Router) {
		draft.Get("/", handler.getDraft)
		draft.Delete("/", handler.discardDraft)

		// Tables
		draft.Post("/tables", handler.addTable)
		draft.Patch("/tables/{table}", handler.renameTable)
		draft.Delete("/tables/{table}", handler.removeTable)

		// Columns
		draft.Post("/tables/{table}/columns", handler.addColumn)
		draft.Patch("/tables/{table}/columns/{key}", handler.updateColumn)
		draft.Delete("/tables/{table}/columns/{key}", handler.removeColumn)

		// Rows & Cells
		draft.Post("/tables/{table}/rows", handler.addRow)
		draft.Delete("/tables/{table}/rows/{row}", handler.removeRow)
		draft.Put("/tables/{table}/rows/{row}/cells/{key}", handler.setCell)
	})

	return router
}

// # Request Payloads

type createDraftRequest struct {
	Specs *Document `json:"specs"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type updateColumnRequest struct {
	Header *string `json:"header"`
	Unit   *string `json:"unit"`
}

type setCellRequest struct {
	Value string `json:"value"`
}

// # Draft Endpoints

/*
POST /api/v1/spec-drafts.

Description: Opens an editing draft, optionally seeded with an existing
specification document.

Request:
  - specs: []Table (optional)

Response:
  - 201: Draft
  - 400: ErrInvalidJSON
*/
func (handler *Handler) createDraft(writer http.ResponseWriter, request *http.Request) {
	var input createDraftRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	draft, err := handler.service.CreateDraft(request.Context(), input.Specs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, draft)
}

// GET /api/v1/spec-drafts/{draftID}.
func (handler *Handler) getDraft(writer http.ResponseWriter, request *http.Request) {
	draft, err := handler.service.GetDraft(request.Context(), requestutil.ID(request, "draftID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

// DELETE /api/v1/spec-drafts/{draftID}.
func (handler *Handler) discardDraft(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DiscardDraft(request.Context(), requestutil.ID(request, "draftID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Table Endpoints

func (handler *Handler) addTable(writer http.ResponseWriter, request *http.Request) {
	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.AddTable(request.Context(), requestutil.ID(request, "draftID"), input.Title)
	writeDraft(writer, request, draft, err)
}

func (handler *Handler) renameTable(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.RenameTable(request.Context(), requestutil.ID(request, "draftID"), tableIndex, input.Title)
	writeDraft(writer, request, draft, err)
}

func (handler *Handler) removeTable(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.RemoveTable(request.Context(), requestutil.ID(request, "draftID"), tableIndex)
	writeDraft(writer, request, draft, err)
}

// # Column Endpoints

func (handler *Handler) addColumn(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.AddColumn(request.Context(), requestutil.ID(request, "draftID"), tableIndex)
	writeDraft(writer, request, draft, err)
}

/*
PATCH /api/v1/spec-drafts/{draftID}/tables/{table}/columns/{key}.

Description: Relabels a column. Omitted fields are left unchanged; an empty
unit clears it. Row data is never touched.

Request:
  - header: string (optional)
  - unit: string (optional)

Response:
  - 200: Draft
  - 404: Draft, table or column not found
*/
func (handler *Handler) updateColumn(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateColumnRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.UpdateColumn(request.Context(),
		requestutil.ID(request, "draftID"),
		tableIndex,
		requestutil.Param(request, "key"),
		input.Header,
		input.Unit,
	)
	writeDraft(writer, request, draft, err)
}

/*
DELETE /api/v1/spec-drafts/{draftID}/tables/{table}/columns/{key}.

Response:
  - 200: Draft
  - 404: Draft, table or column not found
  - 409: LAST_COLUMN (draft unchanged)
*/
func (handler *Handler) removeColumn(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.RemoveColumn(request.Context(),
		requestutil.ID(request, "draftID"),
		tableIndex,
		requestutil.Param(request, "key"),
	)
	writeDraft(writer, request, draft, err)
}

// # Row Endpoints

func (handler *Handler) addRow(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.AddRow(request.Context(), requestutil.ID(request, "draftID"), tableIndex)
	writeDraft(writer, request, draft, err)
}

/*
DELETE /api/v1/spec-drafts/{draftID}/tables/{table}/rows/{row}.

Response:
  - 200: Draft
  - 409: LAST_ROW (draft unchanged)
*/
func (handler *Handler) removeRow(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rowIndex, err := requestutil.Index(request, "row")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.RemoveRow(request.Context(), requestutil.ID(request, "draftID"), tableIndex, rowIndex)
	writeDraft(writer, request, draft, err)
}

/*
PUT /api/v1/spec-drafts/{draftID}/tables/{table}/rows/{row}/cells/{key}.

Description: Stores raw editor input. Numeric input ("15") is stored as a
number, anything else ("15 MPa") as text.

Request:
  - value: string

Response:
  - 200: Draft
*/
func (handler *Handler) setCell(writer http.ResponseWriter, request *http.Request) {
	tableIndex, err := requestutil.Index(request, "table")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rowIndex, err := requestutil.Index(request, "row")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setCellRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.SetCell(request.Context(),
		requestutil.ID(request, "draftID"),
		tableIndex,
		rowIndex,
		requestutil.Param(request, "key"),
		input.Value,
	)
	writeDraft(writer, request, draft, err)
}

// # Helpers

func writeDraft(writer http.ResponseWriter, request *http.Request, draft *Draft, err error) {
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}
