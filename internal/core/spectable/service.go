// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/konstra/internal/platform/validate"
	"github.com/taibuivan/konstra/pkg/uuid"
)

// Field names used in validation errors.
const (
	FieldTitle = "title"
	FieldSpecs = "specs"

	maxTitleLength  = 200
	maxHeaderLength = 120
	maxUnitLength   = 32
)

// Draft is an editing session over one specification document.
type Draft struct {
	ID    string    `json:"id"`
	Specs *Document `json:"specs"`
}

// # Service Layer

// Service edits specification documents held as short-lived drafts.
//
// Every operation loads the draft, applies one [Document] mutation and saves
// it back with a refreshed TTL. A rejected mutation leaves the stored draft
// untouched.
type Service struct {
	drafts DraftRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(drafts DraftRepository, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		drafts: drafts,
		ttl:    ttl,
		logger: logger,
	}
}

// # Draft Lifecycle

/*
CreateDraft starts an editing session.

Description: The optional seed (e.g. the specs of an existing project) is
normalized before it is stored, so drifted records become editable.

Parameters:
  - context: context.Context
  - seed: *Document (may be nil for an empty document)

Returns:
  - *Draft: The new draft with its ID
  - error: Storage errors
*/
func (service *Service) CreateDraft(context context.Context, seed *Document) (*Draft, error) {

	if seed == nil {
		seed = NewDocument()
	}
	seed.Normalize()

	draft := &Draft{ID: uuid.New(), Specs: seed}
	if err := service.drafts.Save(context, draft.ID, seed, service.ttl); err != nil {
		return nil, err
	}

	service.logger.Info("spec_draft_created",
		slog.String("draft_id", draft.ID),
		slog.Int("tables", len(seed.Tables)),
	)

	return draft, nil
}

// GetDraft returns the normalized document of a draft.
func (service *Service) GetDraft(context context.Context, id string) (*Draft, error) {
	document, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	return &Draft{ID: id, Specs: document}, nil
}

// DiscardDraft deletes a draft.
func (service *Service) DiscardDraft(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return ErrDraftNotFound
	}
	if err := service.drafts.Delete(context, id); err != nil {
		return err
	}
	service.logger.Info("spec_draft_discarded", slog.String("draft_id", id))
	return nil
}

// # Table Operations

// AddTable appends a seeded table.
func (service *Service) AddTable(context context.Context, id, title string) (*Draft, error) {
	if err := validateLabel(FieldTitle, title, maxTitleLength); err != nil {
		return nil, err
	}
	return service.edit(context, id, "table_added", func(document *Document) error {
		document.AddTable(title)
		return nil
	})
}

// RenameTable relabels a table.
func (service *Service) RenameTable(context context.Context, id string, tableIndex int, title string) (*Draft, error) {
	if err := validateLabel(FieldTitle, title, maxTitleLength); err != nil {
		return nil, err
	}
	return service.edit(context, id, "table_renamed", func(document *Document) error {
		return document.RenameTable(tableIndex, title)
	})
}

// RemoveTable deletes a table.
func (service *Service) RemoveTable(context context.Context, id string, tableIndex int) (*Draft, error) {
	return service.edit(context, id, "table_removed", func(document *Document) error {
		return document.RemoveTable(tableIndex)
	})
}

// # Column Operations

// AddColumn appends a column with a fresh key.
func (service *Service) AddColumn(context context.Context, id string, tableIndex int) (*Draft, error) {
	return service.edit(context, id, "column_added", func(document *Document) error {
		_, err := document.AddColumn(tableIndex)
		return err
	})
}

// RemoveColumn deletes a column. Removing the last column fails with [ErrLastColumn].
func (service *Service) RemoveColumn(context context.Context, id string, tableIndex int, key string) (*Draft, error) {
	return service.edit(context, id, "column_removed", func(document *Document) error {
		return document.RemoveColumn(tableIndex, key)
	})
}

/*
UpdateColumn changes the header and/or unit of a column.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)
  - tableIndex: int
  - key: string (Column key)
  - header: *string (nil keeps the current header)
  - unit: *string (nil keeps the current unit, "" clears it)

Returns:
  - *Draft: The updated draft
  - error: Validation, not-found or storage errors
*/
func (service *Service) UpdateColumn(context context.Context, id string, tableIndex int, key string, header, unit *string) (*Draft, error) {

	validator := &validate.Validator{}
	if header != nil {
		validator.MaxLen("header", *header, maxHeaderLength)
	}
	if unit != nil {
		validator.MaxLen("unit", *unit, maxUnitLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.edit(context, id, "column_updated", func(document *Document) error {
		if header != nil {
			if err := document.RenameColumnHeader(tableIndex, key, *header); err != nil {
				return err
			}
		}
		if unit != nil {
			return document.SetColumnUnit(tableIndex, key, *unit)
		}
		return nil
	})
}

// # Row Operations

// AddRow appends a blank row.
func (service *Service) AddRow(context context.Context, id string, tableIndex int) (*Draft, error) {
	return service.edit(context, id, "row_added", func(document *Document) error {
		return document.AddRow(tableIndex)
	})
}

// RemoveRow deletes a row. Removing the last row fails with [ErrLastRow].
func (service *Service) RemoveRow(context context.Context, id string, tableIndex, rowIndex int) (*Draft, error) {
	return service.edit(context, id, "row_removed", func(document *Document) error {
		return document.RemoveRow(tableIndex, rowIndex)
	})
}

// SetCell stores raw editor input into one cell (see [Coerce]).
func (service *Service) SetCell(context context.Context, id string, tableIndex, rowIndex int, key, raw string) (*Draft, error) {
	return service.edit(context, id, "", func(document *Document) error {
		return document.SetCell(tableIndex, rowIndex, key, raw)
	})
}

// # Helpers

// load fetches and normalizes a draft.
func (service *Service) load(context context.Context, id string) (*Document, error) {
	if !uuid.Valid(id) {
		return nil, ErrDraftNotFound
	}

	document, err := service.drafts.Get(context, id)
	if err != nil {
		return nil, err
	}

	document.Normalize()
	return document, nil
}

// edit runs a load-mutate-save cycle. Nothing is saved if mutate fails.
func (service *Service) edit(context context.Context, id, event string, mutate func(*Document) error) (*Draft, error) {

	document, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(document); err != nil {
		return nil, err
	}

	if err := service.drafts.Save(context, id, document, service.ttl); err != nil {
		return nil, err
	}

	// Cell edits are too chatty for info level
	if event != "" {
		service.logger.Info("spec_draft_"+event, slog.String("draft_id", id))
	} else {
		service.logger.Debug("spec_draft_cell_set", slog.String("draft_id", id))
	}

	return &Draft{ID: id, Specs: document}, nil
}

// validateLabel checks a free-text label such as a table title.
func validateLabel(field, value string, max int) error {
	validator := &validate.Validator{}
	validator.MaxLen(field, value, max)
	return validator.Err()
}
