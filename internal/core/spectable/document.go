// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/konstra/internal/platform/apperr"
	"github.com/taibuivan/konstra/pkg/uuid"
)

// # Errors

var (
	// ErrTableNotFound is returned for an out-of-range table index.
	ErrTableNotFound = apperr.NotFound("Table")

	// ErrRowNotFound is returned for an out-of-range row index.
	ErrRowNotFound = apperr.NotFound("Row")

	// ErrColumnNotFound is returned for an unknown column key.
	ErrColumnNotFound = apperr.NotFound("Column")

	// ErrDraftNotFound is returned for unknown or expired editing drafts.
	ErrDraftNotFound = apperr.NotFound("Specification draft")

	// ErrLastColumn rejects removing the only remaining column. The table is left unchanged.
	ErrLastColumn = apperr.New("LAST_COLUMN", "A table must keep at least one column", http.StatusConflict)

	// ErrLastRow rejects removing the only remaining row. The table is left unchanged.
	ErrLastRow = apperr.New("LAST_ROW", "A table must keep at least one row", http.StatusConflict)
)

// Seed headers for a freshly added table.
const (
	seedHeaderName  = "Parameter"
	seedHeaderValue = "Value"
	columnKeyPrefix = "col_"
)

// KeyFunc generates a candidate column key.
type KeyFunc func() string

// defaultKey draws a time-ordered random token, so keys are never reused.
func defaultKey() string {
	return columnKeyPrefix + uuid.Token()
}

// # Document

// Document is the ordered sequence of specification tables of one record.
//
// A Document is a plain in-memory value. It is not safe for concurrent use.
type Document struct {
	Tables []Table

	keys KeyFunc
}

// NewDocument wraps existing tables into a [Document].
func NewDocument(tables ...Table) *Document {
	return &Document{Tables: tables}
}

// WithKeyFunc overrides column key generation (deterministic keys in tests).
func (document *Document) WithKeyFunc(fn KeyFunc) *Document {
	document.keys = fn
	return document
}

// MarshalJSON writes the document as a bare JSON array of tables.
func (document Document) MarshalJSON() ([]byte, error) {
	if document.Tables == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(document.Tables)
}

// UnmarshalJSON reads a JSON array of tables. A JSON null yields an empty document.
func (document *Document) UnmarshalJSON(data []byte) error {
	var tables []Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return err
	}
	document.Tables = tables
	return nil
}

// table returns a pointer to the table at index.
func (document *Document) table(index int) (*Table, error) {
	if index < 0 || index >= len(document.Tables) {
		return nil, ErrTableNotFound
	}
	return &document.Tables[index], nil
}

// newKey returns a key that does not collide with any column of table.
func (document *Document) newKey(table *Table) string {
	generate := document.keys
	if generate == nil {
		generate = defaultKey
	}
	for {
		key := generate()
		if key != "" && !table.hasKey(key) {
			return key
		}
	}
}

// # Tables

/*
AddTable appends a new table with two seed columns and one blank seed row.

Parameters:
  - title: string (display label)

Returns:
  - Table: the appended table (index len(Tables)-1)
*/
func (document *Document) AddTable(title string) Table {
	document.Tables = append(document.Tables, Table{Title: title})
	table := &document.Tables[len(document.Tables)-1]

	table.Columns = []Column{
		{Key: document.newKey(table), Header: seedHeaderName},
	}
	table.Columns = append(table.Columns, Column{Key: document.newKey(table), Header: seedHeaderValue})
	table.Rows = []Row{table.blankRow()}

	return *table
}

// RemoveTable deletes the table at index. There is no minimum table count.
func (document *Document) RemoveTable(index int) error {
	if _, err := document.table(index); err != nil {
		return err
	}
	document.Tables = append(document.Tables[:index], document.Tables[index+1:]...)
	return nil
}

// RenameTable updates the display title of a table.
func (document *Document) RenameTable(index int, title string) error {
	table, err := document.table(index)
	if err != nil {
		return err
	}
	table.Title = title
	return nil
}

// # Columns

/*
AddColumn appends a column with a fresh key and backfills every row.

Parameters:
  - tableIndex: int

Returns:
  - Column: the new column (empty header)
  - error: ErrTableNotFound
*/
func (document *Document) AddColumn(tableIndex int) (Column, error) {
	table, err := document.table(tableIndex)
	if err != nil {
		return Column{}, err
	}

	column := Column{Key: document.newKey(table)}
	table.Columns = append(table.Columns, column)

	for _, row := range table.Rows {
		row[column.Key] = Text("")
	}

	return column, nil
}

/*
RemoveColumn deletes a column definition and its cell in every row.

Parameters:
  - tableIndex: int
  - key: string (column key)

Returns:
  - error: ErrLastColumn (table unchanged), ErrTableNotFound, ErrColumnNotFound
*/
func (document *Document) RemoveColumn(tableIndex int, key string) error {
	table, err := document.table(tableIndex)
	if err != nil {
		return err
	}

	position := table.ColumnIndex(key)
	if position < 0 {
		return ErrColumnNotFound
	}

	if len(table.Columns) <= 1 {
		return ErrLastColumn
	}

	table.Columns = append(table.Columns[:position], table.Columns[position+1:]...)
	for _, row := range table.Rows {
		delete(row, key)
	}

	return nil
}

// RenameColumnHeader relabels a column without touching its key or row data.
func (document *Document) RenameColumnHeader(tableIndex int, key, header string) error {
	column, err := document.column(tableIndex, key)
	if err != nil {
		return err
	}
	column.Header = header
	return nil
}

// SetColumnUnit sets (or clears, with "") the display unit of a column.
func (document *Document) SetColumnUnit(tableIndex int, key, unit string) error {
	column, err := document.column(tableIndex, key)
	if err != nil {
		return err
	}
	column.Unit = unit
	return nil
}

func (document *Document) column(tableIndex int, key string) (*Column, error) {
	table, err := document.table(tableIndex)
	if err != nil {
		return nil, err
	}
	position := table.ColumnIndex(key)
	if position < 0 {
		return nil, ErrColumnNotFound
	}
	return &table.Columns[position], nil
}

// # Rows

// AddRow appends a row holding an empty string for every current column.
func (document *Document) AddRow(tableIndex int) error {
	table, err := document.table(tableIndex)
	if err != nil {
		return err
	}
	table.Rows = append(table.Rows, table.blankRow())
	return nil
}

/*
RemoveRow deletes the row at rowIndex.

Parameters:
  - tableIndex: int
  - rowIndex: int

Returns:
  - error: ErrLastRow (table unchanged), ErrTableNotFound, ErrRowNotFound
*/
func (document *Document) RemoveRow(tableIndex, rowIndex int) error {
	table, err := document.table(tableIndex)
	if err != nil {
		return err
	}

	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return ErrRowNotFound
	}

	if len(table.Rows) <= 1 {
		return ErrLastRow
	}

	table.Rows = append(table.Rows[:rowIndex], table.Rows[rowIndex+1:]...)
	return nil
}

/*
SetCell stores editor input into a cell, coercing numeric text to a number.

Parameters:
  - tableIndex: int
  - rowIndex: int
  - key: string (column key; must exist)
  - raw: string (editor input, see [Coerce])

Returns:
  - error: ErrTableNotFound, ErrRowNotFound, ErrColumnNotFound
*/
func (document *Document) SetCell(tableIndex, rowIndex int, key, raw string) error {
	table, err := document.table(tableIndex)
	if err != nil {
		return err
	}

	if rowIndex < 0 || rowIndex >= len(table.Rows) {
		return ErrRowNotFound
	}

	if !table.hasKey(key) {
		return ErrColumnNotFound
	}

	table.Rows[rowIndex][key] = Coerce(raw)
	return nil
}

// # Schema Drift

/*
Normalize reconciles re-hydrated tables with their current column schema.

Description: Records persisted before later schema edits may carry rows
whose keys are a superset or subset of the columns. Normalize drops
duplicate column keys, backfills missing cells with "", deletes cells of
unknown keys, and restores the one-column / one-row minimum.
*/
func (document *Document) Normalize() {
	for i := range document.Tables {
		table := &document.Tables[i]

		// Unique, non-empty keys
		seen := make(map[string]struct{}, len(table.Columns))
		columns := table.Columns[:0]
		for _, column := range table.Columns {
			if column.Key == "" {
				continue
			}
			if _, dup := seen[column.Key]; dup {
				continue
			}
			seen[column.Key] = struct{}{}
			columns = append(columns, column)
		}
		table.Columns = columns

		if len(table.Columns) == 0 {
			table.Columns = append(table.Columns, Column{Key: document.newKey(table)})
		}

		// Row key-set equals column key-set
		for r, row := range table.Rows {
			if row == nil {
				row = make(Row, len(table.Columns))
				table.Rows[r] = row
			}
			for key := range row {
				if !table.hasKey(key) {
					delete(row, key)
				}
			}
			for _, column := range table.Columns {
				if _, ok := row[column.Key]; !ok {
					row[column.Key] = Text("")
				}
			}
		}

		if len(table.Rows) == 0 {
			table.Rows = []Row{table.blankRow()}
		}
	}
}

// Validate reports the first table that breaks the structural invariants.
func (document *Document) Validate() error {
	for i := range document.Tables {
		table := &document.Tables[i]

		if len(table.Columns) == 0 || len(table.Rows) == 0 {
			return apperr.Unprocessable("Each specification table needs at least one column and one row")
		}

		seen := make(map[string]struct{}, len(table.Columns))
		for _, column := range table.Columns {
			if _, dup := seen[column.Key]; dup || column.Key == "" {
				return apperr.Unprocessable("Specification column keys must be unique and non-empty")
			}
			seen[column.Key] = struct{}{}
		}

		if !table.Consistent() {
			return apperr.Unprocessable("Specification rows must match the column keys")
		}
	}
	return nil
}
