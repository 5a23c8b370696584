// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package spectable models the editor-defined specification tables attached to
content records (e.g. "Beton K-350: kuat tekan 35 MPa").

Each table carries its own column schema. Columns are identified by opaque
keys so that headers can be relabelled without disturbing row data, and
every cell holds either a string or a number.

Core Responsibility:

  - Schema: Columns can be added, removed, relabelled and given units at any time.
  - Consistency: Every row carries exactly the current column keys.
  - Persistence: The [Document] serialises to the literal JSON shape stored
    in the record's specs column and tolerates drifted rows on the way back in.
*/
package spectable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// # Cell Values

// Value is a single table cell: either a string or a finite number.
type Value struct {
	text    string
	number  float64
	numeric bool
}

// Text returns a string cell.
func Text(s string) Value {
	return Value{text: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{number: f, numeric: true}
}

/*
Coerce converts raw editor input into a cell.

Description: Input that parses as a finite decimal number (surrounding
whitespace ignored) becomes a number; anything else keeps the original
string. "15" becomes 15 while "15 MPa" stays text. Leading zeros are not
preserved: "007" becomes 7. Blank input stays an empty string. Digit
separators ("1_000") and hex literals are text.

Parameters:
  - raw: string (editor input)

Returns:
  - Value: numeric or text cell
*/
func Coerce(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || isHexLiteral(trimmed) || strings.Contains(trimmed, "_") {
		return Text(raw)
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return Text(raw)
	}

	return Number(parsed)
}

// IsNumber reports whether the cell holds a number.
func (v Value) IsNumber() bool {
	return v.numeric
}

// Float returns the numeric value and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	return v.number, v.numeric
}

// String renders the cell for display.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

// IsZero reports whether the cell is the empty string.
func (v Value) IsZero() bool {
	return !v.numeric && v.text == ""
}

// MarshalJSON writes numbers as JSON numbers and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts any JSON scalar.
//
// Older records may hold booleans or nulls; they are kept as text so that
// re-hydration never fails on a single odd cell.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("spectable: empty cell value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 'n':
		*v = Text("")
	case 't', 'f':
		*v = Text(string(trimmed))
	case '{', '[':
		return fmt.Errorf("spectable: cell must be a string or a number, got %s", trimmed)
	default:
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return err
		}
		*v = Number(f)
	}

	return nil
}

// isHexLiteral rejects Go-only float syntaxes such as "0x1p4".
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// # Table Structure

// Column describes one column of a specification table.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
	Unit   string `json:"unit,omitempty"`
}

// Row maps column keys to cell values.
type Row map[string]Value

// Table is a single titled specification table.
type Table struct {
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ColumnIndex returns the position of the column with key, or -1.
func (t *Table) ColumnIndex(key string) int {
	for i, column := range t.Columns {
		if column.Key == key {
			return i
		}
	}
	return -1
}

// hasKey reports whether key is a current column key.
func (t *Table) hasKey(key string) bool {
	return t.ColumnIndex(key) >= 0
}

// blankRow builds a row with an empty string for every current column.
func (t *Table) blankRow() Row {
	row := make(Row, len(t.Columns))
	for _, column := range t.Columns {
		row[column.Key] = Text("")
	}
	return row
}

// Consistent reports whether every row carries exactly the column keys.
func (t *Table) Consistent() bool {
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return false
		}
		for _, column := range t.Columns {
			if _, ok := row[column.Key]; !ok {
				return false
			}
		}
	}
	return true
}
