// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/core/spectable"
)

// sequentialKeys returns a deterministic key generator ("k1", "k2", ...).
func sequentialKeys() spectable.KeyFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}
}

func newDocument() *spectable.Document {
	return spectable.NewDocument().WithKeyFunc(sequentialKeys())
}

// assertConsistent checks the row key-set == column key-set invariant.
func assertConsistent(t *testing.T, doc *spectable.Document) {
	t.Helper()
	for i := range doc.Tables {
		table := &doc.Tables[i]
		assert.True(t, table.Consistent(), "table %d rows do not match columns", i)
		assert.NotEmpty(t, table.Columns)
		assert.NotEmpty(t, table.Rows)
	}
	assert.NoError(t, doc.Validate())
}

/*
TestAddTable seeds two columns and one blank row.
*/
func TestAddTable(t *testing.T) {
	doc := newDocument()
	table := doc.AddTable("Spesifikasi Teknis")

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "Spesifikasi Teknis", table.Title)
	require.Len(t, table.Columns, 2)
	assert.NotEqual(t, table.Columns[0].Key, table.Columns[1].Key)
	require.Len(t, table.Rows, 1)
	for _, column := range table.Columns {
		assert.True(t, table.Rows[0][column.Key].IsZero())
	}
	assertConsistent(t, doc)
}

/*
TestAddColumn_BackfillsRows adds the new key to every existing row.
*/
func TestAddColumn_BackfillsRows(t *testing.T) {
	doc := newDocument()
	doc.AddTable("T")
	require.NoError(t, doc.AddRow(0))
	require.NoError(t, doc.AddRow(0))

	column, err := doc.AddColumn(0)
	require.NoError(t, err)

	for _, row := range doc.Tables[0].Rows {
		value, ok := row[column.Key]
		require.True(t, ok)
		assert.Equal(t, "", value.String())
	}
	assertConsistent(t, doc)
}

/*
TestAddColumn_NeverReusesKeys draws fresh keys even after deletions.
*/
func TestAddColumn_NeverReusesKeys(t *testing.T) {
	doc := spectable.NewDocument()
	doc.AddTable("T")

	seen := map[string]bool{}
	for _, column := range doc.Tables[0].Columns {
		seen[column.Key] = true
	}

	for i := 0; i < 20; i++ {
		column, err := doc.AddColumn(0)
		require.NoError(t, err)
		assert.False(t, seen[column.Key], "key %s reused", column.Key)
		assert.True(t, strings.HasPrefix(column.Key, "col_"))
		seen[column.Key] = true
		require.NoError(t, doc.RemoveColumn(0, column.Key))
	}
}

/*
TestAddColumn_SkipsCollidingKeys re-draws when the generator repeats an existing key.
*/
func TestAddColumn_SkipsCollidingKeys(t *testing.T) {
	keys := []string{"a", "b", "a", "b", "c"}
	doc := spectable.NewDocument().WithKeyFunc(func() string {
		key := keys[0]
		keys = keys[1:]
		return key
	})
	doc.AddTable("T")

	column, err := doc.AddColumn(0)
	require.NoError(t, err)
	assert.Equal(t, "c", column.Key)
}

/*
TestRemoveColumn_LastIsRejected leaves the table unchanged.
*/
func TestRemoveColumn_LastIsRejected(t *testing.T) {
	doc := newDocument()
	doc.AddTable("T")
	first := doc.Tables[0].Columns[0].Key
	second := doc.Tables[0].Columns[1].Key
	require.NoError(t, doc.SetCell(0, 0, first, "Mutu"))

	require.NoError(t, doc.RemoveColumn(0, second))

	before, err := json.Marshal(doc)
	require.NoError(t, err)

	err = doc.RemoveColumn(0, first)
	assert.ErrorIs(t, err, spectable.ErrLastColumn)

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

/*
TestRemoveColumn_DropsKeyFromRows deletes the key from every row.
*/
func TestRemoveColumn_DropsKeyFromRows(t *testing.T) {
	doc := newDocument()
	doc.AddTable("T")
	require.NoError(t, doc.AddRow(0))
	key := doc.Tables[0].Columns[0].Key

	require.NoError(t, doc.RemoveColumn(0, key))

	for _, row := range doc.Tables[0].Rows {
		_, ok := row[key]
		assert.False(t, ok)
	}
	assertConsistent(t, doc)

	assert.ErrorIs(t, doc.RemoveColumn(0, "missing"), spectable.ErrColumnNotFound)
}

/*
TestRemoveRow_LastIsRejected keeps the one-row minimum.
*/
func TestRemoveRow_LastIsRejected(t *testing.T) {
	doc := newDocument()
	doc.AddTable("T")

	assert.ErrorIs(t, doc.RemoveRow(0, 0), spectable.ErrLastRow)
	assert.Len(t, doc.Tables[0].Rows, 1)

	require.NoError(t, doc.AddRow(0))
	require.NoError(t, doc.RemoveRow(0, 1))
	assert.Len(t, doc.Tables[0].Rows, 1)

	assert.ErrorIs(t, doc.RemoveRow(0, 5), spectable.ErrRowNotFound)
}

/*
TestRemoveTable has no minimum count.
*/
func TestRemoveTable(t *testing.T) {
	doc := newDocument()
	doc.AddTable("A")
	doc.AddTable("B")

	require.NoError(t, doc.RemoveTable(0))
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "B", doc.Tables[0].Title)

	require.NoError(t, doc.RemoveTable(0))
	assert.Empty(t, doc.Tables)

	assert.ErrorIs(t, doc.RemoveTable(0), spectable.ErrTableNotFound)
}

/*
TestSetCell stores numbers for numeric input and strings otherwise.
*/
func TestSetCell(t *testing.T) {
	doc := newDocument()
	doc.AddTable("T")
	require.NoError(t, doc.AddRow(0))
	key := doc.Tables[0].Columns[1].Key

	require.NoError(t, doc.SetCell(0, 0, key, "15"))
	require.NoError(t, doc.SetCell(0, 1, key, "15 MPa"))

	number, ok := doc.Tables[0].Rows[0][key].Float()
	require.True(t, ok)
	assert.Equal(t, 15.0, number)

	assert.False(t, doc.Tables[0].Rows[1][key].IsNumber())
	assert.Equal(t, "15 MPa", doc.Tables[0].Rows[1][key].String())

	assert.ErrorIs(t, doc.SetCell(0, 0, "unknown", "1"), spectable.ErrColumnNotFound)
	assert.ErrorIs(t, doc.SetCell(0, 9, key, "1"), spectable.ErrRowNotFound)
	assert.ErrorIs(t, doc.SetCell(3, 0, key, "1"), spectable.ErrTableNotFound)
	assertConsistent(t, doc)
}

/*
TestColumnMetadata relabels headers and units without touching row data.
*/
func TestColumnMetadata(t *testing.T) {
	doc := newDocument()
	doc.AddTable("T")
	key := doc.Tables[0].Columns[1].Key
	require.NoError(t, doc.SetCell(0, 0, key, "35"))

	require.NoError(t, doc.RenameColumnHeader(0, key, "Kuat Tekan"))
	require.NoError(t, doc.SetColumnUnit(0, key, "MPa"))
	require.NoError(t, doc.RenameTable(0, "Beton"))

	column := doc.Tables[0].Columns[1]
	assert.Equal(t, key, column.Key)
	assert.Equal(t, "Kuat Tekan", column.Header)
	assert.Equal(t, "MPa", column.Unit)
	assert.Equal(t, "Beton", doc.Tables[0].Title)
	assert.Equal(t, "35", doc.Tables[0].Rows[0][key].String())

	assert.ErrorIs(t, doc.RenameColumnHeader(0, "missing", "x"), spectable.ErrColumnNotFound)
	assert.ErrorIs(t, doc.SetColumnUnit(1, key, "x"), spectable.ErrTableNotFound)
}

/*
TestInvariant_RandomOperations applies random edit sequences and checks the
row/column key-set invariant after every step.
*/
func TestInvariant_RandomOperations(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		doc := spectable.NewDocument()
		doc.AddTable("A")
		doc.AddTable("B")

		for step := 0; step < 200; step++ {
			tableIndex := random.Intn(len(doc.Tables))
			table := &doc.Tables[tableIndex]

			switch random.Intn(5) {
			case 0:
				_, err := doc.AddColumn(tableIndex)
				require.NoError(t, err)
			case 1:
				key := table.Columns[random.Intn(len(table.Columns))].Key
				err := doc.RemoveColumn(tableIndex, key)
				if err != nil {
					require.ErrorIs(t, err, spectable.ErrLastColumn)
				}
			case 2:
				require.NoError(t, doc.AddRow(tableIndex))
			case 3:
				err := doc.RemoveRow(tableIndex, random.Intn(len(table.Rows)))
				if err != nil {
					require.ErrorIs(t, err, spectable.ErrLastRow)
				}
			case 4:
				key := table.Columns[random.Intn(len(table.Columns))].Key
				row := random.Intn(len(table.Rows))
				require.NoError(t, doc.SetCell(tableIndex, row, key, fmt.Sprint(random.Intn(100))))
			}

			assertConsistent(t, doc)
		}
	}
}

/*
TestNormalize reconciles drifted rows from older records.
*/
func TestNormalize(t *testing.T) {
	raw := `[
		{"title":"Drifted","columns":[{"key":"a","header":"A"},{"key":"b","header":"B"},{"key":"a","header":"dup"}],
		 "rows":[{"a":1,"stale":"x"},{"b":"only b"},null]},
		{"title":"Empty","columns":[],"rows":[]}
	]`

	var doc spectable.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Error(t, doc.Validate())

	doc.Normalize()
	assertConsistent(t, &doc)

	drifted := doc.Tables[0]
	require.Len(t, drifted.Columns, 2)
	require.Len(t, drifted.Rows, 3)
	assert.Equal(t, "1", drifted.Rows[0]["a"].String())
	assert.True(t, drifted.Rows[0]["b"].IsZero())
	_, stale := drifted.Rows[0]["stale"]
	assert.False(t, stale)
	assert.Equal(t, "only b", drifted.Rows[1]["b"].String())

	empty := doc.Tables[1]
	assert.Len(t, empty.Columns, 1)
	assert.Len(t, empty.Rows, 1)
}
