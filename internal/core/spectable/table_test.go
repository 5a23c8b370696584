// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/core/spectable"
)

/*
TestCoerce covers the numeric-if-parsable rule.
*/
func TestCoerce(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		isNumber  bool
		number    float64
		rendering string
	}{
		{"integer", "15", true, 15, "15"},
		{"decimal", "2.5", true, 2.5, "2.5"},
		{"negative", "-40", true, -40, "-40"},
		{"exponent", "1e3", true, 1000, "1000"},
		{"padded", "  15  ", true, 15, "15"},
		{"leading_zeros", "007", true, 7, "7"},
		{"with_unit", "15 MPa", false, 0, "15 MPa"},
		{"range", "10-20", false, 0, "10-20"},
		{"blank", "", false, 0, ""},
		{"whitespace", "   ", false, 0, "   "},
		{"nan", "NaN", false, 0, "NaN"},
		{"infinity", "Infinity", false, 0, "Infinity"},
		{"overflow", "1e999", false, 0, "1e999"},
		{"hex", "0x1p4", false, 0, "0x1p4"},
		{"comma_decimal", "2,5", false, 0, "2,5"},
		{"digit_separator", "1_000", false, 0, "1_000"},
		{"separated_decimal", "1_0.5", false, 0, "1_0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := spectable.Coerce(tt.raw)
			assert.Equal(t, tt.isNumber, v.IsNumber())
			if tt.isNumber {
				f, ok := v.Float()
				require.True(t, ok)
				assert.Equal(t, tt.number, f)
			}
			assert.Equal(t, tt.rendering, v.String())
		})
	}
}

/*
TestValue_JSON checks that numbers and strings keep their JSON types.
*/
func TestValue_JSON(t *testing.T) {
	row := spectable.Row{
		"a": spectable.Number(15),
		"b": spectable.Text("15 MPa"),
	}

	encoded, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":15,"b":"15 MPa"}`, string(encoded))

	var decoded spectable.Row
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded["a"].IsNumber())
	assert.False(t, decoded["b"].IsNumber())
	assert.Equal(t, "15 MPa", decoded["b"].String())
}

/*
TestValue_UnmarshalTolerant accepts legacy scalars and rejects nested structures.
*/
func TestValue_UnmarshalTolerant(t *testing.T) {
	var v spectable.Value

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`true`), &v))
	assert.Equal(t, "true", v.String())

	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

/*
TestDocument_PersistedShape verifies the literal stored JSON shape.
*/
func TestDocument_PersistedShape(t *testing.T) {
	doc := spectable.NewDocument(spectable.Table{
		Title: "Beton",
		Columns: []spectable.Column{
			{Key: "k1", Header: "Mutu"},
			{Key: "k2", Header: "Kuat Tekan", Unit: "MPa"},
		},
		Rows: []spectable.Row{
			{"k1": spectable.Text("K-350"), "k2": spectable.Number(29.05)},
		},
	})

	encoded, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"title": "Beton",
		"columns": [{"key":"k1","header":"Mutu"},{"key":"k2","header":"Kuat Tekan","unit":"MPa"}],
		"rows": [{"k1":"K-350","k2":29.05}]
	}]`, string(encoded))

	var decoded spectable.Document
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Len(t, decoded.Tables, 1)
	assert.Equal(t, "MPa", decoded.Tables[0].Columns[1].Unit)

	empty, err := json.Marshal(spectable.Document{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
