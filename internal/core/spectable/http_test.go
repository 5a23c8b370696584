// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/core/spectable"
)

type draftEnvelope struct {
	Data struct {
		ID    string          `json:"id"`
		Specs json.RawMessage `json:"specs"`
	} `json:"data"`
	Code string `json:"code"`
}

func serve(t *testing.T, handler http.Handler, method, path, body string) (int, draftEnvelope) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	var envelope draftEnvelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	}
	return recorder.Code, envelope
}

/*
TestHandler_EditFlow drives a draft through the HTTP routes.
*/
func TestHandler_EditFlow(t *testing.T) {
	router := spectable.NewHandler(newService(newFakeDrafts())).Routes()

	status, created := serve(t, router, http.MethodPost, "/", "")
	require.Equal(t, http.StatusCreated, status)
	base := "/" + created.Data.ID

	status, withTable := serve(t, router, http.MethodPost, base+"/tables", `{"title":"Beton"}`)
	require.Equal(t, http.StatusOK, status)

	var document spectable.Document
	require.NoError(t, json.Unmarshal(withTable.Data.Specs, &document))
	require.Len(t, document.Tables, 1)
	key := document.Tables[0].Columns[1].Key

	status, _ = serve(t, router, http.MethodPut, base+"/tables/0/rows/0/cells/"+key, `{"value":"15"}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = serve(t, router, http.MethodPatch, base+"/tables/0/columns/"+key, `{"header":"Kuat Tekan","unit":"MPa"}`)
	require.Equal(t, http.StatusOK, status)

	status, fetched := serve(t, router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{
		"title":"Beton",
		"columns":[{"key":"`+document.Tables[0].Columns[0].Key+`","header":"Parameter"},{"key":"`+key+`","header":"Kuat Tekan","unit":"MPa"}],
		"rows":[{"`+document.Tables[0].Columns[0].Key+`":"","`+key+`":15}]
	}]`, string(fetched.Data.Specs))

	status, _ = serve(t, router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, missing := serve(t, router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", missing.Code)
}

/*
TestHandler_Errors maps structural and input errors to status codes.
*/
func TestHandler_Errors(t *testing.T) {
	router := spectable.NewHandler(newService(newFakeDrafts())).Routes()

	_, created := serve(t, router, http.MethodPost, "/", `{"specs":[{"title":"T","columns":[{"key":"a","header":"A"}],"rows":[{"a":1}]}]}`)
	base := "/" + created.Data.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"last_column", http.MethodDelete, base + "/tables/0/columns/a", "", http.StatusConflict, "LAST_COLUMN"},
		{"last_row", http.MethodDelete, base + "/tables/0/rows/0", "", http.StatusConflict, "LAST_ROW"},
		{"unknown_column", http.MethodPut, base + "/tables/0/rows/0/cells/zzz", `{"value":"1"}`, http.StatusNotFound, "NOT_FOUND"},
		{"bad_index", http.MethodPost, base + "/tables/x/rows", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_json", http.MethodPost, base + "/tables", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := serve(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, envelope.Code)
		})
	}
}
