// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/api"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type readyBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	} `json:"data"`
}

func ok(context.Context) error { return nil }

/*
TestReadiness reports every dependency and degrades on any failure.
*/
func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]api.Check
		status int
		want   string
	}{
		{
			name:   "all_ready",
			checks: map[string]api.Check{"postgres": ok, "redis": ok, "object_storage": ok},
			status: http.StatusOK,
			want:   "ready",
		},
		{
			name: "redis_down",
			checks: map[string]api.Check{
				"postgres": ok,
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			status: http.StatusServiceUnavailable,
			want:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := api.NewHealthHandler(tt.checks, discard)
			recorder := httptest.NewRecorder()

			handler.Readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, recorder.Code)

			var body readyBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Data.Status)
			assert.Len(t, body.Data.Checks, len(tt.checks))

			for _, check := range body.Data.Checks {
				assert.Equal(t, check.Error == "", check.OK, check.Name)
			}
		})
	}
}

/*
TestLiveness always answers 200.
*/
func TestLiveness(t *testing.T) {
	recorder := httptest.NewRecorder()
	api.NewHealthHandler(nil, discard).Liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
