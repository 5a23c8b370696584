// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/konstra/internal/platform/constants"
	"github.com/taibuivan/konstra/internal/platform/respond"
)

// readinessTimeout bounds the whole readiness probe.
const readinessTimeout = 3 * time.Second

// Check pings one backing service.
type Check func(context context.Context) error

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks map[string]Check
	logger *slog.Logger
}

// NewHealthHandler creates a [HealthHandler]. checks maps a dependency name
// ("postgres", "redis", "object_storage") to its ping.
func NewHealthHandler(checks map[string]Check, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Liveness handles GET /health. It answers 200 while the process runs.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

/*
Readiness handles GET /ready.

Description: Every dependency is pinged concurrently. Any failure turns the
response into 503 with status "degraded".

Response:
  - 200: {status: "ready", checks: [...]}
  - 503: {status: "degraded", checks: [...]}
*/
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	probeContext, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	results := make([]checkResult, len(handler.checks))
	names := sortedNames(handler.checks)

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = checkResult{Name: name, OK: true}
			if err := handler.checks[name](probeContext); err != nil {
				results[i].OK = false
				results[i].Error = err.Error()
				handler.logger.Error("readiness_check_failed",
					slog.String("dependency", name),
					slog.Any("error", err),
				)
			}
		}()
	}
	wg.Wait()

	status, httpStatus := "ready", http.StatusOK
	for _, result := range results {
		if !result.OK {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}

func sortedNames(checks map[string]Check) []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
