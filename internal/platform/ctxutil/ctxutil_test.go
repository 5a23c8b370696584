// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/konstra/internal/platform/ctxutil"
)

/*
TestRequestID round-trips the correlation ID.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0192f5c4-8f1e-7a3b-9c2d-4e5f6a7b8c9d")
	assert.Equal(t, "0192f5c4-8f1e-7a3b-9c2d-4e5f6a7b8c9d", ctxutil.GetRequestID(ctx))
}

/*
TestClientIP keeps the address apart from the request ID.
*/
func TestClientIP(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	assert.Empty(t, ctxutil.GetClientIP(ctx))

	ctx = ctxutil.WithClientIP(ctx, "203.0.113.7")
	assert.Equal(t, "203.0.113.7", ctxutil.GetClientIP(ctx))
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestLogger falls back to the default logger until one is attached.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))

	var missing *slog.Logger
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctxutil.WithLogger(ctx, missing)))
}
