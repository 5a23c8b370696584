// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed names, limits and timings shared across packages.
package constants

import "time"

// AppName tags every log record.
const AppName = "konstra-cms"

// # Server Timing

const (
	// DefaultReadTimeout leaves room for multipart image uploads.
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds handlers and each SQL statement.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests.
	ShutdownTimeout = 20 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS and DefaultRateLimitBurst apply per client IP.
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 60

	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is the idle time after which a client's bucket is dropped.
	RateLimitClientTTL = 5 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Response Fields

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Storage Names

const (
	// SchemaCore is the PostgreSQL schema of the content tables.
	SchemaCore = "core"

	CollectionProjects = "projects"
	CollectionInsights = "insights"

	// RedisPrefixSpecDraft namespaces specification drafts: cms:spec_draft:<uuid>.
	RedisPrefixSpecDraft = "cms:spec_draft:"
)
