// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/platform/config"
)

/*
TestLoad_Defaults verifies that optional settings fall back to their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/konstra")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, 2*time.Hour, cfg.DraftTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_MissingRequired verifies that required variables are enforced.
*/
func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv restores the variable after the test; unset it for the duration.
	t.Setenv("DATABASE_URL", "unused")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_RejectsInvalidValues reports values the env tags accept but the server cannot use.
*/
func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative_public_base", "S3_PUBLIC_BASE_URL", "cdn.example.com"},
		{"zero_draft_ttl", "DRAFT_TTL", "0s"},
		{"negative_upload_limit", "MAX_UPLOAD_BYTES", "-1"},
		{"hostname_proxy", "TRUSTED_PROXIES", "10.0.0.0/8,proxy.internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost:5432/konstra")
			t.Setenv("REDIS_URL", "redis://localhost:6379/0")
			t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

/*
TestLoad_TrustedProxies parses CIDR blocks and single addresses.
*/
func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/konstra")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10")

	cfg, err := config.Load()
	require.NoError(t, err)

	prefixes := cfg.ProxyPrefixes()
	require.Len(t, prefixes, 2)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.10/32", prefixes[1].String())
}
