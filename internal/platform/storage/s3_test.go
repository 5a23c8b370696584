// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/platform/storage"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

/*
TestNewClient_CustomEndpoint switches to path-style addressing.
*/
func TestNewClient_CustomEndpoint(t *testing.T) {
	client := storage.NewClient(storage.Options{
		Region:          "auto",
		Endpoint:        "https://account.r2.cloudflarestorage.com/",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}, logger)

	options := client.Options()
	assert.Equal(t, "auto", options.Region)
	require.NotNil(t, options.BaseEndpoint)
	assert.Equal(t, "https://account.r2.cloudflarestorage.com", *options.BaseEndpoint)
	assert.True(t, options.UsePathStyle)

	creds, err := options.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

/*
TestNewClient_DefaultEndpoint keeps virtual-host addressing and falls back to anonymous access.
*/
func TestNewClient_DefaultEndpoint(t *testing.T) {
	options := storage.NewClient(storage.Options{Region: "ap-southeast-3"}, logger).Options()

	assert.Nil(t, options.BaseEndpoint)
	assert.False(t, options.UsePathStyle)
	assert.IsType(t, aws.AnonymousCredentials{}, options.Credentials)
}
