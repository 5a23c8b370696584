// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage builds the S3 client used for uploaded images.

The same client talks to AWS S3, Cloudflare R2 or a local MinIO. A custom
endpoint switches the client to path-style addressing, which R2 and MinIO
expect.
*/
package storage

import (
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options describes the bucket endpoint and credentials.
type Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

/*
NewClient constructs an S3 client from static credentials.

Description: Without credentials the client signs nothing and can only read
public buckets; a warning is logged so a missing secret is noticed early.

Parameters:
  - options: Options
  - logger: *slog.Logger

Returns:
  - *s3.Client
*/
func NewClient(options Options, logger *slog.Logger) *s3.Client {
	s3Options := s3.Options{
		Region: options.Region,
	}

	if options.AccessKeyID != "" && options.SecretAccessKey != "" {
		s3Options.Credentials = credentials.NewStaticCredentialsProvider(options.AccessKeyID, options.SecretAccessKey, "")
	} else {
		s3Options.Credentials = aws.AnonymousCredentials{}
		logger.Warn("object_storage_anonymous", slog.String("region", options.Region))
	}

	if endpoint := strings.TrimRight(options.Endpoint, "/"); endpoint != "" {
		s3Options.BaseEndpoint = aws.String(endpoint)
		s3Options.UsePathStyle = true
	}

	logger.Info("object_storage_configured",
		slog.String("region", options.Region),
		slog.Bool("custom_endpoint", s3Options.BaseEndpoint != nil),
	)

	return s3.New(s3Options)
}
