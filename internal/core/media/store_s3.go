// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithy "github.com/aws/smithy-go"
)

// S3Store implements [ObjectStore] on an S3-compatible bucket (AWS S3, Cloudflare R2, MinIO).
type S3Store struct {
	client     *s3.Client
	publicBase string
}

// NewS3Store creates an [S3Store]. Objects are served from <publicBaseURL>/<bucket>/<key>.
func NewS3Store(client *s3.Client, publicBaseURL string) *S3Store {
	return &S3Store{
		client:     client,
		publicBase: strings.TrimRight(publicBaseURL, "/"),
	}
}

// PublicURL joins the public base, bucket and the path-escaped key.
func (store *S3Store) PublicURL(bucket, key string) string {
	return store.publicBase + store.PublicPathSegment(bucket) + escapeKey(key)
}

// PublicPathSegment returns "/<bucket>/".
func (store *S3Store) PublicPathSegment(bucket string) string {
	return "/" + bucket + "/"
}

/*
Exists checks for an object with HeadObject.

Parameters:
  - context: context.Context
  - bucket: string
  - key: string

Returns:
  - bool: true if the object exists
  - error: Connectivity or permission errors
*/
func (store *S3Store) Exists(context context.Context, bucket, key string) (bool, error) {
	_, err := store.client.HeadObject(context, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("s3_head_object_failed: %w", err)
	}
	return true, nil
}

// Put uploads an object with an explicit length and content type.
func (store *S3Store) Put(context context.Context, bucket, key, contentType string, body io.ReadSeeker, size int64) error {
	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("s3_put_object_failed: %w", err)
	}
	return nil
}

/*
Delete removes an object.

Description: S3 itself answers 204 for absent keys, but some compatible
backends report NoSuchKey; both are treated as success.

Parameters:
  - context: context.Context
  - bucket: string
  - key: string

Returns:
  - error: Connectivity or permission errors
*/
func (store *S3Store) Delete(context context.Context, bucket, key string) error {
	_, err := store.client.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("s3_delete_object_failed: %w", err)
	}
	return nil
}

// Ping verifies the bucket is reachable with the configured credentials.
func (store *S3Store) Ping(context context.Context, bucket string) error {
	if _, err := store.client.HeadBucket(context, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return fmt.Errorf("s3_head_bucket_failed: %w", err)
	}
	return nil
}

// isNotFound matches the typed and generic not-found errors of S3 and compatible APIs.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// escapeKey path-escapes every segment of a key, keeping the "/" separators.
func escapeKey(key string) string {
	if key == "" {
		return ""
	}
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
