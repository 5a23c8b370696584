// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/konstra/internal/platform/constants"
)

// RedisDraftRepository implements [DraftRepository] using Redis string keys with TTL.
type RedisDraftRepository struct {
	client *redis.Client
}

// NewDraftRepository creates a new Redis-backed [DraftRepository].
func NewDraftRepository(client *redis.Client) *RedisDraftRepository {
	return &RedisDraftRepository{client: client}
}

func draftKey(id string) string {
	return constants.RedisPrefixSpecDraft + id
}

/*
Save stores the JSON form of the document with a sliding TTL.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)
  - document: *Document
  - ttl: time.Duration

Returns:
  - error: Encoding or connectivity errors
*/
func (repository *RedisDraftRepository) Save(context context.Context, id string, document *Document, ttl time.Duration) error {

	payload, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("spec_draft_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, draftKey(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_spec_draft_set_failed: %w", err)
	}

	return nil
}

/*
Get loads a draft document.

Description: Returns apperr.NotFound if the draft is absent or expired.
The document is returned as stored; callers normalize it.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Document: The decoded draft
  - error: apperr.NotFound, decoding or connectivity errors
*/
func (repository *RedisDraftRepository) Get(context context.Context, id string) (*Document, error) {

	payload, err := repository.client.Get(context, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("redis_spec_draft_get_failed: %w", err)
	}

	document := NewDocument()
	if err := json.Unmarshal(payload, document); err != nil {
		return nil, fmt.Errorf("spec_draft_decode_failed: %w", err)
	}

	return document, nil
}

// Delete removes the draft key.
func (repository *RedisDraftRepository) Delete(context context.Context, id string) error {
	if err := repository.client.Del(context, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_spec_draft_delete_failed: %w", err)
	}
	return nil
}
