// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spectable

import (
	"context"
	"time"
)

// # Repository Interface

// DraftRepository holds in-progress specification documents between edit requests.
type DraftRepository interface {
	// Save stores the document under id, resetting its expiry to ttl.
	Save(context context.Context, id string, document *Document, ttl time.Duration) error

	// Get returns the stored document, or apperr.NotFound once it has expired.
	Get(context context.Context, id string) (*Document, error)

	// Delete removes the draft. Deleting an absent draft is not an error.
	Delete(context context.Context, id string) error
}
