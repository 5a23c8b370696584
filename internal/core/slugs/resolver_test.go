// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slugs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/konstra/internal/core/slugs"
	"github.com/taibuivan/konstra/internal/platform/apperr"
)

// fakeFinder is an in-memory record store keyed by collection, then slug → record ID.
type fakeFinder struct {
	records map[string]map[string]string
	probes  []string
	err     error
}

func newFakeFinder() *fakeFinder {
	return &fakeFinder{records: map[string]map[string]string{}}
}

func (f *fakeFinder) add(collection, slug, id string) {
	if f.records[collection] == nil {
		f.records[collection] = map[string]string{}
	}
	f.records[collection][slug] = id
}

func (f *fakeFinder) SlugTaken(_ context.Context, collection, candidate, excludeID string) (bool, error) {
	f.probes = append(f.probes, candidate)
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.records[collection][candidate]
	if !ok {
		return false, nil
	}
	return owner != excludeID, nil
}

func newResolver(finder slugs.Finder) *slugs.Resolver {
	return slugs.NewResolver(finder, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestUnique_Suffixing covers the base, -1 and -2 cases.
*/
func TestUnique_Suffixing(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"free_base", nil, "jalan-lingkar-tuban"},
		{"base_taken", []string{"jalan-lingkar-tuban"}, "jalan-lingkar-tuban-1"},
		{"base_and_first_taken", []string{"jalan-lingkar-tuban", "jalan-lingkar-tuban-1"}, "jalan-lingkar-tuban-2"},
		{"gap_is_reused", []string{"jalan-lingkar-tuban", "jalan-lingkar-tuban-2"}, "jalan-lingkar-tuban-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := newFakeFinder()
			for i, s := range tt.existing {
				finder.add("projects", s, string(rune('a'+i)))
			}

			got, err := newResolver(finder).Unique(context.Background(), "projects", "Jalan Lingkar Tuban!!", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestUnique_ScopedPerCollection verifies that collections do not share slugs.
*/
func TestUnique_ScopedPerCollection(t *testing.T) {
	finder := newFakeFinder()
	finder.add("insights", "beton-pracetak", "post-1")

	got, err := newResolver(finder).Unique(context.Background(), "projects", "Beton Pracetak", "")
	require.NoError(t, err)
	assert.Equal(t, "beton-pracetak", got)
}

/*
TestUnique_ExcludesOwnRecord lets a record keep its own slug during an edit.
*/
func TestUnique_ExcludesOwnRecord(t *testing.T) {
	finder := newFakeFinder()
	finder.add("projects", "gedung-serbaguna", "rec-1")

	got, err := newResolver(finder).Unique(context.Background(), "projects", "Gedung Serbaguna", "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "gedung-serbaguna", got)

	got, err = newResolver(finder).Unique(context.Background(), "projects", "Gedung Serbaguna", "rec-2")
	require.NoError(t, err)
	assert.Equal(t, "gedung-serbaguna-1", got)
}

/*
TestUnique_SequentialProbes checks that candidates are probed one at a time, in order.
*/
func TestUnique_SequentialProbes(t *testing.T) {
	finder := newFakeFinder()
	finder.add("projects", "x", "a")
	finder.add("projects", "x-1", "b")

	_, err := newResolver(finder).Unique(context.Background(), "projects", "X", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x-1", "x-2"}, finder.probes)
}

/*
TestUnique_EmptyTitle returns an empty slug without touching the store.
*/
func TestUnique_EmptyTitle(t *testing.T) {
	finder := newFakeFinder()

	got, err := newResolver(finder).Unique(context.Background(), "projects", "!!!", "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, finder.probes)
}

/*
TestUnique_PropagatesStoreError never assumes uniqueness when the store fails.
*/
func TestUnique_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	finder := newFakeFinder()
	finder.err = storeErr

	got, err := newResolver(finder).Unique(context.Background(), "projects", "Anything", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, got)
}

/*
TestEnsure covers the editor override path.
*/
func TestEnsure(t *testing.T) {
	finder := newFakeFinder()
	finder.add("projects", "taken", "rec-1")
	resolver := newResolver(finder)

	t.Run("free", func(t *testing.T) {
		got, err := resolver.Ensure(context.Background(), "projects", "custom-slug", "rec-2")
		require.NoError(t, err)
		assert.Equal(t, "custom-slug", got)
	})

	t.Run("own_slug", func(t *testing.T) {
		got, err := resolver.Ensure(context.Background(), "projects", "taken", "rec-1")
		require.NoError(t, err)
		assert.Equal(t, "taken", got)
	})

	t.Run("conflict", func(t *testing.T) {
		_, err := resolver.Ensure(context.Background(), "projects", "taken", "rec-2")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := resolver.Ensure(context.Background(), "projects", "Not A Slug", "rec-2")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}
