// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/konstra/pkg/slice"
)

/*
TestMap preserves order and nil-ness.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))
}

/*
TestFilter keeps matching elements in order.
*/
func TestFilter(t *testing.T) {
	nonEmpty := func(s string) bool { return s != "" }
	assert.Equal(t, []string{"a", "c"}, slice.Filter([]string{"a", "", "c"}, nonEmpty))
	assert.Empty(t, slice.Filter([]string{""}, nonEmpty))
}

/*
TestWithout removes every excluded element, duplicates included.
*/
func TestWithout(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		exclude []string
		want    []string
	}{
		{"disjoint", []string{"a", "b"}, []string{"c"}, []string{"a", "b"}},
		{"partial", []string{"cover.jpg", "g1.jpg", "g2.jpg"}, []string{"g1.jpg"}, []string{"cover.jpg", "g2.jpg"}},
		{"duplicates", []string{"a", "a", "b"}, []string{"a"}, []string{"b"}},
		{"all_excluded", []string{"a"}, []string{"a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slice.Without(tt.input, tt.exclude))
		})
	}
}
