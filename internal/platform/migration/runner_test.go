// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/konstra/internal/platform/migration"
)

/*
TestPgx5URL rewrites only the postgres schemes.
*/
func TestPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/konstra?sslmode=disable", "pgx5://u:p@db:5432/konstra?sslmode=disable"},
		{"postgresql://u@db/konstra", "pgx5://u@db/konstra"},
		{"pgx5://u@db/konstra", "pgx5://u@db/konstra"},
		{"host=db user=u dbname=konstra", "host=db user=u dbname=konstra"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5URL(tt.in))
		})
	}
}
