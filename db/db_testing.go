//go:build testing

package db

import (
	"context"
	"path/filepath"
	"testing"

	"fuzzydates/config"
	"fuzzydates/db/dbw"

	"github.com/stretchr/testify/require"
)

// OpenTest returns a pool on a fresh, fully migrated sqlite database that lives as long as the test.
func OpenTest(t *testing.T) *dbw.Pool {
	t.Helper()

	cfg := config.SqliteConfig(filepath.Join(t.TempDir(), "test.db"))
	pool, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Close()
	})

	_, err = Migrate(pool)
	require.NoError(t, err)
	return pool
}
