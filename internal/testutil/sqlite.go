package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	infraDB "library-catalog/internal/infrastructure/database"
)

// OpenSQLite returns a migrated, file-backed SQLite database private to t
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infraDB.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
