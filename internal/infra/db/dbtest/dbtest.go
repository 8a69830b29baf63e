// Package dbtest はテスト用のsqlite DBを作る。
package dbtest

import (
	"path/filepath"
	"testing"

	"makeupsales/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open はテストごとに別ファイルのDBを作りマイグレーション済みで返す
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)

	_, err = db.Migrate(gdb)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
