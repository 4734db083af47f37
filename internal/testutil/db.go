// Package testutil 提供测试用的内存数据库
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"perapera/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 为每个测试创建独立的内存 SQLite，完成迁移和标签 seed
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	cfg := db.Config()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	conn, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// 单连接：事务内外不会互相锁表
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Setup(conn), "Failed to migrate database schema")

	t.Cleanup(func() {
		_ = db.Close(conn)
	})
	return conn
}
