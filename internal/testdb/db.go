// Package testdb provides an isolated in-memory database for tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"task-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New opens a fresh in-memory sqlite database named after the test and
// migrates every model into it.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := models.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
