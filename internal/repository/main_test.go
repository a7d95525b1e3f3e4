package repository

import (
	"testing"

	"ratil/internal/database"
	"ratil/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB returns a migrated in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// setupMockDB returns a postgres-dialect gorm handle backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func strPtr(s string) *string { return &s }

// seedChain creates category -> subcategory -> item and returns them.
func seedChain(t *testing.T, db *gorm.DB, categoryName string) (*models.Category, *models.Subcategory, *models.ContentItem) {
	t.Helper()
	category := &models.Category{Name: categoryName, DisplayName: categoryName}
	require.NoError(t, db.Create(category).Error)
	sub := &models.Subcategory{Name: "sub-" + categoryName, CategoryID: category.ID}
	require.NoError(t, db.Create(sub).Error)
	item := &models.ContentItem{Title: "Banner Design", Description: "Large outdoor print", SubcategoryID: sub.ID}
	require.NoError(t, db.Create(item).Error)
	return category, sub, item
}
