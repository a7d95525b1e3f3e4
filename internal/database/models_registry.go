package database

import "ratil/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models,
// parents before children.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.ContentItem{},
		&models.Client{},
		&models.PortfolioItem{},
	}
}
