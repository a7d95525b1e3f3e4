package repository

import (
	"context"

	"ratil/internal/models"

	"gorm.io/gorm"
)

// ContentRepository defines storage operations for content items.
type ContentRepository interface {
	ListBySubcategory(ctx context.Context, subcategoryID uint, q string) ([]models.ContentItem, error)
	ListAllWithParents(ctx context.Context) ([]models.ContentItem, error)
	GetByID(ctx context.Context, id uint) (*models.ContentItem, error)
	Create(ctx context.Context, item *models.ContentItem) error
	Update(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a repository implementation for content items.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func errContentNotFound() *models.AppError {
	return models.NewNotFoundMessage("Content item not found")
}

// ListBySubcategory returns the subcategory's items, optionally narrowed to
// those whose title or description contains q, ignoring case.
func (r *contentRepository) ListBySubcategory(ctx context.Context, subcategoryID uint, q string) ([]models.ContentItem, error) {
	items := []models.ContentItem{}
	query := r.db.WithContext(ctx).Where("subcategory_id = ?", subcategoryID)
	query = searchAny(query, q, "title", "description")
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// ListAllWithParents loads every item with its subcategory and category
// eagerly, one query per level.
func (r *contentRepository) ListAllWithParents(ctx context.Context) ([]models.ContentItem, error) {
	items := []models.ContentItem{}
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translateError(err, errContentNotFound(), "")
	}
	return &item, nil
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	res := r.db.WithContext(ctx).Model(&models.ContentItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"title":       item.Title,
			"description": item.Description,
			"image_url":   item.ImageURL,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errContentNotFound()
	}
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ContentItem{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errContentNotFound()
	}
	return nil
}
