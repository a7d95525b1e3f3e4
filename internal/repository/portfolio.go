package repository

import (
	"context"
	"time"

	"ratil/internal/models"

	"gorm.io/gorm"
)

// PortfolioFilter narrows a portfolio listing. Zero values are ignored.
// Start and End bound upload_date inclusively.
type PortfolioFilter struct {
	CategoryID uint
	ClientID   uint
	Start      *time.Time
	End        *time.Time
	Query      string
}

// PortfolioRepository defines storage operations for portfolio items.
type PortfolioRepository interface {
	List(ctx context.Context, filter PortfolioFilter) ([]models.PortfolioItem, error)
	GetByID(ctx context.Context, id uint) (*models.PortfolioItem, error)
	Create(ctx context.Context, item *models.PortfolioItem) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.PortfolioItem, error)
	Delete(ctx context.Context, id uint) error
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository returns a repository implementation for portfolio items.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func errPortfolioItemNotFound() *models.AppError {
	return models.NewNotFoundMessage("Portfolio item not found")
}

// List returns matching items newest first, with client and category loaded.
func (r *portfolioRepository) List(ctx context.Context, filter PortfolioFilter) ([]models.PortfolioItem, error) {
	items := []models.PortfolioItem{}
	query := r.db.WithContext(ctx).Preload("Client").Preload("Category")

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.Start != nil {
		query = query.Where("upload_date >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("upload_date <= ?", *filter.End)
	}
	query = searchAny(query, filter.Query, "title", "description")

	if err := query.Order("upload_date DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *portfolioRepository) GetByID(ctx context.Context, id uint) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Category").
		First(&item, id).Error
	if err != nil {
		return nil, translateError(err, errPortfolioItemNotFound(), "")
	}
	return &item, nil
}

func (r *portfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	if err := r.db.WithContext(ctx).Omit("Client", "Category").Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UpdateFields writes only the given columns and returns the reloaded item.
func (r *portfolioRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.PortfolioItem, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.PortfolioItem{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, errPortfolioItemNotFound()
		}
	}
	return r.GetByID(ctx, id)
}

func (r *portfolioRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PortfolioItem{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errPortfolioItemNotFound()
	}
	return nil
}
