package repository

import (
	"context"

	"ratil/internal/database"
	"ratil/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines storage operations for the category hierarchy:
// categories and their subcategories.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	ListSubcategories(ctx context.Context, categoryID uint) ([]models.Subcategory, error)
	GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error)
	CreateSubcategory(ctx context.Context, sub *models.Subcategory) error
	UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error
	DeleteSubcategory(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a repository implementation for categories.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func errCategoryNotFound() *models.AppError {
	return models.NewNotFoundMessage("Category not found")
}

func errSubcategoryNotFound() *models.AppError {
	return models.NewNotFoundMessage("Subcategory not found")
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translateError(err, errCategoryNotFound(), "")
	}
	return &category, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err, errCategoryNotFound(), "")
	}
	return &category, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	return translateError(err, nil, "Category already exists")
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Update("display_name", category.DisplayName)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errCategoryNotFound()
	}
	return nil
}

// DeleteCategory removes a category with its subcategories, their content
// items and the category's portfolio items, children first, in one transaction.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id uint) error {
	err := database.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		subIDs := tx.Model(&models.Subcategory{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("subcategory_id IN (?)", subIDs).Delete(&models.ContentItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.PortfolioItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	return translateError(err, errCategoryNotFound(), "")
}

func (r *categoryRepository) ListSubcategories(ctx context.Context, categoryID uint) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&subs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}

func (r *categoryRepository) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, translateError(err, errSubcategoryNotFound(), "")
	}
	return &sub, nil
}

func (r *categoryRepository) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *categoryRepository) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	res := r.db.WithContext(ctx).Model(&models.Subcategory{}).
		Where("id = ?", sub.ID).
		Update("name", sub.Name)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errSubcategoryNotFound()
	}
	return nil
}

// DeleteSubcategory removes a subcategory and its content items in one transaction.
func (r *categoryRepository) DeleteSubcategory(ctx context.Context, id uint) error {
	err := database.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var sub models.Subcategory
		if err := tx.First(&sub, id).Error; err != nil {
			return err
		}
		if err := tx.Where("subcategory_id = ?", id).Delete(&models.ContentItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sub).Error
	})
	return translateError(err, errSubcategoryNotFound(), "")
}
