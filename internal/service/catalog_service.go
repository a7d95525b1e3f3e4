package service

import (
	"context"
	"strings"

	"ratil/internal/cache"
	"ratil/internal/models"
	"ratil/internal/repository"
	"ratil/internal/storage"
)

// CatalogService manages categories, subcategories and their content items.
type CatalogService struct {
	categories    repository.CategoryRepository
	content       repository.ContentRepository
	uploader      storage.Uploader
	contentFolder string
}

type ContentInput struct {
	Title       string
	Description string
	File        *storage.File
}

// ContentUpdate carries the optional fields of a content item update. A nil
// field keeps its stored value; a new file replaces the stored URL.
type ContentUpdate struct {
	Title       *string
	Description *string
	File        *storage.File
}

func NewCatalogService(
	categories repository.CategoryRepository,
	content repository.ContentRepository,
	uploader storage.Uploader,
	contentFolder string,
) *CatalogService {
	return &CatalogService{
		categories:    categories,
		content:       content,
		uploader:      uploader,
		contentFolder: contentFolder,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.ListTTL, func() error {
		var err error
		categories, err = s.categories.ListCategories(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, displayName string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category := &models.Category{Name: name, DisplayName: strings.TrimSpace(displayName)}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	cache.InvalidateCategories(ctx)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, name, displayName string) (*models.Category, error) {
	category, err := s.categories.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}

	category.DisplayName = strings.TrimSpace(displayName)
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	cache.InvalidateCategories(ctx)
	return category, nil
}

// DeleteCategory removes the category and everything it owns.
func (s *CatalogService) DeleteCategory(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.categories.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.DeleteCategory(ctx, category.ID); err != nil {
		return nil, err
	}
	cache.InvalidateCategories(ctx)
	cache.InvalidateSubcategories(ctx, category.ID)
	return category, nil
}

func (s *CatalogService) ListSubcategories(ctx context.Context, categoryName string) ([]models.Subcategory, error) {
	category, err := s.categories.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	subs := []models.Subcategory{}
	err = cache.Aside(ctx, cache.SubcategoriesKey(category.ID), &subs, cache.ListTTL, func() error {
		var err error
		subs, err = s.categories.ListSubcategories(ctx, category.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, categoryName, name string) (*models.Subcategory, error) {
	category, err := s.categories.GetCategoryByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	sub := &models.Subcategory{Name: strings.TrimSpace(name), CategoryID: category.ID}
	if err := s.categories.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	cache.InvalidateSubcategories(ctx, category.ID)
	return sub, nil
}

// UpdateSubcategory renames a subcategory. It is addressed by id alone; the
// category in the URL is not consulted.
func (s *CatalogService) UpdateSubcategory(ctx context.Context, id uint, name string) (*models.Subcategory, error) {
	sub, err := s.categories.GetSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Name = strings.TrimSpace(name)
	if err := s.categories.UpdateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	cache.InvalidateSubcategories(ctx, sub.CategoryID)
	return sub, nil
}

// DeleteSubcategory removes a subcategory with all of its items.
func (s *CatalogService) DeleteSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	sub, err := s.categories.GetSubcategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.categories.DeleteSubcategory(ctx, id); err != nil {
		return nil, err
	}
	cache.InvalidateSubcategories(ctx, sub.CategoryID)
	return sub, nil
}

// ListContent returns a subcategory's items matching q. An unknown
// subcategory yields an empty list, not an error.
func (s *CatalogService) ListContent(ctx context.Context, subcategoryID uint, q string) ([]models.ContentItem, error) {
	if _, err := s.categories.GetSubcategory(ctx, subcategoryID); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return []models.ContentItem{}, nil
		}
		return nil, err
	}
	return s.content.ListBySubcategory(ctx, subcategoryID, q)
}

// CreateContent adds an item to a subcategory, uploading the file first when
// one is given. A failed upload aborts before any row is written.
func (s *CatalogService) CreateContent(ctx context.Context, subcategoryID uint, in ContentInput) (*models.ContentItem, error) {
	if _, err := s.categories.GetSubcategory(ctx, subcategoryID); err != nil {
		return nil, err
	}

	url, err := storage.Resolve(ctx, s.uploader, in.File, "", s.contentFolder, false)
	if err != nil {
		return nil, err
	}

	item := &models.ContentItem{
		Title:         in.Title,
		Description:   in.Description,
		ImageURL:      url,
		SubcategoryID: subcategoryID,
	}
	if err := s.content.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateContent applies the present fields. A title that is sent must not be
// blank; it is checked before any upload.
func (s *CatalogService) UpdateContent(ctx context.Context, itemID uint, in ContentUpdate) (*models.ContentItem, error) {
	item, err := s.content.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, models.NewValidationError("Title cannot be empty")
	}

	if in.File != nil {
		url, err := storage.Resolve(ctx, s.uploader, in.File, "", s.contentFolder, false)
		if err != nil {
			return nil, err
		}
		item.ImageURL = url
	}
	if in.Title != nil {
		item.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}

	if err := s.content.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) DeleteContent(ctx context.Context, itemID uint) (*models.ContentItem, error) {
	item, err := s.content.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.content.Delete(ctx, itemID); err != nil {
		return nil, err
	}
	return item, nil
}

// ListAdminContent returns every item flattened with its subcategory and
// category names.
func (s *CatalogService) ListAdminContent(ctx context.Context) ([]models.AdminContentItem, error) {
	items, err := s.content.ListAllWithParents(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.AdminContentItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.NewAdminContentItem(item))
	}
	return out, nil
}
