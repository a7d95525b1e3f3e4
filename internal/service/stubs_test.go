package service

import (
	"context"
	"errors"
	"testing"

	"ratil/internal/models"
	"ratil/internal/repository"
	"ratil/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	listFn           func(context.Context) ([]models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	updatePasswordFn func(context.Context, uint, string) error
	deleteFn         func(context.Context, uint) error
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn:           func(context.Context) ([]models.User, error) { return nil, nil },
		getByUsernameFn:  func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:         func(context.Context, *models.User) error { return nil },
		updateFn:         func(context.Context, *models.User) error { return nil },
		updatePasswordFn: func(context.Context, uint, string) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
	}
}

type categoryRepoStub struct {
	listCategoriesFn    func(context.Context) ([]models.Category, error)
	getCategoryByNameFn func(context.Context, string) (*models.Category, error)
	getCategoryByIDFn   func(context.Context, uint) (*models.Category, error)
	createCategoryFn    func(context.Context, *models.Category) error
	updateCategoryFn    func(context.Context, *models.Category) error
	deleteCategoryFn    func(context.Context, uint) error
	listSubcategoriesFn func(context.Context, uint) ([]models.Subcategory, error)
	getSubcategoryFn    func(context.Context, uint) (*models.Subcategory, error)
	createSubcategoryFn func(context.Context, *models.Subcategory) error
	updateSubcategoryFn func(context.Context, *models.Subcategory) error
	deleteSubcategoryFn func(context.Context, uint) error
}

func (s *categoryRepoStub) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.listCategoriesFn(ctx)
}
func (s *categoryRepoStub) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getCategoryByNameFn(ctx, name)
}
func (s *categoryRepoStub) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getCategoryByIDFn(ctx, id)
}
func (s *categoryRepoStub) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.createCategoryFn(ctx, c)
}
func (s *categoryRepoStub) UpdateCategory(ctx context.Context, c *models.Category) error {
	return s.updateCategoryFn(ctx, c)
}
func (s *categoryRepoStub) DeleteCategory(ctx context.Context, id uint) error {
	return s.deleteCategoryFn(ctx, id)
}
func (s *categoryRepoStub) ListSubcategories(ctx context.Context, categoryID uint) ([]models.Subcategory, error) {
	return s.listSubcategoriesFn(ctx, categoryID)
}
func (s *categoryRepoStub) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	return s.getSubcategoryFn(ctx, id)
}
func (s *categoryRepoStub) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	return s.createSubcategoryFn(ctx, sub)
}
func (s *categoryRepoStub) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	return s.updateSubcategoryFn(ctx, sub)
}
func (s *categoryRepoStub) DeleteSubcategory(ctx context.Context, id uint) error {
	return s.deleteSubcategoryFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listCategoriesFn: func(context.Context) ([]models.Category, error) { return nil, nil },
		getCategoryByNameFn: func(_ context.Context, name string) (*models.Category, error) {
			return &models.Category{ID: 1, Name: name}, nil
		},
		getCategoryByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id}, nil
		},
		createCategoryFn:    func(context.Context, *models.Category) error { return nil },
		updateCategoryFn:    func(context.Context, *models.Category) error { return nil },
		deleteCategoryFn:    func(context.Context, uint) error { return nil },
		listSubcategoriesFn: func(context.Context, uint) ([]models.Subcategory, error) { return nil, nil },
		getSubcategoryFn: func(_ context.Context, id uint) (*models.Subcategory, error) {
			return &models.Subcategory{ID: id, CategoryID: 1}, nil
		},
		createSubcategoryFn: func(context.Context, *models.Subcategory) error { return nil },
		updateSubcategoryFn: func(context.Context, *models.Subcategory) error { return nil },
		deleteSubcategoryFn: func(context.Context, uint) error { return nil },
	}
}

type contentRepoStub struct {
	listBySubcategoryFn  func(context.Context, uint, string) ([]models.ContentItem, error)
	listAllWithParentsFn func(context.Context) ([]models.ContentItem, error)
	getByIDFn            func(context.Context, uint) (*models.ContentItem, error)
	createFn             func(context.Context, *models.ContentItem) error
	updateFn             func(context.Context, *models.ContentItem) error
	deleteFn             func(context.Context, uint) error
}

func (s *contentRepoStub) ListBySubcategory(ctx context.Context, subID uint, q string) ([]models.ContentItem, error) {
	return s.listBySubcategoryFn(ctx, subID, q)
}
func (s *contentRepoStub) ListAllWithParents(ctx context.Context) ([]models.ContentItem, error) {
	return s.listAllWithParentsFn(ctx)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *contentRepoStub) Create(ctx context.Context, item *models.ContentItem) error {
	return s.createFn(ctx, item)
}
func (s *contentRepoStub) Update(ctx context.Context, item *models.ContentItem) error {
	return s.updateFn(ctx, item)
}
func (s *contentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopContentRepo() *contentRepoStub {
	return &contentRepoStub{
		listBySubcategoryFn:  func(context.Context, uint, string) ([]models.ContentItem, error) { return []models.ContentItem{}, nil },
		listAllWithParentsFn: func(context.Context) ([]models.ContentItem, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.ContentItem, error) {
			return &models.ContentItem{ID: id}, nil
		},
		createFn: func(context.Context, *models.ContentItem) error { return nil },
		updateFn: func(context.Context, *models.ContentItem) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type clientRepoStub struct {
	listFn         func(context.Context, string) ([]models.Client, error)
	getByIDFn      func(context.Context, uint) (*models.Client, error)
	createFn       func(context.Context, *models.Client) error
	updateFieldsFn func(context.Context, uint, map[string]interface{}) (*models.Client, error)
	deleteFn       func(context.Context, uint) error
}

func (s *clientRepoStub) List(ctx context.Context, q string) ([]models.Client, error) {
	return s.listFn(ctx, q)
}
func (s *clientRepoStub) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	return s.getByIDFn(ctx, id)
}
func (s *clientRepoStub) Create(ctx context.Context, c *models.Client) error {
	return s.createFn(ctx, c)
}
func (s *clientRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Client, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *clientRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopClientRepo() *clientRepoStub {
	return &clientRepoStub{
		listFn: func(context.Context, string) ([]models.Client, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Client, error) {
			return &models.Client{ID: id}, nil
		},
		createFn: func(context.Context, *models.Client) error { return nil },
		updateFieldsFn: func(_ context.Context, id uint, _ map[string]interface{}) (*models.Client, error) {
			return &models.Client{ID: id}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type portfolioRepoStub struct {
	listFn         func(context.Context, repository.PortfolioFilter) ([]models.PortfolioItem, error)
	getByIDFn      func(context.Context, uint) (*models.PortfolioItem, error)
	createFn       func(context.Context, *models.PortfolioItem) error
	updateFieldsFn func(context.Context, uint, map[string]interface{}) (*models.PortfolioItem, error)
	deleteFn       func(context.Context, uint) error
}

func (s *portfolioRepoStub) List(ctx context.Context, f repository.PortfolioFilter) ([]models.PortfolioItem, error) {
	return s.listFn(ctx, f)
}
func (s *portfolioRepoStub) GetByID(ctx context.Context, id uint) (*models.PortfolioItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *portfolioRepoStub) Create(ctx context.Context, item *models.PortfolioItem) error {
	return s.createFn(ctx, item)
}
func (s *portfolioRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.PortfolioItem, error) {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *portfolioRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopPortfolioRepo() *portfolioRepoStub {
	return &portfolioRepoStub{
		listFn: func(context.Context, repository.PortfolioFilter) ([]models.PortfolioItem, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.PortfolioItem, error) {
			return &models.PortfolioItem{ID: id}, nil
		},
		createFn: func(context.Context, *models.PortfolioItem) error { return nil },
		updateFieldsFn: func(_ context.Context, id uint, _ map[string]interface{}) (*models.PortfolioItem, error) {
			return &models.PortfolioItem{ID: id}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

// uploaderStub records calls and returns a fixed URL or error.
type uploaderStub struct {
	calls []storage.UploadInput
	url   string
	err   error
}

func (u *uploaderStub) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	u.calls = append(u.calls, in)
	if u.err != nil {
		return nil, u.err
	}
	return &storage.UploadResult{SecureURL: u.url}, nil
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint { return &v }
func boolPtr(b bool) *bool { return &b }
