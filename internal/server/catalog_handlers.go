package server

import (
	"fmt"
	"strings"

	"ratil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCategoryRequest is the body of POST /api/admin/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	DisplayName string `json:"display_name"`
}

// UpdateCategoryRequest is the body of PUT /api/admin/categories/{category}.
type UpdateCategoryRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}

// SubcategoryRequest is the body of subcategory create and rename calls.
type SubcategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// GetCategories handles GET /api/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.catalogService.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// CreateCategory handles POST /api/admin/categories
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.catalogService.CreateCategory(c.UserContext(), req.Name, req.DisplayName)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/admin/categories/:category
// @Summary Change a category's display name
// @Tags categories
// @Accept json
// @Produce json
// @Param category path string true "Category name"
// @Param request body UpdateCategoryRequest true "Display name"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{category} [put]
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	var req UpdateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.catalogService.UpdateCategory(c.UserContext(), c.Params("category"), req.DisplayName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:category
// @Summary Delete category
// @Description Removes the category with its subcategories, their items and its portfolio items.
// @Tags categories
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{category} [delete]
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	category, err := s.catalogService.DeleteCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("Category '%s' and all its content deleted successfully", category.Name))
}

// GetSubcategories handles GET /api/content/:category/subcategories
// @Summary List subcategories of a category
// @Tags content
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {array} models.Subcategory
// @Failure 404 {object} models.ErrorResponse
// @Router /content/{category}/subcategories [get]
func (s *Server) GetSubcategories(c *fiber.Ctx) error {
	subs, err := s.catalogService.ListSubcategories(c.UserContext(), c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subs)
}

// CreateSubcategory handles POST /api/content/:category/subcategories
// @Summary Create subcategory
// @Tags content
// @Accept json
// @Produce json
// @Param category path string true "Category name"
// @Param request body SubcategoryRequest true "Subcategory"
// @Success 201 {object} models.Subcategory
// @Failure 404 {object} models.ErrorResponse
// @Router /content/{category}/subcategories [post]
func (s *Server) CreateSubcategory(c *fiber.Ctx) error {
	var req SubcategoryRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	sub, err := s.catalogService.CreateSubcategory(c.UserContext(), c.Params("category"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// UpdateSubcategory handles PUT /api/content/:category/subcategories/:subcategoryId
// @Summary Rename subcategory
// @Tags content
// @Accept json
// @Produce json
// @Param category path string true "Category name"
// @Param subcategoryId path int true "Subcategory ID"
// @Param request body SubcategoryRequest true "Subcategory"
// @Success 200 {object} models.Subcategory
// @Failure 404 {object} models.ErrorResponse
// @Router /content/{category}/subcategories/{subcategoryId} [put]
func (s *Server) UpdateSubcategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "subcategoryId")
	if err != nil {
		return nil
	}

	var req SubcategoryRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	sub, err := s.catalogService.UpdateSubcategory(c.UserContext(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// DeleteSubcategory handles DELETE /api/content/:category/subcategories/:subcategoryId
// @Summary Delete subcategory
// @Description Removes the subcategory and all of its content items.
// @Tags content
// @Produce json
// @Param category path string true "Category name"
// @Param subcategoryId path int true "Subcategory ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /content/{category}/subcategories/{subcategoryId} [delete]
func (s *Server) DeleteSubcategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "subcategoryId")
	if err != nil {
		return nil
	}

	sub, err := s.catalogService.DeleteSubcategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("Subcategory '%s' and all its items deleted successfully", sub.Name))
}

// GetContentItems handles GET /api/content/:category/:subcategoryId
// @Summary List content items
// @Description Unknown subcategories yield an empty list. q matches title or description.
// @Tags content
// @Produce json
// @Param category path string true "Category name"
// @Param subcategoryId path int true "Subcategory ID"
// @Param q query string false "Search text"
// @Success 200 {array} models.ContentItem
// @Router /content/{category}/{subcategoryId} [get]
func (s *Server) GetContentItems(c *fiber.Ctx) error {
	id, err := s.parseID(c, "subcategoryId")
	if err != nil {
		return nil
	}

	items, err := s.catalogService.ListContent(c.UserContext(), id, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

type contentForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
}

// CreateContentItem handles POST /api/content/:category/:subcategoryId
// @Summary Add content item
// @Description Multipart form. The optional file is uploaded to the asset host before the item is stored.
// @Tags content
// @Accept mpfd
// @Produce json
// @Param category path string true "Category name"
// @Param subcategoryId path int true "Subcategory ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file false "Image or video"
// @Success 201 {object} models.ContentItem
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /content/{category}/{subcategoryId} [post]
func (s *Server) CreateContentItem(c *fiber.Ctx) error {
	subID, err := s.parseID(c, "subcategoryId")
	if err != nil {
		return nil
	}

	var form contentForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}

	file, closeFile, err := formFile(c, "file")
	if err != nil {
		return respondError(c, err)
	}
	defer closeFile()

	item, err := s.catalogService.CreateContent(c.UserContext(), subID, service.ContentInput{
		Title:       strings.TrimSpace(form.Title),
		Description: form.Description,
		File:        file,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateContentItem handles PUT /api/content/:category/:subcategoryId/:itemId
// @Summary Update content item
// @Description Multipart form. Fields that are sent replace stored values; a new file replaces the image URL.
// @Tags content
// @Accept mpfd
// @Produce json
// @Param category path string true "Category name"
// @Param subcategoryId path int true "Subcategory ID"
// @Param itemId path int true "Item ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param file formData file false "Image or video"
// @Success 200 {object} models.ContentItem
// @Failure 404 {object} models.ErrorResponse
// @Router /content/{category}/{subcategoryId}/{itemId} [put]
func (s *Server) UpdateContentItem(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	file, closeFile, err := formFile(c, "file")
	if err != nil {
		return respondError(c, err)
	}
	defer closeFile()

	item, err := s.catalogService.UpdateContent(c.UserContext(), itemID, service.ContentUpdate{
		Title:       optionalFormValue(c, "title"),
		Description: optionalFormValue(c, "description"),
		File:        file,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteContentItem handles DELETE /api/content/:category/:subcategoryId/:itemId
// @Summary Delete content item
// @Tags content
// @Produce json
// @Param category path string true "Category name"
// @Param subcategoryId path int true "Subcategory ID"
// @Param itemId path int true "Item ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /content/{category}/{subcategoryId}/{itemId} [delete]
func (s *Server) DeleteContentItem(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	item, err := s.catalogService.DeleteContent(c.UserContext(), itemID)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("Item '%s' deleted successfully", item.Title))
}

// GetAdminContent handles GET /api/admin/content
// @Summary List every content item with its category and subcategory
// @Tags admin
// @Produce json
// @Success 200 {array} models.AdminContentItem
// @Router /admin/content [get]
func (s *Server) GetAdminContent(c *fiber.Ctx) error {
	items, err := s.catalogService.ListAdminContent(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
