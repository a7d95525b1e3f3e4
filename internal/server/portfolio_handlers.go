package server

import (
	"strings"

	"ratil/internal/models"
	"ratil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PortfolioUpdateRequest is the body of PUT /api/portfolio/items/{id}. A
// client_id of 0 detaches the item from its client.
type PortfolioUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ClientID    *uint   `json:"client_id"`
	CategoryID  *uint   `json:"category_id"`
}

type portfolioUploadForm struct {
	Title      string `form:"title" validate:"required"`
	CategoryID uint   `form:"category_id" validate:"required"`
	LinkURL    string `form:"link_url"`
}

// GetPortfolioItems handles GET /api/portfolio/items
// @Summary List portfolio items
// @Description Newest first. Dates use YYYY-MM-DD and the range is inclusive.
// @Tags portfolio
// @Produce json
// @Param category_id query int false "Category ID"
// @Param client_id query int false "Client ID"
// @Param start_date query string false "First upload day"
// @Param end_date query string false "Last upload day"
// @Param q query string false "Search over title and description"
// @Success 200 {array} models.PortfolioItem
// @Failure 400 {object} models.ErrorResponse
// @Router /portfolio/items [get]
func (s *Server) GetPortfolioItems(c *fiber.Ctx) error {
	categoryID := c.QueryInt("category_id", 0)
	clientID := c.QueryInt("client_id", 0)
	if categoryID < 0 || clientID < 0 {
		return respondError(c, models.NewValidationError("Invalid filter"))
	}

	items, err := s.portfolioService.ListItems(c.UserContext(), service.PortfolioQuery{
		CategoryID: uint(categoryID),
		ClientID:   uint(clientID),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Q:          c.Query("q"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetPortfolioItem handles GET /api/portfolio/items/:id
// @Summary Get portfolio item
// @Tags portfolio
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.PortfolioItem
// @Failure 404 {object} models.ErrorResponse
// @Router /portfolio/items/{id} [get]
func (s *Server) GetPortfolioItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.portfolioService.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// UploadPortfolioItem handles POST /api/portfolio/upload
// @Summary Upload portfolio item
// @Description Multipart form with either a file or a link_url. A file wins when both are sent.
// @Tags portfolio
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param category_id formData int true "Category ID"
// @Param description formData string false "Description"
// @Param client_id formData int false "Client ID"
// @Param link_url formData string false "External link"
// @Param file formData file false "Media file"
// @Success 201 {object} models.PortfolioItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /portfolio/upload [post]
func (s *Server) UploadPortfolioItem(c *fiber.Ctx) error {
	var form portfolioUploadForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}

	clientID, err := optionalFormUint(c, "client_id")
	if err != nil {
		return respondError(c, err)
	}

	file, closeFile, err := formFile(c, "file")
	if err != nil {
		return respondError(c, err)
	}
	defer closeFile()

	item, err := s.portfolioService.Upload(c.UserContext(), service.UploadPortfolioInput{
		Title:       strings.TrimSpace(form.Title),
		Description: optionalFormValue(c, "description"),
		CategoryID:  form.CategoryID,
		ClientID:    clientID,
		LinkURL:     form.LinkURL,
		File:        file,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdatePortfolioItem handles PUT /api/portfolio/items/:id
// @Summary Update portfolio item
// @Tags portfolio
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body PortfolioUpdateRequest true "Fields to change"
// @Success 200 {object} models.PortfolioItem
// @Failure 404 {object} models.ErrorResponse
// @Router /portfolio/items/{id} [put]
func (s *Server) UpdatePortfolioItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req PortfolioUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	item, err := s.portfolioService.UpdateItem(c.UserContext(), id, service.PortfolioUpdate{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeletePortfolioItem handles DELETE /api/portfolio/items/:id
// @Summary Delete portfolio item
// @Tags portfolio
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /portfolio/items/{id} [delete]
func (s *Server) DeletePortfolioItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.portfolioService.DeleteItem(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return success(c, "Portfolio item deleted successfully")
}
