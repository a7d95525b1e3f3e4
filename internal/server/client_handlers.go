package server

import (
	"ratil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ClientRequest is the body of client create and update calls. On update,
// omitted fields keep their stored values.
type ClientRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Email         *string `json:"email"`
}

func (r ClientRequest) input() service.ClientInput {
	return service.ClientInput{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Address:       r.Address,
		Email:         r.Email,
	}
}

// GetClients handles GET /api/clients
// @Summary List clients
// @Tags clients
// @Produce json
// @Param q query string false "Search over name, address and contact person"
// @Success 200 {array} models.Client
// @Router /clients [get]
func (s *Server) GetClients(c *fiber.Ctx) error {
	clients, err := s.clientService.ListClients(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clients)
}

// GetClient handles GET /api/clients/:id
// @Summary Get client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} models.ErrorResponse
// @Router /clients/{id} [get]
func (s *Server) GetClient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	client, err := s.clientService.GetClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// CreateClient handles POST /api/clients
// @Summary Create client
// @Description A missing or blank name is replaced by a generated placeholder.
// @Tags clients
// @Accept json
// @Produce json
// @Param request body ClientRequest true "Client"
// @Success 201 {object} models.Client
// @Failure 409 {object} models.ErrorResponse
// @Router /clients [post]
func (s *Server) CreateClient(c *fiber.Ctx) error {
	var req ClientRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	client, err := s.clientService.CreateClient(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// UpdateClient handles PUT /api/clients/:id
// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param request body ClientRequest true "Fields to change"
// @Success 200 {object} models.Client
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /clients/{id} [put]
func (s *Server) UpdateClient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req ClientRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	client, err := s.clientService.UpdateClient(c.UserContext(), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// DeleteClient handles DELETE /api/clients/:id
// @Summary Delete client
// @Description Removes the client and its portfolio items.
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /clients/{id} [delete]
func (s *Server) DeleteClient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.clientService.DeleteClient(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return success(c, "Client deleted successfully")
}
