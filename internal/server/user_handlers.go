package server

import (
	"fmt"

	"ratil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the body of POST /api/login. Blank credentials are not a
// shape error; they fail the credential check like any other wrong pair.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the identity returned after a successful login.
type LoginUser struct {
	Username           string `json:"username"`
	Role               string `json:"role"`
	CanAccessPortfolio bool   `json:"can_access_portfolio"`
}

// LoginResponse is the body returned by POST /api/login.
type LoginResponse struct {
	Status string    `json:"status"`
	User   LoginUser `json:"user"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username           string `json:"username" validate:"required"`
	Password           string `json:"password" validate:"required"`
	Role               string `json:"role"`
	CanAccessPortfolio bool   `json:"can_access_portfolio"`
}

// UpdateUserRequest is the body of PUT /api/users/{username}.
type UpdateUserRequest struct {
	Role               *string `json:"role"`
	CanAccessPortfolio *bool   `json:"can_access_portfolio"`
}

// ChangePasswordRequest is the body of PUT /api/users/{username}/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ActingUser      string `json:"acting_user"`
}

// Login handles POST /api/login
// @Summary Log in
// @Description Verify a username and password. No session or token is issued.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(LoginResponse{
		Status: "success",
		User: LoginUser{
			Username:           user.Username,
			Role:               user.Role,
			CanAccessPortfolio: user.CanAccessPortfolio,
		},
	})
}

// GetUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// CreateUser handles POST /api/users
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.CreateUser(c.UserContext(), service.CreateUserInput{
		Username:           req.Username,
		Password:           req.Password,
		Role:               req.Role,
		CanAccessPortfolio: req.CanAccessPortfolio,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /api/users/:username
// @Summary Update user role and portfolio access
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateUser(c.UserContext(), c.Params("username"), service.UpdateUserInput{
		Role:               req.Role,
		CanAccessPortfolio: req.CanAccessPortfolio,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword handles PUT /api/users/:username/change-password
// @Summary Change password
// @Description The admin password can only be changed when acting_user is absent or "admin".
// @Description acting_user is not verified. When it is omitted, anyone holding the current password can change any account, admin included.
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/change-password [put]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	err := s.userService.ChangePassword(c.UserContext(), c.Params("username"), service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ActingUser:      req.ActingUser,
	})
	if err != nil {
		return respondError(c, err)
	}
	return success(c, service.MsgPasswordChanged)
}

// DeleteUser handles DELETE /api/users/:username
// @Summary Delete user
// @Description The "admin" account cannot be deleted.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} StatusResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := s.userService.DeleteUser(c.UserContext(), username); err != nil {
		return respondError(c, err)
	}
	return success(c, fmt.Sprintf("User '%s' deleted successfully", username))
}
