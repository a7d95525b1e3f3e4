// Package service holds the business rules that sit between the HTTP handlers
// and the repositories.
package service

import (
	"context"
	"strings"

	"ratil/internal/models"
	"ratil/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// User-facing messages.
const (
	msgInvalidCredentials   = "اسم المستخدم أو كلمة المرور غير صحيحة"
	msgWrongCurrentPass     = "كلمة المرور الحالية غير صحيحة"
	MsgPasswordChanged      = "تم تغيير كلمة المرور بنجاح"
	msgCannotDeleteAdmin    = "Cannot delete the admin user"
	msgAdminPasswordByAdmin = "Only the admin user can change the admin password"
)

type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

type CreateUserInput struct {
	Username           string
	Password           string
	Role               string
	CanAccessPortfolio bool
}

// UpdateUserInput carries the optional fields of a user update. Nil fields
// are left unchanged.
type UpdateUserInput struct {
	Role               *string
	CanAccessPortfolio *bool
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	// ActingUser is the username the caller claims to be. It is not verified.
	ActingUser string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost returns the service using the given bcrypt cost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login verifies a username and password. An unknown user and a wrong
// password fail the same way.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, err
	}
	if !checkPassword(user.HashedPassword, password) {
		return nil, models.NewUnauthorizedError(msgInvalidCredentials)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}

	hashed, err := HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = models.RoleViewer
	}

	user := &models.User{
		Username:           username,
		HashedPassword:     hashed,
		Role:               role,
		CanAccessPortfolio: in.CanAccessPortfolio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser changes role and portfolio access. The username never changes.
func (s *UserService) UpdateUser(ctx context.Context, username string, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		if role == "" {
			return nil, models.NewValidationError("Role cannot be empty")
		}
		user.Role = role
	}
	if in.CanAccessPortfolio != nil {
		user.CanAccessPortfolio = *in.CanAccessPortfolio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces a user's password after checking the current one.
// The admin password may only be changed when the caller does not claim to be
// somebody else.
// ActingUser is taken on trust; with it empty, the current password alone
// authorizes the change.
func (s *UserService) ChangePassword(ctx context.Context, username string, in ChangePasswordInput) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	acting := strings.TrimSpace(in.ActingUser)
	if user.IsProtectedAdmin() && acting != "" && acting != models.AdminUsername {
		return models.NewForbiddenError(msgAdminPasswordByAdmin)
	}

	if !checkPassword(user.HashedPassword, in.CurrentPassword) {
		return models.NewValidationError(msgWrongCurrentPass)
	}
	if in.NewPassword == "" {
		return models.NewValidationError("New password is required")
	}

	hashed, err := HashPassword(in.NewPassword, s.hashCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

// DeleteUser removes an account. The admin account is refused before any
// lookup so its row is never touched.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	if username == models.AdminUsername {
		return models.NewForbiddenError(msgCannotDeleteAdmin)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}
