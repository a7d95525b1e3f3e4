package service

import (
	"context"
	"strings"
	"time"

	"ratil/internal/models"
	"ratil/internal/repository"
)

type ClientService struct {
	clientRepo repository.ClientRepository
	now        func() time.Time
}

// ClientInput carries client fields. On update, nil fields are left unchanged.
type ClientInput struct {
	Name          *string
	ContactPerson *string
	Phone         *string
	Address       *string
	Email         *string
}

func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo, now: time.Now}
}

func (s *ClientService) ListClients(ctx context.Context, q string) ([]models.Client, error) {
	return s.clientRepo.List(ctx, q)
}

func (s *ClientService) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

// CreateClient stores a client. A missing or blank name is replaced by a
// generated placeholder.
func (s *ClientService) CreateClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	name := s.nameOrPlaceholder(in.Name)
	client := &models.Client{
		Name:          &name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Address:       in.Address,
		Email:         normalizeEmail(in.Email),
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient applies only the fields present in the input.
func (s *ClientService) UpdateClient(ctx context.Context, id uint, in ClientInput) (*models.Client, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = s.nameOrPlaceholder(in.Name)
	}
	if in.ContactPerson != nil {
		fields["contact_person"] = *in.ContactPerson
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Email != nil {
		// A blank email clears it.
		if email := normalizeEmail(in.Email); email != nil {
			fields["email"] = *email
		} else {
			fields["email"] = nil
		}
	}
	return s.clientRepo.UpdateFields(ctx, id, fields)
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint) error {
	return s.clientRepo.Delete(ctx, id)
}

func (s *ClientService) nameOrPlaceholder(name *string) string {
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			return trimmed
		}
	}
	return models.PlaceholderClientName(s.now())
}

// normalizeEmail maps a blank email to NULL so it never collides with the
// unique index.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
