package service

import (
	"context"
	"strings"
	"time"

	"ratil/internal/models"
	"ratil/internal/repository"
	"ratil/internal/storage"
)

const dateLayout = "2006-01-02"

type PortfolioService struct {
	items      repository.PortfolioRepository
	categories repository.CategoryRepository
	clients    repository.ClientRepository
	uploader   storage.Uploader
	now        func() time.Time
}

// PortfolioQuery is the raw listing filter as received from the query string.
type PortfolioQuery struct {
	CategoryID uint
	ClientID   uint
	StartDate  string
	EndDate    string
	Q          string
}

type UploadPortfolioInput struct {
	Title       string
	Description *string
	CategoryID  uint
	ClientID    *uint
	LinkURL     string
	File        *storage.File
}

// PortfolioUpdate carries the optional fields of an item update.
type PortfolioUpdate struct {
	Title       *string
	Description *string
	ClientID    *uint
	CategoryID  *uint
}

func NewPortfolioService(
	items repository.PortfolioRepository,
	categories repository.CategoryRepository,
	clients repository.ClientRepository,
	uploader storage.Uploader,
) *PortfolioService {
	return &PortfolioService{
		items:      items,
		categories: categories,
		clients:    clients,
		uploader:   uploader,
		now:        time.Now,
	}
}

// BuildFilter parses the date bounds of a listing query. Dates use
// YYYY-MM-DD; the end date covers its whole day.
func BuildFilter(q PortfolioQuery) (repository.PortfolioFilter, error) {
	filter := repository.PortfolioFilter{
		CategoryID: q.CategoryID,
		ClientID:   q.ClientID,
		Query:      q.Q,
	}

	if s := strings.TrimSpace(q.StartDate); s != "" {
		start, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return filter, models.NewValidationError("start_date must be formatted as YYYY-MM-DD")
		}
		filter.Start = &start
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		day, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return filter, models.NewValidationError("end_date must be formatted as YYYY-MM-DD")
		}
		end := day.Add(24*time.Hour - time.Nanosecond)
		filter.End = &end
	}
	return filter, nil
}

func (s *PortfolioService) ListItems(ctx context.Context, q PortfolioQuery) ([]models.PortfolioItem, error) {
	filter, err := BuildFilter(q)
	if err != nil {
		return nil, err
	}
	return s.items.List(ctx, filter)
}

func (s *PortfolioService) GetItem(ctx context.Context, id uint) (*models.PortfolioItem, error) {
	return s.items.GetByID(ctx, id)
}

// Upload creates a portfolio item from a file or an external link. The file
// is filed under a dated folder named after the client. When both are given
// the file wins.
func (s *PortfolioService) Upload(ctx context.Context, in UploadPortfolioInput) (*models.PortfolioItem, error) {
	link := strings.TrimSpace(in.LinkURL)
	if in.File == nil && link == "" {
		return nil, models.NewValidationError("Either a file or a link_url is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}

	if _, err := s.categories.GetCategoryByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	var clientName string
	if in.ClientID != nil {
		client, err := s.clients.GetByID(ctx, *in.ClientID)
		if err != nil {
			return nil, err
		}
		clientName = client.DisplayName()
	}

	now := s.now().UTC()
	url, err := storage.Resolve(ctx, s.uploader, in.File, link, storage.PortfolioFolder(now, clientName), true)
	if err != nil {
		return nil, err
	}

	item := &models.PortfolioItem{
		Title:       in.Title,
		Description: in.Description,
		FileURL:     url,
		UploadDate:  now,
		ClientID:    in.ClientID,
		CategoryID:  in.CategoryID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.items.GetByID(ctx, item.ID)
}

// UpdateItem applies the present fields after checking that referenced
// categories and clients exist.
func (s *PortfolioService) UpdateItem(ctx context.Context, id uint, in PortfolioUpdate) (*models.PortfolioItem, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetCategoryByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}
	if in.ClientID != nil {
		if *in.ClientID == 0 {
			fields["client_id"] = nil
		} else {
			if _, err := s.clients.GetByID(ctx, *in.ClientID); err != nil {
				return nil, err
			}
			fields["client_id"] = *in.ClientID
		}
	}
	return s.items.UpdateFields(ctx, id, fields)
}

func (s *PortfolioService) DeleteItem(ctx context.Context, id uint) error {
	return s.items.Delete(ctx, id)
}
