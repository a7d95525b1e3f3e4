package repository

import (
	"context"

	"ratil/internal/database"
	"ratil/internal/models"

	"gorm.io/gorm"
)

// ClientRepository defines storage operations for clients.
type ClientRepository interface {
	List(ctx context.Context, q string) ([]models.Client, error)
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Client, error)
	Delete(ctx context.Context, id uint) error
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository returns a repository implementation for clients.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

const errEmailTaken = "Email already registered"

func errClientNotFound() *models.AppError {
	return models.NewNotFoundMessage("Client not found")
}

// List returns clients whose name, address or contact person contains q.
func (r *clientRepository) List(ctx context.Context, q string) ([]models.Client, error) {
	clients := []models.Client{}
	query := searchAny(r.db.WithContext(ctx), q, "name", "address", "contact_person")
	if err := query.Order("id ASC").Find(&clients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translateError(err, errClientNotFound(), "")
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	err := r.db.WithContext(ctx).Create(client).Error
	return translateError(err, nil, errEmailTaken)
}

// UpdateFields writes only the given columns and returns the updated row.
func (r *clientRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Client, error) {
	var client models.Client
	err := database.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.First(&client, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&client).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&client, id).Error
	})
	if err != nil {
		return nil, translateError(err, errClientNotFound(), errEmailTaken)
	}
	return &client, nil
}

// Delete removes a client and its portfolio items in one transaction.
func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	err := database.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.PortfolioItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	return translateError(err, errClientNotFound(), "")
}
