package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"ratil/internal/middleware"
	"ratil/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoOptions sizes the demo data set. Zero values fall back to defaults.
type DemoOptions struct {
	SubcategoriesPerCategory int
	ItemsPerSubcategory      int
	Clients                  int
	PortfolioItems           int
	// MaxDays bounds how far back portfolio upload dates are spread.
	MaxDays int
	// Seed makes the generated content reproducible when non-zero.
	Seed int64
}

func (o DemoOptions) withDefaults() DemoOptions {
	if o.SubcategoriesPerCategory <= 0 {
		o.SubcategoriesPerCategory = 3
	}
	if o.ItemsPerSubcategory <= 0 {
		o.ItemsPerSubcategory = 4
	}
	if o.Clients <= 0 {
		o.Clients = 5
	}
	if o.PortfolioItems <= 0 {
		o.PortfolioItems = 12
	}
	if o.MaxDays <= 0 {
		o.MaxDays = 180
	}
	return o
}

// DemoSummary counts what a demo run created.
type DemoSummary struct {
	Subcategories  int
	ContentItems   int
	Clients        int
	PortfolioItems int
}

// Factory builds demo catalog, client and portfolio rows and persists them.
// It is meant for development databases only.
type Factory struct {
	db   *gorm.DB
	opts DemoOptions
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts DemoOptions) *Factory {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed))}
}

// BuildContentItem constructs an unsaved content item for a subcategory.
func (f *Factory) BuildContentItem(subcategoryID uint) *models.ContentItem {
	return &models.ContentItem{
		Title:         gofakeit.Sentence(4),
		Description:   gofakeit.Paragraph(1, 2, 12, " "),
		ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		SubcategoryID: subcategoryID,
	}
}

// BuildClient constructs an unsaved client with every contact field filled.
func (f *Factory) BuildClient() *models.Client {
	name := gofakeit.Company()
	contact := gofakeit.Name()
	phone := gofakeit.Phone()
	address := gofakeit.Address().Address
	email := gofakeit.Email()
	return &models.Client{
		Name:          &name,
		ContactPerson: &contact,
		Phone:         &phone,
		Address:       &address,
		Email:         &email,
	}
}

// BuildPortfolioItem constructs an unsaved link portfolio item.
func (f *Factory) BuildPortfolioItem(categoryID uint, clientID *uint) *models.PortfolioItem {
	description := gofakeit.Sentence(10)
	daysBack := f.rng.Intn(f.opts.MaxDays)
	hoursBack := f.rng.Intn(24)
	return &models.PortfolioItem{
		Title:       gofakeit.BS() + " " + gofakeit.Noun(),
		Description: &description,
		FileURL:     gofakeit.URL(),
		UploadDate:  time.Now().UTC().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
		ClientID:    clientID,
		CategoryID:  categoryID,
	}
}

// Demo fills every existing category with subcategories and content items,
// then adds clients and portfolio items. Categories must already exist.
func (f *Factory) Demo(ctx context.Context) (DemoSummary, error) {
	var summary DemoSummary

	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categories []models.Category
		if err := tx.Order("id ASC").Find(&categories).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return errors.New("no categories to attach demo data to; run the bootstrap first")
		}

		for _, category := range categories {
			for i := 0; i < f.opts.SubcategoriesPerCategory; i++ {
				sub := models.Subcategory{Name: gofakeit.ProductCategory(), CategoryID: category.ID}
				if err := tx.Create(&sub).Error; err != nil {
					return fmt.Errorf("create subcategory: %w", err)
				}
				summary.Subcategories++

				items := make([]*models.ContentItem, 0, f.opts.ItemsPerSubcategory)
				for j := 0; j < f.opts.ItemsPerSubcategory; j++ {
					items = append(items, f.BuildContentItem(sub.ID))
				}
				if err := tx.Create(&items).Error; err != nil {
					return fmt.Errorf("create content items: %w", err)
				}
				summary.ContentItems += len(items)
			}
		}

		clients := make([]*models.Client, 0, f.opts.Clients)
		for i := 0; i < f.opts.Clients; i++ {
			client := f.BuildClient()
			if err := tx.Create(client).Error; err != nil {
				return fmt.Errorf("create client: %w", err)
			}
			clients = append(clients, client)
		}
		summary.Clients = len(clients)

		for i := 0; i < f.opts.PortfolioItems; i++ {
			category := categories[f.rng.Intn(len(categories))]
			var clientID *uint
			// Roughly one in four items has no client.
			if len(clients) > 0 && f.rng.Intn(4) != 0 {
				id := clients[f.rng.Intn(len(clients))].ID
				clientID = &id
			}
			item := f.BuildPortfolioItem(category.ID, clientID)
			if err := tx.Omit("Client", "Category").Create(item).Error; err != nil {
				return fmt.Errorf("create portfolio item: %w", err)
			}
			summary.PortfolioItems++
		}
		return nil
	})
	if err != nil {
		return DemoSummary{}, err
	}

	middleware.Logger.InfoContext(ctx, "demo data created",
		slog.Int("subcategories", summary.Subcategories),
		slog.Int("content_items", summary.ContentItems),
		slog.Int("clients", summary.Clients),
		slog.Int("portfolio_items", summary.PortfolioItems),
	)
	return summary, nil
}
