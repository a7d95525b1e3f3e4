// Package seed provides the startup bootstrap and demo data for the
// application database.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"ratil/internal/middleware"
	"ratil/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configures the startup bootstrap.
type Options struct {
	AdminPassword  string
	CategoriesFile string
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

// Bootstrap ensures the admin account and the built-in categories exist. It
// is safe to run on every start.
func Bootstrap(ctx context.Context, db *gorm.DB, opts Options) error {
	categories := BuiltInCategories
	if opts.CategoriesFile != "" {
		loaded, err := LoadCategories(opts.CategoriesFile)
		if err != nil {
			return err
		}
		categories = loaded
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Admin(tx, opts.AdminPassword, opts.HashCost); err != nil {
			return err
		}
		if err := Categories(tx, categories); err != nil {
			return err
		}
		middleware.Logger.InfoContext(ctx, "bootstrap data ensured",
			slog.Int("categories", len(categories)))
		return nil
	})
}

// Admin upserts the protected admin account. An existing password hash is
// never overwritten; role and portfolio access are restored.
func Admin(db *gorm.DB, password string, cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:           models.AdminUsername,
		HashedPassword:     string(hashed),
		Role:               models.RoleAdmin,
		CanAccessPortfolio: true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "can_access_portfolio", "updated_at"}),
	}).Create(&admin).Error
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
