// Package bootstrap wires the shared runtime dependencies used by the
// server and the command line tools.
package bootstrap

import (
	"context"
	"fmt"

	"ratil/internal/cache"
	"ratil/internal/config"
	"ratil/internal/database"
	"ratil/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns ensures the admin account and built-in categories.
	SeedBuiltIns bool
	// HashCost overrides the bcrypt cost used for the admin password.
	HashCost int
}

// InitRuntime connects to DB and Redis and optionally runs the bootstrap seed.
// The returned Redis client is nil when caching is disabled or unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		err := seed.Bootstrap(ctx, db, seed.Options{
			AdminPassword:  cfg.AdminPassword,
			CategoriesFile: cfg.CategoriesFile,
			HashCost:       opts.HashCost,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap built-in data: %w", err)
		}
	}

	return db, r, nil
}
