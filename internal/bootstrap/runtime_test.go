package bootstrap

import (
	"context"
	"testing"

	"ratil/internal/config"
	"ratil/internal/models"
	"ratil/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:          "8000",
		Env:           "test",
		DatabaseURL:   "sqlite:///:memory:",
		BodyLimitMB:   50,
		AdminPassword: "bootstrap-pass",
	}
}

func TestInitRuntime_SeedsBuiltIns(t *testing.T) {
	db, rdb, err := InitRuntime(context.Background(), testConfig(), Options{SeedBuiltIns: true, HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Nil(t, rdb, "redis is disabled without REDIS_URL")

	var admin models.User
	require.NoError(t, db.Where("username = ?", models.AdminUsername).First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte("bootstrap-pass")))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(seed.BuiltInCategories)), count)
}

func TestInitRuntime_WithoutSeeding(t *testing.T) {
	db, _, err := InitRuntime(context.Background(), testConfig(), Options{})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInitRuntime_BadCategoriesFile(t *testing.T) {
	cfg := testConfig()
	cfg.CategoriesFile = "/nonexistent/categories.yml"

	_, _, err := InitRuntime(context.Background(), cfg, Options{SeedBuiltIns: true, HashCost: bcrypt.MinCost})
	assert.Error(t, err)
}
