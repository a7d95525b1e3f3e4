package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ratil/internal/database"
	"ratil/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestBootstrap_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	opts := Options{AdminPassword: "first-password", HashCost: bcrypt.MinCost}

	if err := Bootstrap(ctx, db, opts); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	if err := Bootstrap(ctx, db, opts); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 1 {
		t.Fatalf("expected 1 user, got %d", userCount)
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if categoryCount != int64(len(BuiltInCategories)) {
		t.Fatalf("expected %d categories, got %d", len(BuiltInCategories), categoryCount)
	}

	for _, item := range BuiltInCategories {
		var c models.Category
		if err := db.Where("name = ?", item.Name).First(&c).Error; err != nil {
			t.Fatalf("missing category %s: %v", item.Name, err)
		}
		if c.DisplayName != item.DisplayName {
			t.Fatalf("expected display name %q for %s, got %q", item.DisplayName, item.Name, c.DisplayName)
		}
	}
}

func TestBootstrap_KeepsExistingAdminPassword(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := Bootstrap(ctx, db, Options{AdminPassword: "first-password", HashCost: bcrypt.MinCost}); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}

	// Demote the admin to check the next run restores it.
	if err := db.Model(&models.User{}).Where("username = ?", models.AdminUsername).
		Updates(map[string]interface{}{"role": models.RoleViewer, "can_access_portfolio": false}).Error; err != nil {
		t.Fatalf("demote admin: %v", err)
	}

	if err := Bootstrap(ctx, db, Options{AdminPassword: "second-password", HashCost: bcrypt.MinCost}); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	var admin models.User
	if err := db.Where("username = ?", models.AdminUsername).First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte("first-password")); err != nil {
		t.Fatalf("expected original password to survive bootstrap: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("expected role admin, got %s", admin.Role)
	}
	if !admin.CanAccessPortfolio {
		t.Fatal("expected admin to regain portfolio access")
	}
}

func TestBootstrap_UpdatesDisplayName(t *testing.T) {
	db := openTestDB(t)

	if err := db.Create(&models.Category{Name: "events", DisplayName: "old label"}).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := Bootstrap(context.Background(), db, Options{AdminPassword: "pw", HashCost: bcrypt.MinCost}); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	var c models.Category
	if err := db.Where("name = ?", "events").First(&c).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}
	if c.DisplayName != "تنظيم المؤتمرات والمناسبات" {
		t.Fatalf("expected display name to be refreshed, got %q", c.DisplayName)
	}
}

func TestBootstrap_CategoriesFile(t *testing.T) {
	db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "categories.yml")
	content := "categories:\n  - name: signage\n    display_name: Signage\n  - name: portfolio\n    display_name: Portfolio\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write categories file: %v", err)
	}

	opts := Options{AdminPassword: "pw", CategoriesFile: path, HashCost: bcrypt.MinCost}
	if err := Bootstrap(context.Background(), db, opts); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	var names []string
	if err := db.Model(&models.Category{}).Order("name ASC").Pluck("name", &names).Error; err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(names) != 2 || names[0] != "portfolio" || names[1] != "signage" {
		t.Fatalf("unexpected categories: %v", names)
	}
}

func TestLoadCategories_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCategories(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(empty, []byte("categories: []\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadCategories(empty); err == nil {
		t.Fatal("expected error for empty category list")
	}

	unnamed := filepath.Join(dir, "unnamed.yml")
	if err := os.WriteFile(unnamed, []byte("categories:\n  - display_name: Nameless\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadCategories(unnamed); err == nil {
		t.Fatal("expected error for entry without name")
	}
}
