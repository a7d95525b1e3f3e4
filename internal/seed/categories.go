package seed

import (
	"fmt"
	"os"
	"strings"

	"ratil/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCategory is a top-level category that must always exist.
type BuiltInCategory struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
}

// BuiltInCategories defines the permanent categories.
var BuiltInCategories = []BuiltInCategory{
	{Name: "printedMaterials", DisplayName: "المواد المطبوعة"},
	{Name: "billboards", DisplayName: "تاجير لافتات طرقية عملاقة"},
	{Name: "events", DisplayName: "تنظيم المؤتمرات والمناسبات"},
	{Name: "exhibition", DisplayName: "معرض بيع الاجهزة والمعدات الطباعية"},
	{Name: "portfolio", DisplayName: "معرض الأعمال"},
}

type categoriesFile struct {
	Categories []BuiltInCategory `yaml:"categories"`
}

// LoadCategories reads a category list from a YAML file of the form
//
//	categories:
//	  - name: events
//	    display_name: Events
func LoadCategories(path string) ([]BuiltInCategory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	for i, c := range file.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("categories file entry %d has no name", i)
		}
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s lists no categories", path)
	}
	return file.Categories, nil
}

// Categories upserts each category by name, refreshing its display name.
func Categories(db *gorm.DB, list []BuiltInCategory) error {
	for _, item := range list {
		category := models.Category{
			Name:        strings.TrimSpace(item.Name),
			DisplayName: item.DisplayName,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("seed category %s: %w", item.Name, err)
		}
	}
	return nil
}
