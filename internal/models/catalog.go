package models

import "time"

// Category is a top-level grouping. Name is the machine key used in URLs,
// DisplayName is the human label.
type Category struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	DisplayName    string          `gorm:"size:255" json:"display_name"`
	Subcategories  []Subcategory   `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	PortfolioItems []PortfolioItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// Subcategory groups content items under a category.
type Subcategory struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Name       string        `gorm:"size:255;not null;index" json:"name"`
	CategoryID uint          `gorm:"not null;index" json:"category_id"`
	Category   *Category     `gorm:"foreignKey:CategoryID" json:"-"`
	Items      []ContentItem `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time     `json:"-"`
	UpdatedAt  time.Time     `json:"-"`
}

// TableName specifies the table name for GORM.
func (Subcategory) TableName() string {
	return "subcategories"
}

// ContentItem is a single media/text entry. ImageURL is empty when no file
// was supplied.
type ContentItem struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"size:255;not null;index" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	ImageURL      string       `gorm:"column:image_url" json:"imageUrl"`
	SubcategoryID uint         `gorm:"not null;index" json:"subcategory_id"`
	Subcategory   *Subcategory `gorm:"foreignKey:SubcategoryID" json:"-"`
	CreatedAt     time.Time    `json:"-"`
	UpdatedAt     time.Time    `json:"-"`
}

// TableName specifies the table name for GORM.
func (ContentItem) TableName() string {
	return "content_items"
}

// AdminContentItem is the flattened review shape of a content item joined with
// its subcategory and category.
type AdminContentItem struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl"`
	Category        string `json:"category"`
	SubcategoryID   uint   `json:"subcategory_id"`
	SubcategoryName string `json:"subcategory_name"`
}

// NewAdminContentItem flattens an item whose Subcategory and Category were
// eagerly loaded.
func NewAdminContentItem(item ContentItem) AdminContentItem {
	out := AdminContentItem{
		ID:            item.ID,
		Title:         item.Title,
		Description:   item.Description,
		ImageURL:      item.ImageURL,
		SubcategoryID: item.SubcategoryID,
	}
	if item.Subcategory != nil {
		out.SubcategoryName = item.Subcategory.Name
		if item.Subcategory.Category != nil {
			out.Category = item.Subcategory.Category.Name
		}
	}
	return out
}
