package models

import "time"

// PortfolioItem is a media asset or external link showcasing work for a
// client, tagged with a category.
type PortfolioItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null;index" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"not null" json:"file_url"`
	UploadDate  time.Time `gorm:"not null;index" json:"upload_date"`
	ClientID    *uint     `gorm:"index" json:"client_id"`
	Client      *Client   `gorm:"foreignKey:ClientID" json:"client"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
