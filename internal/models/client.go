package models

import (
	"fmt"
	"time"
)

// UnnamedClientPrefix starts the placeholder name given to clients created
// without one.
const UnnamedClientPrefix = "عميل غير مسمى"

// Client is an external party portfolio work is done for. Name and Email are
// nullable; Email is unique when present.
type Client struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           *string         `gorm:"size:255;index" json:"name"`
	ContactPerson  *string         `gorm:"size:255" json:"contact_person"`
	Phone          *string         `gorm:"size:50" json:"phone"`
	Address        *string         `gorm:"size:500" json:"address"`
	Email          *string         `gorm:"size:255;uniqueIndex" json:"email"`
	PortfolioItems []PortfolioItem `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Client) TableName() string {
	return "clients"
}

// DisplayName returns the client's name or an empty string.
func (c *Client) DisplayName() string {
	if c == nil || c.Name == nil {
		return ""
	}
	return *c.Name
}

// PlaceholderClientName builds the name substituted for clients created
// without one.
func PlaceholderClientName(now time.Time) string {
	return fmt.Sprintf("%s - %s", UnnamedClientPrefix, now.Format("2006-01-02 15:04:05"))
}
