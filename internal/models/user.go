// Package models contains data structures for the application's domain models.
package models

import "time"

// Role names understood by the application. Role is free text; these are the
// values the admin dashboard assigns.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// AdminUsername is the protected account created at startup. It cannot be
// deleted, and only a caller identifying as this user may change its password.
const AdminUsername = "admin"

// User is a dashboard account. Username is immutable after creation.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	HashedPassword     string    `gorm:"not null" json:"-"`
	Role               string    `gorm:"size:50;not null;default:'viewer'" json:"role"`
	CanAccessPortfolio bool      `gorm:"not null;default:false" json:"can_access_portfolio"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// IsProtectedAdmin reports whether the account is the bootstrap admin.
func (u *User) IsProtectedAdmin() bool {
	return u != nil && u.Username == AdminUsername
}
