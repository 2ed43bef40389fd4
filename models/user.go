package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owning a public link page.
// Username is the first path segment of the public URL and is stored lowercase.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`
	Username     string    `gorm:"size:63;not null;uniqueIndex:uk_users_username" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	DisplayName  *string   `gorm:"size:255" json:"display_name,omitempty"`
	Bio          *string   `gorm:"type:text" json:"bio,omitempty"`
	AvatarPath   *string   `gorm:"type:text" json:"avatar_path,omitempty"`
	IsActive     *bool     `gorm:"not null;default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for User
func (User) TableName() string { return "users" }

// UserFilter provides filter fields for repository queries
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Username      *string
	Email         *string
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
