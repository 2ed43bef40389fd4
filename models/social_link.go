package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialLink represents one entry on a user's public page.
// Icon and slugified Title are the public matching keys; only active links
// resolve publicly. Position drives display and scan order.
type SocialLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index:idx_social_links_user_id" json:"user_id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	URL      string    `gorm:"type:text;not null" json:"url"`
	Icon     string    `gorm:"size:64;not null" json:"icon"`
	Position int       `gorm:"not null;default:0;index:idx_social_links_position" json:"position"`
	IsActive *bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for SocialLink
func (SocialLink) TableName() string { return "social_links" }

// SocialLinkFilter provides filter fields for repository queries
type SocialLinkFilter struct {
	ID       *uuid.UUID
	UserID   *uint
	Icon     *string
	IsActive *bool
}
