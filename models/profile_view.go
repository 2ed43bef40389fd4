package models

import "time"

// ProfileView represents a visit to a user's public page.
// Same best-effort policy as LinkClick.
type ProfileView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_profile_views_user_id" json:"user_id"`
	ViewedAt  time.Time `gorm:"not null;index:idx_profile_views_viewed_at" json:"viewed_at"`
	UserAgent *string   `gorm:"type:text" json:"user_agent,omitempty"`
	Referrer  *string   `gorm:"type:text" json:"referrer,omitempty"`
	IP        *string   `gorm:"size:64" json:"ip,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for ProfileView
func (ProfileView) TableName() string { return "profile_views" }

// ProfileViewFilter provides filter fields for repository queries
type ProfileViewFilter struct {
	UserID       *uint
	ViewedAfter  *time.Time
	ViewedBefore *time.Time
}
