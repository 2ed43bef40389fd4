package models

import (
	"time"

	"github.com/google/uuid"
)

// LinkClick represents a single click event on a social link.
// Write-once telemetry: a failed insert never affects the redirect.
type LinkClick struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    uuid.UUID `gorm:"type:uuid;not null;index:idx_link_clicks_link_id" json:"link_id"`
	ClickedAt time.Time `gorm:"not null;index:idx_link_clicks_clicked_at" json:"clicked_at"`
	UserAgent *string   `gorm:"type:text" json:"user_agent,omitempty"`
	Referrer  *string   `gorm:"type:text" json:"referrer,omitempty"`
	IP        *string   `gorm:"size:64" json:"ip,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for LinkClick
func (LinkClick) TableName() string { return "link_clicks" }

// LinkClickFilter provides filter fields for repository queries
type LinkClickFilter struct {
	LinkID        *uuid.UUID
	ClickedAfter  *time.Time
	ClickedBefore *time.Time
}
