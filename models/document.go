package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded file shared through the public page.
// Slug is the preferred public address (/username/slug); the raw UUID remains
// a valid address for backward compatibility. A document is publicly
// resolvable only when both IsActive and IsPublic hold.
type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_documents_user_id;uniqueIndex:uk_documents_user_slug" json:"user_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	FilePath   string    `gorm:"type:text;not null" json:"file_path"`
	FileSize   int64     `gorm:"not null" json:"file_size"`
	MimeType   string    `gorm:"size:127;not null" json:"mime_type"`
	Slug       *string   `gorm:"size:255;uniqueIndex:uk_documents_user_slug" json:"slug,omitempty"`
	CustomIcon string    `gorm:"size:64;not null;default:file" json:"custom_icon"`
	IsPublic   *bool     `gorm:"not null;default:true" json:"is_public"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for Document
func (Document) TableName() string { return "documents" }

// DocumentFilter provides filter fields for repository queries
type DocumentFilter struct {
	ID       *uuid.UUID
	UserID   *uint
	Slug     *string
	IsPublic *bool
	IsActive *bool
}
