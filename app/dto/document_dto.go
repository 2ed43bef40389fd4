package dto

import "time"

// DocumentDTO is the API shape of an uploaded document
type DocumentDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	Slug       *string   `json:"slug,omitempty"`
	CustomIcon string    `json:"custom_icon"`
	IsPublic   bool      `json:"is_public"`
	PublicURL  string    `json:"public_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UploadDocumentRequest carries the decoded multipart upload
type UploadDocumentRequest struct {
	UserID           uint
	Title            string
	Slug             string
	OriginalFilename string
	MimeType         string
	Data             []byte
}

// UploadDocumentResponse returns the stored document
type UploadDocumentResponse struct {
	Message  string      `json:"message"`
	Document DocumentDTO `json:"document"`
}

// UpdateDocumentRequest updates document metadata; nil fields are untouched
type UpdateDocumentRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Slug       *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	CustomIcon *string `json:"custom_icon,omitempty" validate:"omitempty,max=64"`
	IsPublic   *bool   `json:"is_public,omitempty"`
}

// DocumentResponse wraps a single document
type DocumentResponse struct {
	Message  string      `json:"message"`
	Document DocumentDTO `json:"document"`
}

// ListDocumentsResponse wraps the user's active documents
type ListDocumentsResponse struct {
	Message   string        `json:"message"`
	Documents []DocumentDTO `json:"documents"`
}
