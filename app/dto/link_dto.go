package dto

import "time"

// SocialLinkDTO is the API shape of a social link
type SocialLinkDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLinkRequest creates a new social link
type CreateLinkRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url,max=2048"`
	Icon     string `json:"icon" validate:"required,max=64"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UpdateLinkRequest updates a social link; nil fields are untouched
type UpdateLinkRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=255"`
	URL      *string `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	Icon     *string `json:"icon,omitempty" validate:"omitempty,max=64"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// LinkResponse wraps a single link
type LinkResponse struct {
	Message string        `json:"message"`
	Link    SocialLinkDTO `json:"link"`
}

// ListLinksResponse wraps the user's links ordered by position
type ListLinksResponse struct {
	Message string          `json:"message"`
	Links   []SocialLinkDTO `json:"links"`
}

// ReorderLinksRequest carries the full ordered list of link ids
type ReorderLinksRequest struct {
	LinkIDs []string `json:"link_ids" validate:"required,min=1,dive,uuid4"`
}

// ReorderLinksResponse confirms the applied order
type ReorderLinksResponse struct {
	Message string          `json:"message"`
	Links   []SocialLinkDTO `json:"links"`
}
