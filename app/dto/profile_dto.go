package dto

// GetProfileResponse returns the authenticated user's profile and links
type GetProfileResponse struct {
	Message     string          `json:"message"`
	User        UserDTO         `json:"user"`
	SocialLinks []SocialLinkDTO `json:"social_links"`
}

// UpdateProfileRequest updates mutable profile fields; nil fields are untouched
type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=30,username_format"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
}

// UpdateProfileResponse returns the updated profile
type UpdateProfileResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

// UploadAvatarRequest carries the decoded avatar upload
type UploadAvatarRequest struct {
	UserID           uint
	OriginalFilename string
	Data             []byte
}

// UploadAvatarResponse returns the stored avatar URL
type UploadAvatarResponse struct {
	Message   string `json:"message"`
	AvatarURL string `json:"avatar_url"`
}

// PublicProfileResponse is the visitor-facing profile surface. UserID is kept
// for server-side view recording and never serialized.
type PublicProfileResponse struct {
	UserID      uint            `json:"-"`
	Username    string          `json:"username"`
	DisplayName *string         `json:"display_name,omitempty"`
	Bio         *string         `json:"bio,omitempty"`
	AvatarURL   *string         `json:"avatar_url,omitempty"`
	SocialLinks []SocialLinkDTO `json:"social_links"`
	Documents   []DocumentDTO   `json:"documents"`
}
