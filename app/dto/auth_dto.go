package dto

import "time"

// SignupRequest represents the account creation payload
type SignupRequest struct {
	Username           string `json:"username" validate:"required,min=3,max=30,username_format"`
	Email              string `json:"email" validate:"required,email,max=255"`
	Password           string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword    string `json:"confirm_password" validate:"required,eqfield=Password"`
	CaptchaChallengeID string `json:"captcha_challenge_id" validate:"required"`
	CaptchaAngle       float64 `json:"captcha_angle" validate:"required"`
}

// SignupResponse returns the created account and session tokens
type SignupResponse struct {
	Message      string  `json:"message"`
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns session tokens on successful login
type LoginResponse struct {
	Message      string  `json:"message"`
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse returns the re-issued token pair
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CaptchaChallengeResponse returns a rotate-captcha challenge for signup
type CaptchaChallengeResponse struct {
	ChallengeID       string `json:"challenge_id"`
	MasterImageBase64 string `json:"master_image_base64"`
	ThumbImageBase64  string `json:"thumb_image_base64"`
}

// UserDTO is the public shape of an account
type UserDTO struct {
	UUID        string     `json:"uuid"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
