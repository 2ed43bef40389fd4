// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for analytics recording
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	Referrer  string `json:"referrer,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetReferrer sets the referrer URL
func (cm *ClientMetadata) SetReferrer(referrer string) {
	cm.Referrer = referrer
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

func (cm *ClientMetadata) userAgentPtr() *string {
	if cm == nil || cm.UserAgent == "" {
		return nil
	}
	return utils.ToPtr(cm.UserAgent)
}

func (cm *ClientMetadata) referrerPtr() *string {
	if cm == nil || cm.Referrer == "" {
		return nil
	}
	return utils.ToPtr(cm.Referrer)
}

func (cm *ClientMetadata) ipPtr() *string {
	if cm == nil || cm.IPAddress == "" {
		return nil
	}
	return utils.ToPtr(cm.IPAddress)
}

// getActiveUserByUsername fetches a user by username and enforces the active flag.
// A nil user with a nil error means no such profile exists.
func getActiveUserByUsername(ctx context.Context, repo repository.UserRepository, username string) (*models.User, error) {
	user, err := repo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.IsTrue(user.IsActive) {
		return nil, nil
	}
	return user, nil
}

// ToUserDTO converts a user model to its API representation
func ToUserDTO(user models.User, storage services.StorageService) dto.UserDTO {
	d := dto.UserDTO{
		UUID:        user.UUID.String(),
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if user.AvatarPath != nil && *user.AvatarPath != "" {
		d.AvatarURL = utils.ToPtr(storage.PublicFileURL(*user.AvatarPath))
	}
	return d
}

// ToSocialLinkDTO converts a social link model to its API representation
func ToSocialLinkDTO(link models.SocialLink) dto.SocialLinkDTO {
	return dto.SocialLinkDTO{
		ID:        link.ID.String(),
		Title:     link.Title,
		URL:       link.URL,
		Icon:      link.Icon,
		Position:  link.Position,
		IsActive:  utils.IsTrue(link.IsActive),
		CreatedAt: link.CreatedAt,
		UpdatedAt: link.UpdatedAt,
	}
}

// ToDocumentDTO converts a document model to its API representation
func ToDocumentDTO(doc models.Document, storage services.StorageService) dto.DocumentDTO {
	return dto.DocumentDTO{
		ID:         doc.ID.String(),
		Title:      doc.Title,
		Filename:   doc.Filename,
		FileSize:   doc.FileSize,
		MimeType:   doc.MimeType,
		Slug:       doc.Slug,
		CustomIcon: doc.CustomIcon,
		IsPublic:   utils.IsTrue(doc.IsPublic),
		PublicURL:  storage.PublicFileURL(doc.FilePath),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
