package testing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/utils"
	"golang.org/x/crypto/bcrypt"
)

// NewTestUser creates an active user with a hashed password of "TestPass123!".
func NewTestUser(id uint, username string) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.MinCost)
	return &models.User{
		ID:           id,
		UUID:         uuid.New(),
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: string(hashed),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
}

// NewTestLink creates an active social link at the given position.
func NewTestLink(userID uint, title, url, icon string, position int) *models.SocialLink {
	return &models.SocialLink{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		URL:       url,
		Icon:      icon,
		Position:  position,
		IsActive:  utils.ToPtr(true),
		CreatedAt: utils.UTCNow(),
		UpdatedAt: utils.UTCNow(),
	}
}

// NewTestDocument creates a public active document. Pass an empty slug for
// a document addressable only by its UUID.
func NewTestDocument(userID uint, title, slug string) *models.Document {
	doc := &models.Document{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Filename:   utils.NormalizeSlug(title) + ".pdf",
		FilePath:   fmt.Sprintf("documents/%d/%s.pdf", userID, uuid.New()),
		FileSize:   2048,
		MimeType:   "application/pdf",
		CustomIcon: "file",
		IsPublic:   utils.ToPtr(true),
		IsActive:   utils.ToPtr(true),
		CreatedAt:  utils.UTCNow(),
		UpdatedAt:  utils.UTCNow(),
	}
	if slug != "" {
		doc.Slug = utils.ToPtr(slug)
	}
	return doc
}

// NewTestClick creates a click event for the given link.
func NewTestClick(linkID uuid.UUID) *models.LinkClick {
	return &models.LinkClick{
		LinkID:    linkID,
		ClickedAt: utils.UTCNow(),
	}
}

// NewTestView creates a profile view event for the given user.
func NewTestView(userID uint) *models.ProfileView {
	return &models.ProfileView{
		UserID:   userID,
		ViewedAt: utils.UTCNow(),
	}
}
