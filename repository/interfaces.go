// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for user accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID uint) error
}

// SocialLinkRepository defines operations for social links
type SocialLinkRepository interface {
	Repository[models.SocialLink, models.SocialLinkFilter]
	ByUUID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.SocialLink, error)
	ActiveByUser(ctx context.Context, userID uint) ([]*models.SocialLink, error)
	Update(ctx context.Context, link *models.SocialLink) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uint, positions map[uuid.UUID]int) error
}

// DocumentRepository defines operations for uploaded documents
type DocumentRepository interface {
	Repository[models.Document, models.DocumentFilter]
	ByUUID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListActiveByUser(ctx context.Context, userID uint) ([]*models.Document, error)
	PublicBySlug(ctx context.Context, userID uint, slug string) (*models.Document, error)
	PublicByUUID(ctx context.Context, userID uint, id uuid.UUID) (*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
}

// LinkClickRepository defines operations for click analytics events
type LinkClickRepository interface {
	Repository[models.LinkClick, models.LinkClickFilter]
	ListByLinkIDs(ctx context.Context, linkIDs []uuid.UUID) ([]*models.LinkClick, error)
	CountByLinkIDs(ctx context.Context, linkIDs []uuid.UUID) (int64, error)
}

// ProfileViewRepository defines operations for profile view analytics events
type ProfileViewRepository interface {
	Repository[models.ProfileView, models.ProfileViewFilter]
	CountByUser(ctx context.Context, userID uint) (int64, error)
}
