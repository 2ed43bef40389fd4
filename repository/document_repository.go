package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/utils"
	"gorm.io/gorm"
)

// DocumentRepositoryImpl implements DocumentRepository
type DocumentRepositoryImpl struct {
	*BaseRepository[models.Document, models.DocumentFilter]
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{BaseRepository: NewBaseRepository[models.Document, models.DocumentFilter](db)}
}

func (r *DocumentRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	db := r.getDB(ctx)
	var row models.Document
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *DocumentRepositoryImpl) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Document, error) {
	filter := models.DocumentFilter{UserID: &userID, IsActive: utils.ToPtr(true)}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// PublicBySlug finds the active, public document addressed by slug.
func (r *DocumentRepositoryImpl) PublicBySlug(ctx context.Context, userID uint, slug string) (*models.Document, error) {
	filter := models.DocumentFilter{
		UserID:   &userID,
		Slug:     &slug,
		IsPublic: utils.ToPtr(true),
		IsActive: utils.ToPtr(true),
	}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// PublicByUUID finds the active, public document addressed by its id.
func (r *DocumentRepositoryImpl) PublicByUUID(ctx context.Context, userID uint, id uuid.UUID) (*models.Document, error) {
	filter := models.DocumentFilter{
		ID:       &id,
		UserID:   &userID,
		IsPublic: utils.ToPtr(true),
		IsActive: utils.ToPtr(true),
	}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *DocumentRepositoryImpl) applyFilter(db *gorm.DB, f models.DocumentFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.Slug != nil {
		db = db.Where("slug = ?", *f.Slug)
	}
	if f.IsPublic != nil {
		db = db.Where("is_public = ?", *f.IsPublic)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

func (r *DocumentRepositoryImpl) ByFilter(ctx context.Context, filter models.DocumentFilter, orderBy string, limit, offset int) ([]*models.Document, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Document{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Document
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, filter models.DocumentFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Document{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DocumentRepositoryImpl) Exists(ctx context.Context, filter models.DocumentFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
