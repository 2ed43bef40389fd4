package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/utils"
	"gorm.io/gorm"
)

// SocialLinkRepositoryImpl implements SocialLinkRepository
type SocialLinkRepositoryImpl struct {
	*BaseRepository[models.SocialLink, models.SocialLinkFilter]
}

func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return &SocialLinkRepositoryImpl{BaseRepository: NewBaseRepository[models.SocialLink, models.SocialLinkFilter](db)}
}

func (r *SocialLinkRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error) {
	db := r.getDB(ctx)
	var row models.SocialLink
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *SocialLinkRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*models.SocialLink, error) {
	filter := models.SocialLinkFilter{UserID: &userID}
	return r.ByFilter(ctx, filter, "position ASC", 0, 0)
}

// ActiveByUser returns the publicly resolvable links ordered by position.
// The resolver scans these in order; position order is the tie-break when two
// links share a matching token.
func (r *SocialLinkRepositoryImpl) ActiveByUser(ctx context.Context, userID uint) ([]*models.SocialLink, error) {
	filter := models.SocialLinkFilter{UserID: &userID, IsActive: utils.ToPtr(true)}
	return r.ByFilter(ctx, filter, "position ASC", 0, 0)
}

func (r *SocialLinkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.getDB(ctx)
	return db.Where("id = ?", id).Delete(&models.SocialLink{}).Error
}

// UpdatePositions applies a reorder in one transaction. Links not present in
// positions keep their current position.
func (r *SocialLinkRepositoryImpl) UpdatePositions(ctx context.Context, userID uint, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	for id, position := range positions {
		err = db.Model(&models.SocialLink{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]any{"position": position, "updated_at": utils.UTCNow()}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SocialLinkRepositoryImpl) applyFilter(db *gorm.DB, f models.SocialLinkFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.Icon != nil {
		db = db.Where("icon = ?", *f.Icon)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

func (r *SocialLinkRepositoryImpl) ByFilter(ctx context.Context, filter models.SocialLinkFilter, orderBy string, limit, offset int) ([]*models.SocialLink, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SocialLink{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.SocialLink
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SocialLinkRepositoryImpl) Count(ctx context.Context, filter models.SocialLinkFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SocialLink{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SocialLinkRepositoryImpl) Exists(ctx context.Context, filter models.SocialLinkFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
