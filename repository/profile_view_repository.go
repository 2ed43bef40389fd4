package repository

import (
	"context"

	"github.com/linkdeck/linkdeck/models"
	"gorm.io/gorm"
)

// ProfileViewRepositoryImpl implements ProfileViewRepository
type ProfileViewRepositoryImpl struct {
	*BaseRepository[models.ProfileView, models.ProfileViewFilter]
}

func NewProfileViewRepository(db *gorm.DB) ProfileViewRepository {
	return &ProfileViewRepositoryImpl{BaseRepository: NewBaseRepository[models.ProfileView, models.ProfileViewFilter](db)}
}

func (r *ProfileViewRepositoryImpl) CountByUser(ctx context.Context, userID uint) (int64, error) {
	filter := models.ProfileViewFilter{UserID: &userID}
	return r.Count(ctx, filter)
}

func (r *ProfileViewRepositoryImpl) applyFilter(db *gorm.DB, f models.ProfileViewFilter) *gorm.DB {
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.ViewedAfter != nil {
		db = db.Where("viewed_at >= ?", *f.ViewedAfter)
	}
	if f.ViewedBefore != nil {
		db = db.Where("viewed_at < ?", *f.ViewedBefore)
	}
	return db
}

func (r *ProfileViewRepositoryImpl) ByFilter(ctx context.Context, filter models.ProfileViewFilter, orderBy string, limit, offset int) ([]*models.ProfileView, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ProfileView{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.ProfileView
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProfileViewRepositoryImpl) Count(ctx context.Context, filter models.ProfileViewFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ProfileView{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProfileViewRepositoryImpl) Exists(ctx context.Context, filter models.ProfileViewFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
