package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
	"gorm.io/gorm"
)

// LinkClickRepositoryImpl implements LinkClickRepository
type LinkClickRepositoryImpl struct {
	*BaseRepository[models.LinkClick, models.LinkClickFilter]
}

func NewLinkClickRepository(db *gorm.DB) LinkClickRepository {
	return &LinkClickRepositoryImpl{BaseRepository: NewBaseRepository[models.LinkClick, models.LinkClickFilter](db)}
}

func (r *LinkClickRepositoryImpl) ListByLinkIDs(ctx context.Context, linkIDs []uuid.UUID) ([]*models.LinkClick, error) {
	if len(linkIDs) == 0 {
		return nil, nil
	}
	db := r.getDB(ctx)
	var rows []*models.LinkClick
	if err := db.Model(&models.LinkClick{}).
		Where("link_id IN ?", linkIDs).
		Order("clicked_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LinkClickRepositoryImpl) CountByLinkIDs(ctx context.Context, linkIDs []uuid.UUID) (int64, error) {
	if len(linkIDs) == 0 {
		return 0, nil
	}
	db := r.getDB(ctx)
	var count int64
	if err := db.Model(&models.LinkClick{}).
		Where("link_id IN ?", linkIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LinkClickRepositoryImpl) applyFilter(db *gorm.DB, f models.LinkClickFilter) *gorm.DB {
	if f.LinkID != nil {
		db = db.Where("link_id = ?", *f.LinkID)
	}
	if f.ClickedAfter != nil {
		db = db.Where("clicked_at >= ?", *f.ClickedAfter)
	}
	if f.ClickedBefore != nil {
		db = db.Where("clicked_at < ?", *f.ClickedBefore)
	}
	return db
}

func (r *LinkClickRepositoryImpl) ByFilter(ctx context.Context, filter models.LinkClickFilter, orderBy string, limit, offset int) ([]*models.LinkClick, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.LinkClick{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.LinkClick
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LinkClickRepositoryImpl) Count(ctx context.Context, filter models.LinkClickFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.LinkClick{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LinkClickRepositoryImpl) Exists(ctx context.Context, filter models.LinkClickFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
