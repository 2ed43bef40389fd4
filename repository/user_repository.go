package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/utils"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	*BaseRepository[models.User, models.UserFilter]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{BaseRepository: NewBaseRepository[models.User, models.UserFilter](db)}
}

// ByUsername performs a case-insensitive lookup; usernames are stored lowercase.
func (r *UserRepositoryImpl) ByUsername(ctx context.Context, username string) (*models.User, error) {
	lowered := strings.ToLower(username)
	filter := models.UserFilter{Username: &lowered}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *UserRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.User, error) {
	lowered := strings.ToLower(email)
	filter := models.UserFilter{Email: &lowered}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *UserRepositoryImpl) ByUUID(ctx context.Context, id string) (*models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	filter := models.UserFilter{UUID: &parsed}
	rows, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"last_login_at": utils.UTCNow(), "updated_at": utils.UTCNow()}).Error
}

func (r *UserRepositoryImpl) applyFilter(db *gorm.DB, f models.UserFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.Username != nil {
		db = db.Where("username = ?", *f.Username)
	}
	if f.Email != nil {
		db = db.Where("email = ?", *f.Email)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *UserRepositoryImpl) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.User{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.User
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.User{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
