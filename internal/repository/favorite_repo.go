package repository

import (
	"context"

	"gearshare/internal/domain"

	"gorm.io/gorm"
)

// FavoriteRepository persists the (user, equipment) bookmark pairs.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, equipmentID int64) error
	Remove(ctx context.Context, userID, equipmentID int64) (bool, error)
	Exists(ctx context.Context, userID, equipmentID int64) (bool, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the pair. The unique index on (user_id, equipment_id) makes a
// racing duplicate insert fail instead of double-favoriting.
func (r *favoriteRepository) Add(ctx context.Context, userID, equipmentID int64) error {
	fav := &domain.Favorite{
		UserID:      userID,
		EquipmentID: equipmentID,
	}
	return r.db.WithContext(ctx).Create(fav).Error
}

// Remove deletes the pair and reports whether a row existed.
func (r *favoriteRepository) Remove(ctx context.Context, userID, equipmentID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND equipment_id = ?", userID, equipmentID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, equipmentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND equipment_id = ?", userID, equipmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Equipment").
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var favorites []domain.Favorite
	if err := q.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}
