package repository

import (
	"context"
	"errors"
	"strings"

	"gearshare/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var e domain.Equipment
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// List returns non-archived listings in insertion order. The catalog contract
// is insertion order, no relevance ranking.
func (r *EquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	var items []domain.Equipment
	err := r.db.WithContext(ctx).
		Where("archived = ?", false).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Search matches a case-insensitive substring against title and description,
// plus any categories whose display name matched (resolved by the service).
func (r *EquipmentRepository) Search(ctx context.Context, text string, categories []domain.Category) ([]domain.Equipment, error) {
	pattern := "%" + strings.ToLower(text) + "%"

	q := r.db.WithContext(ctx).Where("archived = ?", false)
	if len(categories) > 0 {
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR category IN ?",
			pattern, pattern, categories,
		)
	} else {
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern,
		)
	}

	var items []domain.Equipment
	err := q.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *EquipmentRepository) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Equipment, error) {
	var items []domain.Equipment
	err := r.db.WithContext(ctx).
		Where("archived = ? AND category = ?", false, category).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// SetArchived flips the archived flag without touching other columns.
func (r *EquipmentRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("id = ?", id).
		Update("archived", archived).Error
}
