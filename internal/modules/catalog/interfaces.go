package catalog

import (
	"context"

	"gearshare/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	Search(ctx context.Context, text string, categories []domain.Category) ([]domain.Equipment, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Equipment, error)
	SetArchived(ctx context.Context, id int64, archived bool) error
}
