package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gearshare/internal/domain"
)

type Service struct {
	equipment EquipmentRepository
}

func NewService(equipment EquipmentRepository) *Service {
	return &Service{equipment: equipment}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateEquipmentRequest) (*domain.Equipment, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, ErrInvalidCategory
	}

	from, err := time.Parse("2006-01-02", req.AvailableFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: available_from must be YYYY-MM-DD", ErrValidation)
	}
	until, err := time.Parse("2006-01-02", req.AvailableUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: available_until must be YYYY-MM-DD", ErrValidation)
	}
	if until.Before(from) {
		return nil, fmt.Errorf("%w: available_until before available_from", ErrValidation)
	}
	if req.PricePerDay <= 0 {
		return nil, fmt.Errorf("%w: price_per_day must be positive", ErrValidation)
	}

	e := &domain.Equipment{
		OwnerID:        ownerID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Category:       category,
		PricePerDay:    req.PricePerDay,
		AvailableFrom:  domain.DateOnly(from),
		AvailableUntil: domain.DateOnly(until),
		Location:       strings.TrimSpace(req.Location),
	}

	if err := s.equipment.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Archived {
		return nil, ErrNotFound
	}
	return e, nil
}

// Search is a case-insensitive substring match over title, description and
// category display name. Results keep insertion order; there is no relevance
// ranking. An empty query lists the whole catalog.
func (s *Service) Search(ctx context.Context, text string) ([]domain.Equipment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.equipment.List(ctx)
	}

	// Category display names live in Go, not in the database, so matching
	// categories are resolved here and passed to the query.
	var matched []domain.Category
	needle := strings.ToLower(text)
	for _, c := range domain.Categories() {
		if strings.Contains(strings.ToLower(c.DisplayName()), needle) {
			matched = append(matched, c)
		}
	}

	return s.equipment.Search(ctx, text, matched)
}

// FilterByCategory lists one category, or everything when category is empty.
func (s *Service) FilterByCategory(ctx context.Context, category string) ([]domain.Equipment, error) {
	if category == "" {
		return s.equipment.List(ctx)
	}

	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, ErrInvalidCategory
	}
	return s.equipment.ListByCategory(ctx, c)
}

// Archive hides a listing from the catalog. Only the owner may archive, and
// existing bookings are untouched.
func (s *Service) Archive(ctx context.Context, ownerID, id int64) error {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrNotFound
	}
	if e.OwnerID != ownerID {
		return ErrForbidden
	}
	return s.equipment.SetArchived(ctx, id, true)
}
