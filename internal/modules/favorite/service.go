package favorite

import (
	"context"
	"fmt"

	"gearshare/internal/domain"
	"gearshare/internal/repository"
)

type Service struct {
	favorites repository.FavoriteRepository
}

func NewService(favorites repository.FavoriteRepository) *Service {
	return &Service{favorites: favorites}
}

// Toggle flips the bookmark and returns the new state. Two toggles in a row
// always land back on the original state.
func (s *Service) Toggle(ctx context.Context, userID, equipmentID int64) (bool, error) {
	exists, err := s.favorites.Exists(ctx, userID, equipmentID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	if exists {
		if _, err := s.favorites.Remove(ctx, userID, equipmentID); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		return false, nil
	}

	if err := s.favorites.Add(ctx, userID, equipmentID); err != nil {
		// A concurrent toggle may have inserted first; the unique index
		// already holds the pair, which is the state we wanted.
		if still, checkErr := s.favorites.Exists(ctx, userID, equipmentID); checkErr == nil && still {
			return true, nil
		}
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return true, nil
}

func (s *Service) IsFavorite(ctx context.Context, userID, equipmentID int64) (bool, error) {
	return s.favorites.Exists(ctx, userID, equipmentID)
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.favorites.GetByUserID(ctx, userID, limit, offset)
}
