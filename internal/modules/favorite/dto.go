package favorite

import (
	"time"

	"gearshare/internal/domain"
)

type FavoriteResponse struct {
	ID          int64             `json:"id"`
	EquipmentID int64             `json:"equipment_id"`
	Equipment   *equipmentSummary `json:"equipment,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

type equipmentSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"price_per_day"`
	Location    string  `json:"location,omitempty"`
}

type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

func ToFavoriteListResponse(favorites []domain.Favorite, total int64, page, perPage int) FavoriteListResponse {
	out := FavoriteListResponse{
		Favorites: make([]FavoriteResponse, 0, len(favorites)),
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}

	for _, f := range favorites {
		resp := FavoriteResponse{
			ID:          f.ID,
			EquipmentID: f.EquipmentID,
			CreatedAt:   f.CreatedAt.Format(time.RFC3339),
		}
		if f.Equipment != nil {
			resp.Equipment = &equipmentSummary{
				ID:          f.Equipment.ID,
				Title:       f.Equipment.Title,
				Category:    string(f.Equipment.Category),
				PricePerDay: f.Equipment.PricePerDay,
				Location:    f.Equipment.Location,
			}
		}
		out.Favorites = append(out.Favorites, resp)
	}

	return out
}
