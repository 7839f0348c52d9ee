package catalog

import (
	"time"

	"gearshare/internal/domain"
)

type CreateEquipmentRequest struct {
	Title          string  `json:"title" validate:"required,min=3,max=120"`
	Description    string  `json:"description" validate:"max=4000"`
	Category       string  `json:"category" validate:"required"`
	PricePerDay    float64 `json:"price_per_day" validate:"required,gt=0"`
	AvailableFrom  string  `json:"available_from" validate:"required"`
	AvailableUntil string  `json:"available_until" validate:"required"`
	Location       string  `json:"location" validate:"max=120"`
}

type EquipmentResponse struct {
	ID              int64   `json:"id"`
	OwnerID         int64   `json:"owner_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category"`
	CategoryDisplay string  `json:"category_display"`
	PricePerDay     float64 `json:"price_per_day"`
	AvailableFrom   string  `json:"available_from"`
	AvailableUntil  string  `json:"available_until"`
	Location        string  `json:"location,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToEquipmentResponse(e *domain.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}
	return &EquipmentResponse{
		ID:              e.ID,
		OwnerID:         e.OwnerID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        string(e.Category),
		CategoryDisplay: e.Category.DisplayName(),
		PricePerDay:     e.PricePerDay,
		AvailableFrom:   e.AvailableFrom.Format("2006-01-02"),
		AvailableUntil:  e.AvailableUntil.Format("2006-01-02"),
		Location:        e.Location,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
}
