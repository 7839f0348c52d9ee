package booking

import (
	"time"

	"gearshare/internal/domain"
)

// Dates travel as "2006-01-02" strings; bookings are day-granular.
type CreateBookingRequest struct {
	EquipmentID int64  `json:"equipment_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}

type BookingResponse struct {
	ID          int64   `json:"id"`
	EquipmentID int64   `json:"equipment_id"`
	RenterID    int64   `json:"renter_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalPrice  float64 `json:"total_price"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func ToBookingResponse(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:          b.ID,
		EquipmentID: b.EquipmentID,
		RenterID:    b.RenterID,
		StartDate:   b.StartDate.Format("2006-01-02"),
		EndDate:     b.EndDate.Format("2006-01-02"),
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}
