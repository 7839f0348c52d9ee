package booking

import (
	"context"
	"time"

	"gearshare/internal/domain"
)

// BookingRepository defines the storage operations the engine needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) (int64, error)
	ListActiveForEquipment(ctx context.Context, equipmentID int64) ([]domain.Booking, error)
	ListForRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// EquipmentGetter resolves the listing a booking targets.
type EquipmentGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// MessageSeeder posts the first message of the renter-owner thread after a
// successful booking request. Implemented by the chat service.
type MessageSeeder interface {
	SeedBookingMessage(ctx context.Context, senderID, recipientID, equipmentID int64, content string) error
}
