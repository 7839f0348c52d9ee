package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gearshare/internal/domain"
	"gearshare/internal/pkg/kmutex"

	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	bookings  BookingRepository
	equipment EquipmentGetter
	messages  MessageSeeder
	locks     *kmutex.KeyedMutex
}

func NewService(bookings BookingRepository, equipment EquipmentGetter, messages MessageSeeder) *Service {
	return &Service{
		bookings:  bookings,
		equipment: equipment,
		messages:  messages,
		locks:     kmutex.New(),
	}
}

// RequestBooking validates the request, checks the inclusive day range
// against active bookings and inserts a pending booking. The check and the
// insert happen under the equipment's lock, so two racing requests for
// overlapping dates cannot both pass. On success a message to the owner is
// seeded in the renter-owner thread.
func (s *Service) RequestBooking(ctx context.Context, equipmentID, renterID int64, start, end time.Time) (*domain.Booking, error) {
	start = domain.DateOnly(start)
	end = domain.DateOnly(end)

	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("fetch equipment: %w", err)
	}
	if eq == nil || eq.Archived {
		return nil, ErrEquipmentNotFound
	}
	if eq.OwnerID == renterID {
		return nil, ErrSelfBooking
	}
	if start.Before(domain.DateOnly(eq.AvailableFrom)) || end.After(domain.DateOnly(eq.AvailableUntil)) {
		return nil, ErrOutOfAvailability
	}

	// Both boundary days are billable.
	total := eq.PricePerDay * float64(domain.RentalDays(start, end))
	total = math.Round(total*100) / 100

	s.locks.Lock(equipmentID)
	defer s.locks.Unlock(equipmentID)

	overlapping, err := s.bookings.CountOverlapping(ctx, equipmentID, start, end)
	if err != nil {
		return nil, fmt.Errorf("overlap check: %w", err)
	}
	if overlapping > 0 {
		return nil, ErrOverlapping
	}

	b := &domain.Booking{
		EquipmentID: equipmentID,
		RenterID:    renterID,
		StartDate:   start,
		EndDate:     end,
		TotalPrice:  total,
		Status:      domain.BookingPending,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// On postgres the exclusion constraint is the second line of
		// defense against overlapping inserts from other processes.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrOverlapping
		}
		return nil, err
	}

	if s.messages != nil {
		text := fmt.Sprintf(
			"Hi! I'd like to rent %q from %s to %s.",
			eq.Title, start.Format("2006-01-02"), end.Format("2006-01-02"),
		)
		_ = s.messages.SeedBookingMessage(ctx, renterID, eq.OwnerID, eq.ID, text)
	}

	return b, nil
}

// Confirm moves a pending booking to confirmed. Only the equipment owner may
// confirm. Confirming twice is a no-op.
func (s *Service) Confirm(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	eq, err := s.equipment.GetByID(ctx, b.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil || eq.OwnerID != actorID {
		return nil, ErrForbidden
	}

	switch b.Status {
	case domain.BookingConfirmed:
		return b, nil
	case domain.BookingCancelled:
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingConfirmed); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// Cancel moves a pending or confirmed booking to cancelled, immediately
// freeing its days for new requests. Renter and owner may both cancel;
// cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if b.RenterID != actorID {
		eq, err := s.equipment.GetByID(ctx, b.EquipmentID)
		if err != nil {
			return nil, err
		}
		if eq == nil || eq.OwnerID != actorID {
			return nil, ErrForbidden
		}
	}

	if b.Status == domain.BookingCancelled {
		return b, nil
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListForEquipment returns the active bookings of one listing, the data
// behind the client's availability calendar.
func (s *Service) ListForEquipment(ctx context.Context, equipmentID int64) ([]domain.Booking, error) {
	return s.bookings.ListActiveForEquipment(ctx, equipmentID)
}

func (s *Service) GetMyBookings(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.ListForRenter(ctx, renterID, limit, offset)
}
