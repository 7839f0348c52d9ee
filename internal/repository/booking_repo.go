package repository

import (
	"context"
	"errors"
	"time"

	"gearshare/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// CountOverlapping counts pending/confirmed bookings of the equipment whose
// inclusive [start_date, end_date] interval shares at least one day with
// [start, end]. Two day ranges overlap iff a.start <= b.end && a.end >= b.start.
func (r *BookingRepository) CountOverlapping(ctx context.Context, equipmentID int64, start, end time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("equipment_id = ?", equipmentID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&cnt).Error
	return cnt, err
}

// ListActiveForEquipment returns pending/confirmed bookings ordered by start
// date, the client's availability calendar view.
func (r *BookingRepository) ListActiveForEquipment(ctx context.Context, equipmentID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Order("start_date ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListForRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if status == domain.BookingCancelled {
		updates["cancelled_at"] = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}
