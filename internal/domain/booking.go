package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking reserves one equipment item for an inclusive day range.
// Invariant: for a given equipment, no two bookings with status pending or
// confirmed share a calendar day.
type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	EquipmentID int64         `json:"equipment_id" gorm:"not null;index"`
	RenterID    int64         `json:"renter_id" gorm:"not null;index"`
	StartDate   time.Time     `json:"start_date" gorm:"not null"`
	EndDate     time.Time     `json:"end_date" gorm:"not null"`
	TotalPrice  float64       `json:"total_price"`
	Status      BookingStatus `json:"status" gorm:"not null"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Renter    *User      `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}

func (Booking) TableName() string { return "bookings" }

// Active reports whether the booking still occupies its interval.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// DateOnly truncates a timestamp to UTC midnight. Booking and availability
// comparisons all happen at day granularity.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays counts billable days of an inclusive range: both the first and
// the last day are charged, so a same-day rental is one day.
func RentalDays(start, end time.Time) int {
	days := int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}
