package booking

import "errors"

var (
	ErrInvalidDateRange  = errors.New("end date is before start date")
	ErrOutOfAvailability = errors.New("dates outside the equipment availability window")
	ErrOverlapping       = errors.New("dates overlap an existing booking")
	ErrSelfBooking       = errors.New("owners cannot book their own equipment")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
