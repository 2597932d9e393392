package leasing

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrRoomOccupied          = errors.New("room is occupied")
	ErrTenantHasActiveLease  = errors.New("tenant already has an active lease")
	ErrLeaseNotActive        = errors.New("lease is not active")
	ErrReservationNotPending = errors.New("reservation is not pending")
	ErrInvalidDates          = errors.New("start date must be before end date")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrReservationMismatch   = errors.New("reservation does not match tenant and room")
)
