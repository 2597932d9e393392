package leasing

import (
	"time"

	"rentora/internal/domain"
)

type CreateReservationRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

type CreateLeaseRequest struct {
	TenantID      int64                `json:"tenant_id" binding:"required" validate:"required"`
	RoomID        int64                `json:"room_id" binding:"required" validate:"required"`
	StartDate     time.Time            `json:"start_date" binding:"required" validate:"required"`
	EndDate       time.Time            `json:"end_date" binding:"required" validate:"required"`
	FirstAmount   int64                `json:"first_amount" binding:"required" validate:"required,gt=0"`
	FirstDueDate  time.Time            `json:"first_due_date" binding:"required" validate:"required"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" binding:"required" validate:"required"`
	ReservationID *int64               `json:"reservation_id"`
}

// CreateLeaseResponse returns every record the issuance transaction wrote.
type CreateLeaseResponse struct {
	Lease   *domain.Lease   `json:"lease"`
	Invoice *domain.Invoice `json:"invoice"`
	Payment *domain.Payment `json:"payment"`
}
