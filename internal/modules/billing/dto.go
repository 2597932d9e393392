package billing

import (
	"time"

	"rentora/internal/domain"
)

type GenerateInvoiceRequest struct {
	LeaseID int64     `json:"lease_id" binding:"required"`
	Amount  int64     `json:"amount" binding:"required"`
	DueDate time.Time `json:"due_date" binding:"required"`
}

type RecordPaymentRequest struct {
	InvoiceID  int64                `json:"invoice_id" binding:"required"`
	Amount     int64                `json:"amount" binding:"required"`
	Method     domain.PaymentMethod `json:"method" binding:"required"`
	GatewayRef *string              `json:"gateway_ref"`
}
