package billing

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrLeaseNotActive       = errors.New("lease is not active")
	ErrInvoiceAlreadyPaid   = errors.New("invoice is already paid")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
