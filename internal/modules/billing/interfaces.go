package billing

import (
	"context"
	"time"

	"rentora/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ListByLease(ctx context.Context, leaseID int64) ([]domain.Invoice, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.Invoice, error)
	Settle(ctx context.Context, invoiceID int64, payment *domain.Payment) error
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)
}

type LeaseGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Lease, error)
}

type Notifier interface {
	NotifyInvoiceIssued(ctx context.Context, tenantID, invoiceID, amount int64, dueDate time.Time)
	NotifyPaymentPosted(ctx context.Context, tenantID, invoiceID, paymentID, amount int64)
}
