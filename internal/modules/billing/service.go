package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

type Service struct {
	invoices InvoiceRepository
	leases   LeaseGetter
	notifier Notifier
}

func NewService(invoices InvoiceRepository, leases LeaseGetter, notifier Notifier) *Service {
	return &Service{invoices: invoices, leases: leases, notifier: notifier}
}

// GenerateInvoice issues a new billing obligation on an active lease. Ended
// leases never accrue new invoices, but any invoices already issued against
// them remain collectible.
func (s *Service) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*domain.Invoice, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	lease, err := s.leases.GetByID(ctx, req.LeaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !lease.IsActive {
		return nil, ErrLeaseNotActive
	}

	inv := &domain.Invoice{
		LeaseID: req.LeaseID,
		Amount:  req.Amount,
		DueDate: req.DueDate,
		Status:  domain.InvoiceDue,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyInvoiceIssued(ctx, lease.TenantID, inv.ID, inv.Amount, inv.DueDate)
	}
	return inv, nil
}

// RecordPayment settles a due or overdue invoice. The second payment attempt
// against the same invoice gets ErrInvoiceAlreadyPaid.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !req.Method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	payment := &domain.Payment{
		Amount:      req.Amount,
		PaymentDate: time.Now(),
		Method:      req.Method,
		Reference:   uuid.NewString(),
		GatewayRef:  req.GatewayRef,
	}

	err := s.invoices.Settle(ctx, req.InvoiceID, payment)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrInvoiceAlreadyPaid):
		return nil, ErrInvoiceAlreadyPaid
	case err != nil:
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invoice_id": req.InvoiceID,
		"payment_id": payment.ID,
		"amount":     payment.Amount,
	}).Info("payment recorded")

	if s.notifier != nil {
		if inv, ierr := s.invoices.GetByID(ctx, req.InvoiceID); ierr == nil {
			if lease, lerr := s.leases.GetByID(ctx, inv.LeaseID); lerr == nil {
				s.notifier.NotifyPaymentPosted(ctx, lease.TenantID, inv.ID, payment.ID, payment.Amount)
			}
		}
	}
	return payment, nil
}

func (s *Service) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return inv, err
}

func (s *Service) ListByLease(ctx context.Context, leaseID int64) ([]domain.Invoice, error) {
	return s.invoices.ListByLease(ctx, leaseID)
}

func (s *Service) ListMyInvoices(ctx context.Context, tenantID int64) ([]domain.Invoice, error) {
	return s.invoices.ListByTenant(ctx, tenantID)
}

// SweepOverdue marks every due invoice past its due date overdue. Safe to
// run on a schedule: reruns match nothing new.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.invoices.SweepOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logrus.WithField("count", n).Info("invoices marked overdue")
	}
	return n, nil
}
