package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rentora/internal/domain"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).Preload("Payment").First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) ListByLease(ctx context.Context, leaseID int64) ([]domain.Invoice, error) {
	var out []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("lease_id = ?", leaseID).
		Order("due_date ASC").
		Find(&out).Error
	return out, err
}

func (r *InvoiceRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Invoice, error) {
	var out []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Joins("JOIN leases ON leases.id = invoices.lease_id").
		Where("leases.tenant_id = ?", tenantID).
		Order("invoices.due_date ASC").
		Find(&out).Error
	return out, err
}

// Settle marks a due or overdue invoice paid and records its payment, all
// in one transaction. The conditional status update makes a second call
// for the same invoice fail with ErrInvoiceAlreadyPaid instead of creating
// a duplicate payment; the unique index on payments.invoice_id is the
// backstop.
func (r *InvoiceRepository) Settle(ctx context.Context, invoiceID int64, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settle := tx.Model(&domain.Invoice{}).
			Where("id = ? AND status IN ?", invoiceID,
				[]domain.InvoiceStatus{domain.InvoiceDue, domain.InvoiceOverdue}).
			Update("status", domain.InvoicePaid)
		if settle.Error != nil {
			return settle.Error
		}
		if settle.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Invoice{}).Where("id = ?", invoiceID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrInvoiceAlreadyPaid
		}

		payment.InvoiceID = invoiceID
		if err := tx.Create(payment).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrInvoiceAlreadyPaid
			}
			return err
		}

		return tx.Model(&domain.Invoice{}).
			Where("id = ?", invoiceID).
			Update("payment_id", payment.ID).Error
	})
}

// SweepOverdue flips every due invoice whose due date has elapsed to
// overdue and reports how many rows changed. Idempotent: a second run over
// the same data matches nothing.
func (r *InvoiceRepository) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("status = ? AND due_date < ?", domain.InvoiceDue, now).
		Update("status", domain.InvoiceOverdue)
	return res.RowsAffected, res.Error
}

func (r *InvoiceRepository) GetPaymentByInvoice(ctx context.Context, invoiceID int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *InvoiceRepository) CountPaymentsByInvoice(ctx context.Context, invoiceID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count, err
}
