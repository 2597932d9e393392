package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentora/internal/domain"
)

func dueInvoice(t *testing.T, db *gorm.DB, leaseID int64, due time.Time) *domain.Invoice {
	t.Helper()
	inv := &domain.Invoice{LeaseID: leaseID, Amount: 50000, DueDate: due, Status: domain.InvoiceDue}
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func TestInvoiceRepository_Settle(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "tenant@test.local")
	room := seedRoom(t, db)
	lease, _ := issueLease(t, db, tenant.ID, room.ID)

	repo := NewInvoiceRepository(db)
	inv := dueInvoice(t, db, lease.ID, time.Now().AddDate(0, 1, 0))

	payment := &domain.Payment{Amount: 50000, Method: domain.MethodMobileMoney, Reference: "p1"}
	require.NoError(t, repo.Settle(context.Background(), inv.ID, payment))

	got, err := repo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, payment.ID, *got.PaymentID)

	stored, err := repo.GetPaymentByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodMobileMoney, stored.Method)
}

func TestInvoiceRepository_Settle_SecondPaymentRejected(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "tenant@test.local")
	room := seedRoom(t, db)
	lease, _ := issueLease(t, db, tenant.ID, room.ID)

	repo := NewInvoiceRepository(db)
	inv := dueInvoice(t, db, lease.ID, time.Now().AddDate(0, 1, 0))

	require.NoError(t, repo.Settle(context.Background(), inv.ID, &domain.Payment{Amount: 50000, Method: domain.MethodCash, Reference: "p1"}))

	err := repo.Settle(context.Background(), inv.ID, &domain.Payment{Amount: 50000, Method: domain.MethodCash, Reference: "p2"})
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPaid)

	count, err := repo.CountPaymentsByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestInvoiceRepository_Settle_OverdueStillPayable(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "tenant@test.local")
	room := seedRoom(t, db)
	lease, _ := issueLease(t, db, tenant.ID, room.ID)

	repo := NewInvoiceRepository(db)
	inv := dueInvoice(t, db, lease.ID, time.Now().AddDate(0, 0, -3))

	n, err := repo.SweepOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.Settle(context.Background(), inv.ID, &domain.Payment{Amount: 50000, Method: domain.MethodGateway, Reference: "p3"}))

	got, err := repo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
}

func TestInvoiceRepository_Settle_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewInvoiceRepository(db).Settle(context.Background(), 12345, &domain.Payment{Amount: 1, Method: domain.MethodCash, Reference: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceRepository_SweepOverdue_Idempotent(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "tenant@test.local")
	room := seedRoom(t, db)
	lease, _ := issueLease(t, db, tenant.ID, room.ID)

	repo := NewInvoiceRepository(db)
	lapsed := dueInvoice(t, db, lease.ID, time.Now().AddDate(0, 0, -1))
	future := dueInvoice(t, db, lease.ID, time.Now().AddDate(0, 1, 0))

	n, err := repo.SweepOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Rerun matches nothing new.
	n, err = repo.SweepOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	got, err := repo.GetByID(context.Background(), lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceOverdue, got.Status)

	got, err = repo.GetByID(context.Background(), future.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceDue, got.Status)
}

func TestInvoiceRepository_SweepOverdue_PaidUntouched(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "tenant@test.local")
	room := seedRoom(t, db)
	_, firstInvoice := issueLease(t, db, tenant.ID, room.ID)

	// Backdate the paid first invoice; the sweep must not touch it.
	require.NoError(t, db.Model(&domain.Invoice{}).
		Where("id = ?", firstInvoice.ID).
		Update("due_date", time.Now().AddDate(0, 0, -30)).Error)

	repo := NewInvoiceRepository(db)
	n, err := repo.SweepOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	got, err := repo.GetByID(context.Background(), firstInvoice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
}

func TestInvoiceRepository_ListByTenant(t *testing.T) {
	db := newTestDB(t)
	tenant := seedTenant(t, db, "tenant@test.local")
	room := seedRoom(t, db)
	lease, _ := issueLease(t, db, tenant.ID, room.ID)

	repo := NewInvoiceRepository(db)
	dueInvoice(t, db, lease.ID, time.Now().AddDate(0, 1, 0))

	list, err := repo.ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2) // first invoice plus the new one
}
