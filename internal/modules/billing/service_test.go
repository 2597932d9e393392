package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	if inv != nil {
		inv.ID = 201
	}
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByLease(ctx context.Context, leaseID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, leaseID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Settle(ctx context.Context, invoiceID int64, payment *domain.Payment) error {
	args := m.Called(ctx, invoiceID, payment)
	if args.Error(0) == nil && payment != nil {
		payment.ID = 301
		payment.InvoiceID = invoiceID
	}
	return args.Error(0)
}

func (m *MockInvoiceRepository) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockLeaseGetter struct {
	mock.Mock
}

func (m *MockLeaseGetter) GetByID(ctx context.Context, id int64) (*domain.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyInvoiceIssued(ctx context.Context, tenantID, invoiceID, amount int64, dueDate time.Time) {
	m.Called(ctx, tenantID, invoiceID, amount, dueDate)
}

func (m *MockNotifier) NotifyPaymentPosted(ctx context.Context, tenantID, invoiceID, paymentID, amount int64) {
	m.Called(ctx, tenantID, invoiceID, paymentID, amount)
}

func TestService_GenerateInvoice_Success(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	leases := new(MockLeaseGetter)
	notifier := new(MockNotifier)
	svc := NewService(invoices, leases, notifier)

	leases.On("GetByID", mock.Anything, int64(101)).Return(&domain.Lease{ID: 101, TenantID: 7, IsActive: true}, nil)
	invoices.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyInvoiceIssued", mock.Anything, int64(7), int64(201), int64(50000), mock.Anything).Return()

	inv, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		LeaseID: 101,
		Amount:  50000,
		DueDate: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceDue, inv.Status)
	notifier.AssertExpectations(t)
}

func TestService_GenerateInvoice_EndedLeaseRejected(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	leases := new(MockLeaseGetter)
	svc := NewService(invoices, leases, nil)

	leases.On("GetByID", mock.Anything, int64(101)).Return(&domain.Lease{ID: 101, IsActive: false}, nil)

	_, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		LeaseID: 101,
		Amount:  50000,
		DueDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrLeaseNotActive)
	invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_RecordPayment_Success(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	leases := new(MockLeaseGetter)
	notifier := new(MockNotifier)
	svc := NewService(invoices, leases, notifier)

	invoices.On("Settle", mock.Anything, int64(201), mock.Anything).Return(nil)
	invoices.On("GetByID", mock.Anything, int64(201)).Return(&domain.Invoice{ID: 201, LeaseID: 101, Amount: 50000}, nil)
	leases.On("GetByID", mock.Anything, int64(101)).Return(&domain.Lease{ID: 101, TenantID: 7}, nil)
	notifier.On("NotifyPaymentPosted", mock.Anything, int64(7), int64(201), int64(301), int64(50000)).Return()

	payment, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID: 201,
		Amount:    50000,
		Method:    domain.MethodBankTransfer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payment.Reference)
	notifier.AssertExpectations(t)
}

func TestService_RecordPayment_AlreadyPaid(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	svc := NewService(invoices, new(MockLeaseGetter), nil)

	invoices.On("Settle", mock.Anything, int64(201), mock.Anything).Return(repository.ErrInvoiceAlreadyPaid)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID: 201,
		Amount:    50000,
		Method:    domain.MethodCash,
	})
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPaid)
}

// A payment does not have to match the invoice amount; the invoice is
// settled regardless and the difference is reconciled off-system.
func TestService_RecordPayment_AmountMismatchStillSettles(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	leases := new(MockLeaseGetter)
	svc := NewService(invoices, leases, nil)

	invoices.On("Settle", mock.Anything, int64(201), mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Amount == 49000
	})).Return(nil)
	invoices.On("GetByID", mock.Anything, int64(201)).Return(&domain.Invoice{ID: 201, LeaseID: 101, Amount: 50000}, nil)
	leases.On("GetByID", mock.Anything, int64(101)).Return(&domain.Lease{ID: 101, TenantID: 7}, nil)

	payment, err := svc.RecordPayment(context.Background(), RecordPaymentRequest{
		InvoiceID: 201,
		Amount:    49000,
		Method:    domain.MethodCash,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 49000, payment.Amount)
}

func TestService_RecordPayment_ValidationErrors(t *testing.T) {
	svc := NewService(new(MockInvoiceRepository), new(MockLeaseGetter), nil)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: 201, Amount: 0, Method: domain.MethodCash})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RecordPayment(ctx, RecordPaymentRequest{InvoiceID: 201, Amount: 100, Method: "barter"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestService_SweepOverdue(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	svc := NewService(invoices, new(MockLeaseGetter), nil)

	invoices.On("SweepOverdue", mock.Anything, mock.Anything).Return(int64(4), nil)

	n, err := svc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
