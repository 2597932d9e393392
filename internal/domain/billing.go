package domain

import "time"

type InvoiceStatus string

const (
	InvoiceDue     InvoiceStatus = "due"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice is a billing obligation for one period of a lease.
//
// Status moves due -> paid (on payment) or due -> overdue (sweep); paid is
// terminal. There is no running balance: an invoice is settled by exactly
// one payment.
type Invoice struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	LeaseID   int64         `json:"lease_id" gorm:"not null;index" validate:"required"`
	Amount    int64         `json:"amount" validate:"required,gt=0"`
	DueDate   time.Time     `json:"due_date" validate:"required"`
	Status    InvoiceStatus `json:"status" gorm:"not null;default:'due'"`
	PaymentID *int64        `json:"payment_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Lease   *Lease   `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`
	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
}

func (Invoice) TableName() string { return "invoices" }

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodGateway      PaymentMethod = "gateway"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodMobileMoney, MethodGateway:
		return true
	}
	return false
}

// Payment records funds received against exactly one invoice. Immutable
// after creation; the unique index on invoice_id guarantees 1:1.
type Payment struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	InvoiceID   int64         `json:"invoice_id" gorm:"not null;uniqueIndex" validate:"required"`
	Amount      int64         `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time     `json:"payment_date"`
	Method      PaymentMethod `json:"method" validate:"required"`
	Reference   string        `json:"reference" gorm:"not null"`
	GatewayRef  *string       `json:"gateway_ref,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
