package domain

import "time"

type NotificationType string

const (
	NotifNewMessage    NotificationType = "new_message"
	NotifLeaseCreated  NotificationType = "lease_created"
	NotifLeaseEnded    NotificationType = "lease_ended"
	NotifInvoiceIssued NotificationType = "invoice_issued"
	NotifPaymentPosted NotificationType = "payment_posted"
	NotifTicketUpdated NotificationType = "ticket_updated"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
