package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rentora/internal/domain"
	"rentora/internal/realtime"
	"rentora/internal/repository"
)

// Service persists notifications and pushes them over the user's live
// channel for immediate badge/toast display. The row is the source of
// truth; push failure is never an error.
type Service struct {
	repo   *repository.NotificationRepository
	broker *realtime.Broker
}

func NewService(repo *repository.NotificationRepository, broker *realtime.Broker) *Service {
	return &Service{repo: repo, broker: broker}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		IsRead:    false,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.broker != nil {
		s.broker.SendToUser(ctx, userID, &realtime.Event{
			Type:    realtime.EventNotification,
			Payload: n,
		})
	}
	return nil
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) NotifyNewMessage(ctx context.Context, recipientID, conversationID, messageID int64) {
	s.notify(ctx, recipientID, domain.NotifNewMessage,
		"New message",
		"You have a new message",
		map[string]any{"conversation_id": conversationID, "message_id": messageID},
	)
}

func (s *Service) NotifyLeaseCreated(ctx context.Context, tenantID, leaseID, roomID int64) {
	s.notify(ctx, tenantID, domain.NotifLeaseCreated,
		"Lease created",
		"Your lease has been created and your first payment recorded",
		map[string]any{"lease_id": leaseID, "room_id": roomID},
	)
}

func (s *Service) NotifyLeaseEnded(ctx context.Context, tenantID, leaseID int64) {
	s.notify(ctx, tenantID, domain.NotifLeaseEnded,
		"Lease ended",
		"Your lease has ended",
		map[string]any{"lease_id": leaseID},
	)
}

func (s *Service) NotifyInvoiceIssued(ctx context.Context, tenantID, invoiceID, amount int64, dueDate time.Time) {
	s.notify(ctx, tenantID, domain.NotifInvoiceIssued,
		"New invoice",
		fmt.Sprintf("An invoice of %d is due on %s", amount, dueDate.Format("2006-01-02")),
		map[string]any{"invoice_id": invoiceID, "amount": amount},
	)
}

func (s *Service) NotifyPaymentPosted(ctx context.Context, tenantID, invoiceID, paymentID, amount int64) {
	s.notify(ctx, tenantID, domain.NotifPaymentPosted,
		"Payment received",
		fmt.Sprintf("Your payment of %d has been recorded", amount),
		map[string]any{"invoice_id": invoiceID, "payment_id": paymentID},
	)
}

func (s *Service) NotifyTicketUpdated(ctx context.Context, tenantID, ticketID int64, status domain.TicketStatus) {
	s.notify(ctx, tenantID, domain.NotifTicketUpdated,
		"Maintenance update",
		fmt.Sprintf("Your maintenance ticket is now %s", status),
		map[string]any{"ticket_id": ticketID, "status": string(status)},
	)
}

func (s *Service) notify(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) {
	if err := s.Create(ctx, userID, t, title, message, data); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to create notification")
	}
}
