package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentora/internal/domain"
	"rentora/internal/realtime"
	"rentora/internal/repository"
)

const maxContentLength = 4000

type Service struct {
	repo      ChatRepository
	users     UserGetter
	publisher Publisher
	notifier  Notifier
}

func NewService(repo ChatRepository, users UserGetter, publisher Publisher, notifier Notifier) *Service {
	return &Service{repo: repo, users: users, publisher: publisher, notifier: notifier}
}

// SendMessage persists a message and fans it out to live subscribers. The
// HTTP response carries the stored message; the sender never receives a
// second copy over their own socket.
func (s *Service) SendMessage(ctx context.Context, senderID int64, req SendMessageRequest) (*SendMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	conv, err := s.resolveConversation(ctx, senderID, req)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	recipientID := conv.OtherParticipant(senderID)

	if s.publisher != nil {
		event := &realtime.Event{
			Type:           realtime.EventNewMessage,
			ConversationID: conv.ID,
			SenderID:       senderID,
			Payload:        msg,
		}
		s.publisher.BroadcastToConversation(ctx, conv.ID, event)
		s.publisher.SendToUser(ctx, recipientID, event)
	}
	if s.notifier != nil {
		s.notifier.NotifyNewMessage(ctx, recipientID, conv.ID, msg.ID)
	}

	return &SendMessageResponse{Message: msg, ClientRef: req.ClientRef}, nil
}

// resolveConversation picks the target thread. With a recipient the pair's
// conversation is created on first contact; when two first messages race,
// the unique pair index lets one insert win and the loser re-reads the
// winner's row so both messages land in the same conversation.
func (s *Service) resolveConversation(ctx context.Context, senderID int64, req SendMessageRequest) (*domain.Conversation, error) {
	switch {
	case req.ConversationID != nil && req.RecipientID == nil:
		conv, err := s.repo.GetConversationByID(ctx, *req.ConversationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !conv.HasParticipant(senderID) {
			return nil, ErrNotFound
		}
		return conv, nil

	case req.RecipientID != nil && req.ConversationID == nil:
		recipientID := *req.RecipientID
		if recipientID == senderID {
			return nil, ErrSelfMessage
		}
		if _, err := s.users.GetByID(ctx, recipientID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}

		conv, err := s.repo.GetConversationByParticipants(ctx, senderID, recipientID)
		if err != nil {
			return nil, err
		}
		if conv != nil {
			return conv, nil
		}

		a, b := domain.NormalizePair(senderID, recipientID)
		conv = &domain.Conversation{
			ParticipantA:  a,
			ParticipantB:  b,
			LastMessageAt: time.Now(),
		}
		err = s.repo.CreateConversation(ctx, conv)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithFields(logrus.Fields{
				"participant_a": a,
				"participant_b": b,
			}).Debug("conversation insert lost race, reusing existing")
			return s.repo.GetConversationByParticipants(ctx, senderID, recipientID)
		}
		if err != nil {
			return nil, err
		}
		return conv, nil
	}

	return nil, ErrBadTarget
}

// ListConversations returns the user's inbox, newest activity first, with
// each thread annotated with the counterpart, last message and unread count.
func (s *Service) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	convs, err := s.repo.ListConversations(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range convs {
		conv := &convs[i]

		if other, err := s.users.GetByID(ctx, conv.OtherParticipant(userID)); err == nil {
			other.PasswordHash = ""
			conv.OtherUser = other
		}
		if last, err := s.repo.GetLastMessage(ctx, conv.ID); err == nil {
			conv.LastMessage = last
		}
		if unread, err := s.repo.CountUnread(ctx, conv.ID, userID); err == nil {
			conv.UnreadCount = int(unread)
		}
	}
	return convs, nil
}

// GetMessages returns a conversation's history in chronological order. Only
// participants can read it; everyone else gets a not-found.
func (s *Service) GetMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotFound
	}

	return s.repo.GetMessages(ctx, conversationID, limit, offset)
}

// MarkRead flags the counterpart's messages as read and tells them so.
func (s *Service) MarkRead(ctx context.Context, userID, conversationID int64) error {
	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !conv.HasParticipant(userID) {
		return ErrNotFound
	}

	if err := s.repo.MarkRead(ctx, conversationID, userID); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.SendToUser(ctx, conv.OtherParticipant(userID), &realtime.Event{
			Type:           realtime.EventRead,
			ConversationID: conversationID,
			SenderID:       userID,
		})
	}
	return nil
}

// ConversationIDs lists the IDs of every thread the user belongs to, for
// the initial websocket subscription set.
func (s *Service) ConversationIDs(ctx context.Context, userID int64) ([]int64, error) {
	convs, err := s.repo.ListConversations(ctx, userID, 500, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
