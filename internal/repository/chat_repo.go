package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rentora/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateConversation inserts a conversation for a normalized pair. Callers
// must handle gorm.ErrDuplicatedKey: under concurrent first-message sends
// the unique pair index lets exactly one insert win.
func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	conv.ParticipantA, conv.ParticipantB = domain.NormalizePair(conv.ParticipantA, conv.ParticipantB)
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		if isDuplicateKey(err) {
			return gorm.ErrDuplicatedKey
		}
		return err
	}
	return nil
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetConversationByParticipants looks up the conversation for an unordered
// pair. A missing conversation is not an error: it returns (nil, nil).
func (r *ChatRepository) GetConversationByParticipants(ctx context.Context, userA, userB int64) (*domain.Conversation, error) {
	a, b := domain.NormalizePair(userA, userB)

	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? AND participant_b = ?", a, b).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Limit(limit).Offset(offset).
		Find(&convs).Error
	return convs, err
}

// AppendMessage stores a message and bumps the parent conversation's
// last_message_at to the message's creation time, atomically.
func (r *ChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", msg.CreatedAt).Error
	})
}

// GetMessages returns a conversation's messages in chronological order.
func (r *ChatRepository) GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) GetLastMessage(ctx context.Context, conversationID int64) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead flags every message the counterpart sent as read, in bulk.
func (r *ChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}

func (r *ChatRepository) CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}

func (r *ChatRepository) CountConversationsByPair(ctx context.Context, userA, userB int64) (int64, error) {
	a, b := domain.NormalizePair(userA, userB)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("participant_a = ? AND participant_b = ?", a, b).
		Count(&count).Error
	return count, err
}
