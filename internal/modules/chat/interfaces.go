package chat

import (
	"context"

	"rentora/internal/domain"
	"rentora/internal/realtime"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversationByParticipants(ctx context.Context, userA, userB int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error)
	AppendMessage(ctx context.Context, msg *domain.Message) error
	GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error)
	GetLastMessage(ctx context.Context, conversationID int64) (*domain.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
	CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Publisher interface {
	SendToUser(ctx context.Context, userID int64, event *realtime.Event)
	BroadcastToConversation(ctx context.Context, conversationID int64, event *realtime.Event)
}

type Notifier interface {
	NotifyNewMessage(ctx context.Context, recipientID, conversationID, messageID int64)
}
