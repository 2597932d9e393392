package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentora/internal/domain"
	"rentora/internal/realtime"
	"rentora/internal/repository"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	if args.Error(0) == nil && conv != nil {
		conv.ID = 10
	}
	return args.Error(0)
}

func (m *MockChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) GetConversationByParticipants(ctx context.Context, userA, userB int64) (*domain.Conversation, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil && msg != nil {
		msg.ID = 500
	}
	return args.Error(0)
}

func (m *MockChatRepository) GetMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepository) GetLastMessage(ctx context.Context, conversationID int64) (*domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

func (m *MockChatRepository) CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error) {
	args := m.Called(ctx, conversationID, readerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) SendToUser(ctx context.Context, userID int64, event *realtime.Event) {
	m.Called(ctx, userID, event)
}

func (m *MockPublisher) BroadcastToConversation(ctx context.Context, conversationID int64, event *realtime.Event) {
	m.Called(ctx, conversationID, event)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewMessage(ctx context.Context, recipientID, conversationID, messageID int64) {
	m.Called(ctx, recipientID, conversationID, messageID)
}

func TestService_SendMessage_ExistingConversation(t *testing.T) {
	repo := new(MockChatRepository)
	publisher := new(MockPublisher)
	notifier := new(MockNotifier)
	svc := NewService(repo, new(MockUserGetter), publisher, notifier)

	conv := &domain.Conversation{ID: 10, ParticipantA: 1, ParticipantB: 2}
	repo.On("GetConversationByID", mock.Anything, int64(10)).Return(conv, nil)
	repo.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)

	// The event carries the sender so the hub can skip echoing to them.
	publisher.On("BroadcastToConversation", mock.Anything, int64(10), mock.MatchedBy(func(e *realtime.Event) bool {
		return e.Type == realtime.EventNewMessage && e.SenderID == 1
	})).Return()
	publisher.On("SendToUser", mock.Anything, int64(2), mock.Anything).Return()
	notifier.On("NotifyNewMessage", mock.Anything, int64(2), int64(10), int64(500)).Return()

	convID := int64(10)
	res, err := svc.SendMessage(context.Background(), 1, SendMessageRequest{
		ConversationID: &convID,
		Content:        "  hello there  ",
		ClientRef:      "tmp-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", res.Message.Content)
	assert.Equal(t, "tmp-abc", res.ClientRef)

	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_SendMessage_FirstContactCreatesConversation(t *testing.T) {
	repo := new(MockChatRepository)
	users := new(MockUserGetter)
	svc := NewService(repo, users, nil, nil)

	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	repo.On("GetConversationByParticipants", mock.Anything, int64(1), int64(2)).Return(nil, nil)
	repo.On("CreateConversation", mock.Anything, mock.Anything).Return(nil)
	repo.On("AppendMessage", mock.Anything, mock.Anything).Return(nil)

	recipient := int64(2)
	res, err := svc.SendMessage(context.Background(), 1, SendMessageRequest{
		RecipientID: &recipient,
		Content:     "hi",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, res.Message.ConversationID)
}

// When two first messages race, the insert loser re-reads the winner's
// conversation and attaches its message there.
func TestService_SendMessage_LostInsertRaceReusesWinner(t *testing.T) {
	repo := new(MockChatRepository)
	users := new(MockUserGetter)
	svc := NewService(repo, users, nil, nil)

	winner := &domain.Conversation{ID: 77, ParticipantA: 1, ParticipantB: 2}

	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	repo.On("GetConversationByParticipants", mock.Anything, int64(1), int64(2)).Return(nil, nil).Once()
	repo.On("CreateConversation", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	repo.On("GetConversationByParticipants", mock.Anything, int64(1), int64(2)).Return(winner, nil).Once()
	repo.On("AppendMessage", mock.Anything, mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.ConversationID == 77
	})).Return(nil)

	recipient := int64(2)
	res, err := svc.SendMessage(context.Background(), 1, SendMessageRequest{
		RecipientID: &recipient,
		Content:     "hi",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 77, res.Message.ConversationID)
	repo.AssertExpectations(t)
}

func TestService_SendMessage_ValidationErrors(t *testing.T) {
	svc := NewService(new(MockChatRepository), new(MockUserGetter), nil, nil)
	ctx := context.Background()
	convID, recipient := int64(10), int64(1)

	_, err := svc.SendMessage(ctx, 1, SendMessageRequest{ConversationID: &convID, Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.SendMessage(ctx, 1, SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrBadTarget)

	_, err = svc.SendMessage(ctx, 1, SendMessageRequest{ConversationID: &convID, RecipientID: &recipient, Content: "hi"})
	assert.ErrorIs(t, err, ErrBadTarget)

	_, err = svc.SendMessage(ctx, 1, SendMessageRequest{RecipientID: &recipient, Content: "hi"})
	assert.ErrorIs(t, err, ErrSelfMessage)
}

func TestService_SendMessage_NonParticipantGetsNotFound(t *testing.T) {
	repo := new(MockChatRepository)
	svc := NewService(repo, new(MockUserGetter), nil, nil)

	conv := &domain.Conversation{ID: 10, ParticipantA: 1, ParticipantB: 2}
	repo.On("GetConversationByID", mock.Anything, int64(10)).Return(conv, nil)

	convID := int64(10)
	_, err := svc.SendMessage(context.Background(), 3, SendMessageRequest{ConversationID: &convID, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetMessages_NonParticipantGetsNotFound(t *testing.T) {
	repo := new(MockChatRepository)
	svc := NewService(repo, new(MockUserGetter), nil, nil)

	conv := &domain.Conversation{ID: 10, ParticipantA: 1, ParticipantB: 2}
	repo.On("GetConversationByID", mock.Anything, int64(10)).Return(conv, nil)

	_, err := svc.GetMessages(context.Background(), 3, 10, 50, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListConversations_Enriched(t *testing.T) {
	repo := new(MockChatRepository)
	users := new(MockUserGetter)
	svc := NewService(repo, users, nil, nil)

	convs := []domain.Conversation{{ID: 10, ParticipantA: 1, ParticipantB: 2, LastMessageAt: time.Now()}}
	last := &domain.Message{ID: 500, ConversationID: 10, SenderID: 2, Content: "latest"}

	repo.On("ListConversations", mock.Anything, int64(1), 20, 0).Return(convs, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Name: "Bob", PasswordHash: "secret"}, nil)
	repo.On("GetLastMessage", mock.Anything, int64(10)).Return(last, nil)
	repo.On("CountUnread", mock.Anything, int64(10), int64(1)).Return(int64(3), nil)

	got, err := svc.ListConversations(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].OtherUser)
	assert.Equal(t, "Bob", got[0].OtherUser.Name)
	assert.Empty(t, got[0].OtherUser.PasswordHash)
	assert.Equal(t, "latest", got[0].LastMessage.Content)
	assert.Equal(t, 3, got[0].UnreadCount)
}

func TestService_MarkRead_NotifiesCounterpart(t *testing.T) {
	repo := new(MockChatRepository)
	publisher := new(MockPublisher)
	svc := NewService(repo, new(MockUserGetter), publisher, nil)

	conv := &domain.Conversation{ID: 10, ParticipantA: 1, ParticipantB: 2}
	repo.On("GetConversationByID", mock.Anything, int64(10)).Return(conv, nil)
	repo.On("MarkRead", mock.Anything, int64(10), int64(2)).Return(nil)
	publisher.On("SendToUser", mock.Anything, int64(1), mock.MatchedBy(func(e *realtime.Event) bool {
		return e.Type == realtime.EventRead
	})).Return()

	require.NoError(t, svc.MarkRead(context.Background(), 2, 10))
	publisher.AssertExpectations(t)
}

func TestService_SendMessage_UnknownRecipient(t *testing.T) {
	users := new(MockUserGetter)
	svc := NewService(new(MockChatRepository), users, nil, nil)

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	recipient := int64(404)
	_, err := svc.SendMessage(context.Background(), 1, SendMessageRequest{RecipientID: &recipient, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}
