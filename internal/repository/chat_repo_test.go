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

func TestChatRepository_PairNormalization(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	conv := &domain.Conversation{ParticipantA: 9, ParticipantB: 3, LastMessageAt: time.Now()}
	require.NoError(t, repo.CreateConversation(ctx, conv))
	assert.EqualValues(t, 3, conv.ParticipantA)
	assert.EqualValues(t, 9, conv.ParticipantB)

	// Lookup works regardless of argument order.
	got, err := repo.GetConversationByParticipants(ctx, 9, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)

	got, err = repo.GetConversationByParticipants(ctx, 3, 9)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)
}

func TestChatRepository_DuplicatePairRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateConversation(ctx, &domain.Conversation{ParticipantA: 1, ParticipantB: 2, LastMessageAt: time.Now()}))

	// The reversed pair normalizes to the same row and hits the unique index.
	err := repo.CreateConversation(ctx, &domain.Conversation{ParticipantA: 2, ParticipantB: 1, LastMessageAt: time.Now()})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.CountConversationsByPair(ctx, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestChatRepository_MissingConversationIsNotAnError(t *testing.T) {
	db := newTestDB(t)

	conv, err := NewChatRepository(db).GetConversationByParticipants(context.Background(), 7, 8)
	require.NoError(t, err)
	assert.Nil(t, conv)
}

func TestChatRepository_AppendMessage_BumpsLastMessageAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	conv := &domain.Conversation{ParticipantA: 1, ParticipantB: 2, LastMessageAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.CreateConversation(ctx, conv))

	msg := &domain.Message{ConversationID: conv.ID, SenderID: 1, Content: "hello", CreatedAt: time.Now()}
	require.NoError(t, repo.AppendMessage(ctx, msg))

	got, err := repo.GetConversationByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, msg.CreatedAt, got.LastMessageAt, time.Second)
}

func TestChatRepository_GetMessages_ChronologicalOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	conv := &domain.Conversation{ParticipantA: 1, ParticipantB: 2, LastMessageAt: time.Now()}
	require.NoError(t, repo.CreateConversation(ctx, conv))

	base := time.Now().Add(-time.Minute)
	for i, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.AppendMessage(ctx, &domain.Message{
			ConversationID: conv.ID,
			SenderID:       1,
			Content:        content,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}))
	}

	msgs, err := repo.GetMessages(ctx, conv.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
	assert.Equal(t, "third", msgs[2].Content)
}

func TestChatRepository_ListConversations_NewestActivityFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	older := &domain.Conversation{ParticipantA: 1, ParticipantB: 2, LastMessageAt: time.Now().Add(-time.Hour)}
	newer := &domain.Conversation{ParticipantA: 1, ParticipantB: 3, LastMessageAt: time.Now()}
	require.NoError(t, repo.CreateConversation(ctx, older))
	require.NoError(t, repo.CreateConversation(ctx, newer))

	convs, err := repo.ListConversations(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, newer.ID, convs[0].ID)
	assert.Equal(t, older.ID, convs[1].ID)

	// User 3 only sees their own thread.
	convs, err = repo.ListConversations(ctx, 3, 20, 0)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, newer.ID, convs[0].ID)
}

func TestChatRepository_MarkReadAndCountUnread(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	conv := &domain.Conversation{ParticipantA: 1, ParticipantB: 2, LastMessageAt: time.Now()}
	require.NoError(t, repo.CreateConversation(ctx, conv))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendMessage(ctx, &domain.Message{
			ConversationID: conv.ID, SenderID: 1, Content: "hi", CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, repo.AppendMessage(ctx, &domain.Message{
		ConversationID: conv.ID, SenderID: 2, Content: "reply", CreatedAt: time.Now(),
	}))

	// User 2 has three unread from user 1; their own message does not count.
	unread, err := repo.CountUnread(ctx, conv.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	require.NoError(t, repo.MarkRead(ctx, conv.ID, 2))

	unread, err = repo.CountUnread(ctx, conv.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	// User 1 still has the reply unread.
	unread, err = repo.CountUnread(ctx, conv.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}
