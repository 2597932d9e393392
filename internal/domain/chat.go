package domain

import "time"

// Conversation is a private two-party thread.
//
// ParticipantA always holds the smaller user ID. Normalizing the pair lets
// a single unique index enforce "at most one conversation per pair" even
// under concurrent first-message sends.
type Conversation struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	ParticipantA int64 `json:"participant_a" gorm:"not null;uniqueIndex:idx_conversation_pair"`
	ParticipantB int64 `json:"participant_b" gorm:"not null;uniqueIndex:idx_conversation_pair"`

	// Bumped to the creation time of the newest message, for inbox ordering.
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`

	// Filled by the service, not stored.
	OtherUser   *User    `json:"other_user,omitempty" gorm:"-"`
	LastMessage *Message `json:"last_message,omitempty" gorm:"-"`
	UnreadCount int      `json:"unread_count" gorm:"-"`
}

func (Conversation) TableName() string { return "conversations" }

// Participants returns the pair in normalized (a < b) order.
func (c *Conversation) Participants() (int64, int64) {
	return c.ParticipantA, c.ParticipantB
}

// OtherParticipant returns the counterpart of userID, or 0 when userID is
// not part of the conversation.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	switch userID {
	case c.ParticipantA:
		return c.ParticipantB
	case c.ParticipantB:
		return c.ParticipantA
	}
	return 0
}

func (c *Conversation) HasParticipant(userID int64) bool {
	return userID == c.ParticipantA || userID == c.ParticipantB
}

// NormalizePair orders two user IDs so the smaller one comes first.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

type Message struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	ConversationID int64     `json:"conversation_id" gorm:"not null;index"`
	SenderID       int64     `json:"sender_id" gorm:"not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	IsRead         bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`

	Sender *User `json:"sender,omitempty" gorm:"-"`
}

func (Message) TableName() string { return "messages" }
