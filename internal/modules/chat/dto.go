package chat

import "rentora/internal/domain"

// SendMessageRequest targets either an existing conversation or a recipient.
// With recipient_id the conversation is found or created on the fly.
type SendMessageRequest struct {
	ConversationID *int64 `json:"conversation_id"`
	RecipientID    *int64 `json:"recipient_id"`
	Content        string `json:"content" binding:"required"`

	// Opaque client token echoed back so an optimistic UI can swap its
	// placeholder for the stored message.
	ClientRef string `json:"client_ref"`
}

type SendMessageResponse struct {
	Message   *domain.Message `json:"message"`
	ClientRef string          `json:"client_ref,omitempty"`
}
