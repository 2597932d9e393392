package realtime

// Event is pushed to connected clients. Delivery is at-most-once and
// best-effort: the persisted row is always the source of truth.
type Event struct {
	Type           string      `json:"type"`
	ConversationID int64       `json:"conversation_id,omitempty"`
	SenderID       int64       `json:"sender_id,omitempty"`
	Payload        interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage   = "new_message"
	EventTyping       = "typing"
	EventRead         = "read"
	EventNotification = "notification"
)
