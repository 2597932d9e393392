package chat

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmptyContent   = errors.New("message content is empty")
	ErrContentTooLong = errors.New("message content is too long")
	ErrSelfMessage    = errors.New("cannot message yourself")
	ErrBadTarget      = errors.New("exactly one of conversation_id or recipient_id is required")
)
