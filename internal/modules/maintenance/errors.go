package maintenance

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrNoActiveLease     = errors.New("tenant has no active lease for this room")
	ErrInvalidTransition = errors.New("invalid ticket status transition")
)
