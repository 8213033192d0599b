package booking

import "errors"

var (
	// ErrSlotUnavailable means the requested slot is booked, past, or blocked.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrSlotHeld means another session holds the server-side lease on the slot.
	ErrSlotHeld = errors.New("slot is held by another session")
	// ErrSessionNotFound means the booking session is missing or expired.
	ErrSessionNotFound = errors.New("booking session not found or expired")
	// ErrNoActiveHold means checkout was attempted without a live hold.
	ErrNoActiveHold = errors.New("no active slot hold for this session")
)
