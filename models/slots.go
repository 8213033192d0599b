package models

// TimeSlot is a candidate booking window for an offering on a given date.
// Slots are generated from the provider's daily template; they are not
// first-class documents. Available flips to false once the window is booked
// or under a live lease from another session.
type TimeSlot struct {
	ID        string  `json:"id"`
	Start     int     `json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End       int     `json:"end"`
	Time      string  `json:"time"` // display form, e.g. "09:00"
	Date      string  `json:"date"` // "2006-01-02"
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// SlotHoldView is the client-facing snapshot of a running hold.
type SlotHoldView struct {
	SlotID           string    `json:"slotId,omitempty"`
	State            string    `json:"state"`
	RemainingSeconds int       `json:"remainingSeconds"`
	Slot             *TimeSlot `json:"slot,omitempty"`
}
