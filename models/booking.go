package models

import "time"

// Booking is the confirmed (or payment-pending) record written once a held
// slot passes checkout validation.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	OfferingID    string    `bson:"offering_id" json:"offering_id"`
	ProviderID    string    `bson:"provider_id" json:"provider_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Date          string    `bson:"date" json:"date"`
	SlotID        string    `bson:"slot_id" json:"slot_id"`
	Start         int       `bson:"start" json:"start"`
	End           int       `bson:"end" json:"end"`
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentStatus string    `bson:"payment_status" json:"payment_status"` // "pending", "paid"
	Customer      Customer  `bson:"customer" json:"customer"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// Customer carries the contact and address fields validated before the
// payment handoff.
type Customer struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
}

// BookingSession holds checkout context between slot browsing and payment
// handoff. It lives in Redis under its SessionID with a bounded TTL.
type BookingSession struct {
	SessionID    string    `json:"sessionId"`
	UserID       string    `json:"userId"`
	OfferingID   string    `json:"offeringId"`
	ProviderID   string    `json:"providerId"`
	Date         string    `json:"date"`
	SelectedSlot *TimeSlot `json:"selectedSlot,omitempty"`
}
