package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "servify/database/repository/booking"
	offeringRepo "servify/database/repository/offering"
	"servify/models"
	"servify/utils"

	"github.com/google/uuid"
)

// ExpirySweeper schedules a server-side lease release for the moment a hold
// would expire, so a dead process cannot strand a lease past its TTL.
type ExpirySweeper interface {
	ScheduleLeaseRelease(slotID, sessionID string, after time.Duration) error
}

// BookingSessionService drives the customer checkout workflow: start a
// session for an offering and date, hold a slot, confirm into a booking
// with a payment redirect, or cancel.
type BookingSessionService interface {
	InitiateSession(userID, offeringID, date string) (*models.BookingSession, []models.TimeSlot, error)
	SelectSlot(sessionID, slotID string) (models.SlotHoldView, error)
	HoldStatus(sessionID string) (models.SlotHoldView, error)
	Confirm(sessionID string, customer models.Customer) (*models.Booking, string, error)
	Cancel(sessionID string) error
}

// DefaultBookingSessionService is the production implementation. Sessions
// live in the session store; the hold countdown is in-process, one SlotHold
// per session.
type DefaultBookingSessionService struct {
	Offerings    offeringRepo.OfferingRepository
	Bookings     bookingRepo.BookingRepository
	Slots        SlotSource
	Leaser       SlotLeaser
	Sweeper      ExpirySweeper
	Checkout     CheckoutHandoff
	Sessions     SessionStore
	HoldDuration time.Duration

	mu    sync.Mutex
	holds map[string]*SlotHold
}

func (s *DefaultBookingSessionService) sessionTTL() time.Duration {
	// Sessions outlive the hold a little so an expired hold can still show
	// its retained slot.
	return s.HoldDuration + 5*time.Minute
}

// InitiateSession creates a session for one approved, active offering and
// returns the candidate slots for the requested date.
func (s *DefaultBookingSessionService) InitiateSession(userID, offeringID, date string) (*models.BookingSession, []models.TimeSlot, error) {
	ctx := context.Background()

	offering, err := s.Offerings.GetByID(offeringID)
	if err != nil {
		return nil, nil, err
	}
	if offering.Status != models.OfferingStatusApproved || !offering.IsActive {
		return nil, nil, fmt.Errorf("offering %s is not bookable", offeringID)
	}

	slots, err := s.Slots.SlotsFor(ctx, *offering, date)
	if err != nil {
		return nil, nil, err
	}

	session := models.BookingSession{
		SessionID:  uuid.New().String(),
		UserID:     userID,
		OfferingID: offering.ID,
		ProviderID: offering.ProviderID,
		Date:       date,
	}
	if err := s.Sessions.Save(ctx, &session, s.sessionTTL()); err != nil {
		return nil, nil, err
	}
	return &session, slots, nil
}

// SelectSlot acquires the server-side lease and starts the countdown.
// Selecting again while held cancels the previous countdown and releases
// the previous slot's lease; losing the lease race returns ErrSlotHeld.
func (s *DefaultBookingSessionService) SelectSlot(sessionID, slotID string) (models.SlotHoldView, error) {
	ctx := context.Background()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.SlotHoldView{}, err
	}
	offering, err := s.Offerings.GetByID(session.OfferingID)
	if err != nil {
		return models.SlotHoldView{}, err
	}

	slots, err := s.Slots.SlotsFor(ctx, *offering, session.Date)
	if err != nil {
		return models.SlotHoldView{}, err
	}
	var selected *models.TimeSlot
	for i := range slots {
		if slots[i].ID == slotID {
			selected = &slots[i]
			break
		}
	}
	if selected == nil {
		return models.SlotHoldView{}, fmt.Errorf("slot %s not found for date %s", slotID, session.Date)
	}
	// The slot source marks our own lease unavailable too; only reject when
	// someone else holds it.
	if !selected.Available {
		holder, herr := s.Leaser.Holder(ctx, slotID)
		if herr != nil {
			return models.SlotHoldView{}, herr
		}
		if holder != "" && holder != sessionID {
			return models.SlotHoldView{}, ErrSlotHeld
		}
		if holder == "" {
			return models.SlotHoldView{}, ErrSlotUnavailable
		}
		selected.Available = true
	}

	if err := s.Leaser.Acquire(ctx, slotID, sessionID, s.HoldDuration); err != nil {
		return models.SlotHoldView{}, err
	}

	hold := s.holdFor(sessionID)
	if err := hold.Select(*selected); err != nil {
		releaseErr := s.Leaser.Release(ctx, slotID, sessionID)
		if releaseErr != nil {
			utils.GetLogger().Sugar().Warnf("failed to release lease for slot %s: %v", slotID, releaseErr)
		}
		return models.SlotHoldView{}, err
	}

	// A re-select must not leave the abandoned slot blocked until its TTL.
	if prev := session.SelectedSlot; prev != nil && prev.ID != slotID {
		if err := s.Leaser.Release(ctx, prev.ID, sessionID); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to release lease for slot %s: %v", prev.ID, err)
		}
	}

	if s.Sweeper != nil {
		if err := s.Sweeper.ScheduleLeaseRelease(slotID, sessionID, s.HoldDuration+time.Minute); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to schedule lease sweep for slot %s: %v", slotID, err)
		}
	}

	session.SelectedSlot = selected
	if err := s.Sessions.Save(ctx, session, s.sessionTTL()); err != nil {
		return models.SlotHoldView{}, err
	}
	return hold.Snapshot(), nil
}

// HoldStatus reports the countdown for a session. A session whose process
// restarted has no in-memory hold; it reads as idle.
func (s *DefaultBookingSessionService) HoldStatus(sessionID string) (models.SlotHoldView, error) {
	ctx := context.Background()
	if _, err := s.Sessions.Get(ctx, sessionID); err != nil {
		return models.SlotHoldView{}, err
	}

	s.mu.Lock()
	hold := s.holds[sessionID]
	s.mu.Unlock()

	if hold == nil {
		return models.SlotHoldView{State: HoldIdle}, nil
	}
	return hold.Snapshot(), nil
}

// Confirm validates customer data, writes the booking record, releases the
// hold and lease, and hands off to the payment session creator. The
// returned string is the redirect URL.
func (s *DefaultBookingSessionService) Confirm(sessionID string, customer models.Customer) (*models.Booking, string, error) {
	ctx := context.Background()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if err := validateCustomer(customer); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	hold := s.holds[sessionID]
	s.mu.Unlock()
	if hold == nil || session.SelectedSlot == nil {
		return nil, "", ErrNoActiveHold
	}
	view := hold.Snapshot()
	if view.State != HoldHeld {
		return nil, "", ErrNoActiveHold
	}

	slot := *session.SelectedSlot

	// The lease TTL runs from Acquire while the countdown starts later, so
	// the lease can lapse while the hold still reads held. Only the live
	// lease owner may write the booking.
	holder, err := s.Leaser.Holder(ctx, slot.ID)
	if err != nil {
		return nil, "", err
	}
	if holder != sessionID {
		return nil, "", ErrNoActiveHold
	}

	record := models.Booking{
		ID:            uuid.New().String(),
		OfferingID:    session.OfferingID,
		ProviderID:    session.ProviderID,
		UserID:        session.UserID,
		Date:          session.Date,
		SlotID:        slot.ID,
		Start:         slot.Start,
		End:           slot.End,
		Amount:        slot.Price,
		PaymentStatus: "pending",
		Customer:      customer,
		CreatedAt:     time.Now(),
	}
	if err := s.Bookings.Create(&record); err != nil {
		return nil, "", fmt.Errorf("failed to create booking: %w", err)
	}

	redirectURL, err := s.Checkout.CreateCheckoutSession(&record)
	if err != nil {
		// The booking draft stays; payment can be retried from it.
		return &record, "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	// The booking record now makes the slot unavailable; the lease has done
	// its job.
	hold.Clear()
	s.dropHold(sessionID)
	if err := s.Leaser.Release(ctx, slot.ID, sessionID); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to release lease for slot %s: %v", slot.ID, err)
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to delete session %s: %v", sessionID, err)
	}

	return &record, redirectURL, nil
}

// Cancel clears the hold, releases the lease and deletes the session.
// Idempotent: cancelling an unknown session is not an error.
func (s *DefaultBookingSessionService) Cancel(sessionID string) error {
	ctx := context.Background()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err == ErrSessionNotFound {
		s.clearHold(ctx, sessionID, "")
		return nil
	}
	if err != nil {
		return err
	}

	slotID := ""
	if session.SelectedSlot != nil {
		slotID = session.SelectedSlot.ID
	}
	s.clearHold(ctx, sessionID, slotID)

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingSessionService) clearHold(ctx context.Context, sessionID, slotID string) {
	s.mu.Lock()
	hold := s.holds[sessionID]
	delete(s.holds, sessionID)
	s.mu.Unlock()

	if hold != nil {
		hold.Clear()
	}
	if slotID != "" {
		if err := s.Leaser.Release(ctx, slotID, sessionID); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to release lease for slot %s: %v", slotID, err)
		}
	}
}

// holdFor returns the session's hold, creating it on first use. The expiry
// callback releases the server-side lease so the slot frees up for others
// the moment the countdown ends.
func (s *DefaultBookingSessionService) holdFor(sessionID string) *SlotHold {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.holds == nil {
		s.holds = make(map[string]*SlotHold)
	}
	if hold, ok := s.holds[sessionID]; ok {
		return hold
	}
	hold := NewSlotHold(HoldConfig{
		DurationSeconds: int(s.HoldDuration / time.Second),
		OnExpire: func(slot models.TimeSlot) {
			if err := s.Leaser.Release(context.Background(), slot.ID, sessionID); err != nil {
				utils.GetLogger().Sugar().Warnf("failed to release expired lease for slot %s: %v", slot.ID, err)
			}
		},
	})
	s.holds[sessionID] = hold
	return hold
}

func (s *DefaultBookingSessionService) dropHold(sessionID string) {
	s.mu.Lock()
	delete(s.holds, sessionID)
	s.mu.Unlock()
}

func validateCustomer(customer models.Customer) error {
	switch {
	case customer.Name == "":
		return fmt.Errorf("customer name is required")
	case customer.Email == "":
		return fmt.Errorf("customer email is required")
	case customer.Phone == "":
		return fmt.Errorf("customer phone is required")
	case customer.Address == "":
		return fmt.Errorf("customer address is required")
	}
	return nil
}
