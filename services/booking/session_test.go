package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"servify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaser struct {
	mu     sync.Mutex
	leases map[string]string
}

func newFakeLeaser() *fakeLeaser {
	return &fakeLeaser{leases: map[string]string{}}
}

func (l *fakeLeaser) Acquire(_ context.Context, slotID, sessionID string, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if holder, ok := l.leases[slotID]; ok && holder != sessionID {
		return ErrSlotHeld
	}
	l.leases[slotID] = sessionID
	return nil
}

func (l *fakeLeaser) Release(_ context.Context, slotID, sessionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.leases[slotID] == sessionID {
		delete(l.leases, slotID)
	}
	return nil
}

func (l *fakeLeaser) Holder(_ context.Context, slotID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.leases[slotID], nil
}

func TestSessionHoldExpiry_ReleasesLease(t *testing.T) {
	leaser := newFakeLeaser()
	svc := &DefaultBookingSessionService{
		Leaser:       leaser,
		HoldDuration: 3 * time.Second,
	}

	slot := availableSlot("slot1")
	require.NoError(t, leaser.Acquire(context.Background(), slot.ID, "sess1", time.Minute))

	hold := svc.holdFor("sess1")
	require.NoError(t, hold.Select(slot))

	for i := 0; i < 3; i++ {
		hold.Tick()
	}

	view := hold.Snapshot()
	assert.Equal(t, HoldExpired, view.State)

	holder, err := leaser.Holder(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Empty(t, holder, "expiry must release the server-side lease")
}

func TestFakeLeaser_MutualExclusion(t *testing.T) {
	leaser := newFakeLeaser()
	ctx := context.Background()

	require.NoError(t, leaser.Acquire(ctx, "slot1", "sess1", time.Minute))
	assert.ErrorIs(t, leaser.Acquire(ctx, "slot1", "sess2", time.Minute), ErrSlotHeld)

	// Re-acquire by the owner refreshes, release by a non-owner is a no-op.
	require.NoError(t, leaser.Acquire(ctx, "slot1", "sess1", time.Minute))
	require.NoError(t, leaser.Release(ctx, "slot1", "sess2"))
	holder, _ := leaser.Holder(ctx, "slot1")
	assert.Equal(t, "sess1", holder)

	require.NoError(t, leaser.Release(ctx, "slot1", "sess1"))
	holder, _ = leaser.Holder(ctx, "slot1")
	assert.Empty(t, holder)
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.BookingSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]models.BookingSession{}}
}

func (s *memorySessionStore) Save(_ context.Context, session *models.BookingSession, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type stubOfferingRepo struct {
	offering models.ProviderService
}

func (r *stubOfferingRepo) GetByID(id string) (*models.ProviderService, error) {
	if id != r.offering.ID {
		return nil, fmt.Errorf("offering with id %s not found", id)
	}
	o := r.offering
	return &o, nil
}

func (r *stubOfferingRepo) GetByProvider(string) ([]models.ProviderService, error) { return nil, nil }
func (r *stubOfferingRepo) GetApprovedBySubcategory(string) ([]models.ProviderService, error) {
	return nil, nil
}
func (r *stubOfferingRepo) GetByStatus(string) ([]models.ProviderService, error) { return nil, nil }
func (r *stubOfferingRepo) Create(*models.ProviderService) error                 { return nil }
func (r *stubOfferingRepo) Update(*models.ProviderService) error                 { return nil }
func (r *stubOfferingRepo) Delete(string) error                                  { return nil }

type stubBookingRepo struct {
	created []models.Booking
}

func (r *stubBookingRepo) GetByID(string) (*models.Booking, error) { return nil, nil }
func (r *stubBookingRepo) GetByOfferingAndDate(string, string) ([]models.Booking, error) {
	return nil, nil
}
func (r *stubBookingRepo) GetByUser(string) ([]models.Booking, error) { return nil, nil }
func (r *stubBookingRepo) Create(b *models.Booking) error {
	r.created = append(r.created, *b)
	return nil
}
func (r *stubBookingRepo) UpdatePaymentStatus(string, string) error { return nil }
func (r *stubBookingRepo) Cancel(string) error                      { return nil }

type stubSlotSource struct {
	slots []models.TimeSlot
}

func (s *stubSlotSource) SlotsFor(context.Context, models.ProviderService, string) ([]models.TimeSlot, error) {
	return append([]models.TimeSlot(nil), s.slots...), nil
}

type stubCheckout struct {
	url string
	err error
}

func (c *stubCheckout) CreateCheckoutSession(*models.Booking) (string, error) {
	return c.url, c.err
}

func workflowSlot(start int) models.TimeSlot {
	return models.TimeSlot{
		ID:        SlotID("off1", "2026-03-02", start),
		Start:     start,
		End:       start + 60,
		Time:      fmt.Sprintf("%02d:%02d", start/60, start%60),
		Date:      "2026-03-02",
		Price:     120,
		Available: true,
	}
}

func workflowService() (*DefaultBookingSessionService, *fakeLeaser, *stubBookingRepo, *memorySessionStore) {
	leaser := newFakeLeaser()
	bookings := &stubBookingRepo{}
	store := newMemorySessionStore()
	svc := &DefaultBookingSessionService{
		Offerings: &stubOfferingRepo{offering: models.ProviderService{
			ID: "off1", ProviderID: "prov1", Price: 120,
			Status: models.OfferingStatusApproved, IsActive: true,
		}},
		Bookings:     bookings,
		Slots:        &stubSlotSource{slots: []models.TimeSlot{workflowSlot(540), workflowSlot(600)}},
		Leaser:       leaser,
		Checkout:     &stubCheckout{url: "https://pay.example/cs_1"},
		Sessions:     store,
		HoldDuration: 30 * time.Second,
	}
	return svc, leaser, bookings, store
}

func validTestCustomer() models.Customer {
	return models.Customer{
		Name:    "Ada",
		Email:   "ada@example.com",
		Phone:   "+123456789",
		Address: "1 Main St",
		City:    "Springfield",
	}
}

func TestSelectSlot_ReselectReleasesPreviousLease(t *testing.T) {
	svc, leaser, _, _ := workflowService()
	ctx := context.Background()

	session, slots, err := svc.InitiateSession("user1", "off1", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)
	holder, _ := leaser.Holder(ctx, slots[0].ID)
	require.Equal(t, session.SessionID, holder)

	view, err := svc.SelectSlot(session.SessionID, slots[1].ID)
	require.NoError(t, err)
	assert.Equal(t, slots[1].ID, view.SlotID)

	holder, _ = leaser.Holder(ctx, slots[1].ID)
	assert.Equal(t, session.SessionID, holder)
	holder, _ = leaser.Holder(ctx, slots[0].ID)
	assert.Empty(t, holder, "the abandoned slot must free up immediately")
}

func TestSelectSlot_SameSlotKeepsLease(t *testing.T) {
	svc, leaser, _, _ := workflowService()
	ctx := context.Background()

	session, slots, err := svc.InitiateSession("user1", "off1", "2026-03-02")
	require.NoError(t, err)

	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)
	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)

	holder, _ := leaser.Holder(ctx, slots[0].ID)
	assert.Equal(t, session.SessionID, holder)
}

func TestConfirm_CreatesBookingAndCleansUp(t *testing.T) {
	svc, leaser, bookings, store := workflowService()
	ctx := context.Background()

	session, slots, err := svc.InitiateSession("user1", "off1", "2026-03-02")
	require.NoError(t, err)
	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)

	record, redirectURL, err := svc.Confirm(session.SessionID, validTestCustomer())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_1", redirectURL)
	assert.Equal(t, slots[0].ID, record.SlotID)
	assert.Equal(t, "pending", record.PaymentStatus)
	require.Len(t, bookings.created, 1)

	holder, _ := leaser.Holder(ctx, slots[0].ID)
	assert.Empty(t, holder)
	_, err = store.Get(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirm_RejectsAfterLeaseLoss(t *testing.T) {
	svc, leaser, bookings, _ := workflowService()
	ctx := context.Background()

	session, slots, err := svc.InitiateSession("user1", "off1", "2026-03-02")
	require.NoError(t, err)
	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)

	// The lease TTL lapses and a rival session claims the slot while the
	// in-process countdown still reads held.
	require.NoError(t, leaser.Release(ctx, slots[0].ID, session.SessionID))
	require.NoError(t, leaser.Acquire(ctx, slots[0].ID, "rival-session", time.Minute))

	_, _, err = svc.Confirm(session.SessionID, validTestCustomer())
	assert.ErrorIs(t, err, ErrNoActiveHold)
	assert.Empty(t, bookings.created, "no booking may be written without the live lease")

	holder, _ := leaser.Holder(ctx, slots[0].ID)
	assert.Equal(t, "rival-session", holder, "the rival's lease must be untouched")
}

func TestConfirm_RejectsAfterLeaseExpiredUnclaimed(t *testing.T) {
	svc, leaser, bookings, _ := workflowService()
	ctx := context.Background()

	session, slots, err := svc.InitiateSession("user1", "off1", "2026-03-02")
	require.NoError(t, err)
	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)

	require.NoError(t, leaser.Release(ctx, slots[0].ID, session.SessionID))

	_, _, err = svc.Confirm(session.SessionID, validTestCustomer())
	assert.ErrorIs(t, err, ErrNoActiveHold)
	assert.Empty(t, bookings.created)
}

func TestCancel_ReleasesLeaseAndSession(t *testing.T) {
	svc, leaser, _, store := workflowService()
	ctx := context.Background()

	session, slots, err := svc.InitiateSession("user1", "off1", "2026-03-02")
	require.NoError(t, err)
	_, err = svc.SelectSlot(session.SessionID, slots[0].ID)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(session.SessionID))

	holder, _ := leaser.Holder(ctx, slots[0].ID)
	assert.Empty(t, holder)
	_, err = store.Get(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Cancelling again is a no-op.
	assert.NoError(t, svc.Cancel(session.SessionID))
}

func TestValidateCustomer(t *testing.T) {
	valid := models.Customer{
		Name:    "Ada",
		Email:   "ada@example.com",
		Phone:   "+123456789",
		Address: "1 Main St",
		City:    "Springfield",
	}
	assert.NoError(t, validateCustomer(valid))

	missingPhone := valid
	missingPhone.Phone = ""
	assert.Error(t, validateCustomer(missingPhone))

	missingAddress := valid
	missingAddress.Address = ""
	assert.Error(t, validateCustomer(missingAddress))

	assert.Error(t, validateCustomer(models.Customer{}))
}
