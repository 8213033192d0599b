package booking

import (
	"sync"
	"time"

	"servify/models"
)

// Hold states. A hold moves Idle -> Held -> Expired, and Clear returns it
// to Idle from any state.
const (
	HoldIdle    = "idle"
	HoldHeld    = "held"
	HoldExpired = "expired"
)

// HoldConfig configures one SlotHold.
type HoldConfig struct {
	// DurationSeconds is the countdown length. Required.
	DurationSeconds int
	// TickEvery is the countdown resolution. Zero means one second.
	TickEvery time.Duration
	// OnExpire fires once, outside the lock, when the countdown reaches zero.
	OnExpire func(slot models.TimeSlot)
}

// SlotHold is a session-scoped, time-bounded claim on a slot. The countdown
// timer is owned by the hold: selecting a new slot cancels the previous
// timer before starting the next, so at most one timer runs per hold.
//
// Expiry keeps the selected slot populated so an in-progress checkout view
// can still render it; only Clear discards it.
type SlotHold struct {
	mu        sync.Mutex
	cfg       HoldConfig
	state     string
	slot      *models.TimeSlot
	remaining int
	ticker    *time.Ticker
	stop      chan struct{}
}

// NewSlotHold returns a hold in the Idle state.
func NewSlotHold(cfg HoldConfig) *SlotHold {
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = time.Second
	}
	return &SlotHold{cfg: cfg, state: HoldIdle}
}

// Select places a hold on the given slot and starts the countdown. Any
// running countdown is cancelled first. The slot must be available.
func (h *SlotHold) Select(slot models.TimeSlot) error {
	if !slot.Available {
		return ErrSlotUnavailable
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopTimerLocked()

	held := slot
	h.slot = &held
	h.remaining = h.cfg.DurationSeconds
	h.state = HoldHeld

	h.ticker = time.NewTicker(h.cfg.TickEvery)
	h.stop = make(chan struct{})
	go h.run(h.ticker, h.stop)

	return nil
}

func (h *SlotHold) run(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			h.Tick()
		case <-stop:
			return
		}
	}
}

// Tick advances the countdown by one second. Ticks on a hold that is not
// Held are no-ops, so a stale ticker fire after expiry cannot double-count.
func (h *SlotHold) Tick() {
	h.mu.Lock()
	if h.state != HoldHeld {
		h.mu.Unlock()
		return
	}
	h.remaining--
	if h.remaining > 0 {
		h.mu.Unlock()
		return
	}

	h.remaining = 0
	h.state = HoldExpired
	h.stopTimerLocked()
	onExpire := h.cfg.OnExpire
	var expired models.TimeSlot
	if h.slot != nil {
		expired = *h.slot
	}
	h.mu.Unlock()

	if onExpire != nil {
		onExpire(expired)
	}
}

// Clear discards all hold state: the timer stops, the slot reference is
// dropped and the countdown resets to zero. Safe to call repeatedly and
// from any state.
func (h *SlotHold) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopTimerLocked()
	h.slot = nil
	h.remaining = 0
	h.state = HoldIdle
}

// Snapshot returns the client-facing view of the hold.
func (h *SlotHold) Snapshot() models.SlotHoldView {
	h.mu.Lock()
	defer h.mu.Unlock()

	view := models.SlotHoldView{
		State:            h.state,
		RemainingSeconds: h.remaining,
	}
	if h.slot != nil {
		slot := *h.slot
		view.Slot = &slot
		view.SlotID = slot.ID
	}
	return view
}

// stopTimerLocked cancels the running countdown. Callers hold h.mu.
func (h *SlotHold) stopTimerLocked() {
	if h.stop != nil {
		close(h.stop)
		h.stop = nil
	}
	if h.ticker != nil {
		h.ticker.Stop()
		h.ticker = nil
	}
}
