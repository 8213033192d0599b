package booking

import (
	"testing"
	"time"

	"servify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHold returns a hold whose real ticker is effectively disabled so
// tests drive the countdown deterministically through Tick.
func testHold(duration int, onExpire func(models.TimeSlot)) *SlotHold {
	return NewSlotHold(HoldConfig{
		DurationSeconds: duration,
		TickEvery:       time.Hour,
		OnExpire:        onExpire,
	})
}

func availableSlot(id string) models.TimeSlot {
	return models.TimeSlot{
		ID:        id,
		Start:     540,
		End:       600,
		Time:      "09:00",
		Date:      "2026-03-01",
		Price:     120,
		Available: true,
	}
}

func TestSlotHold_SelectStartsCountdown(t *testing.T) {
	h := testHold(10, nil)

	require.NoError(t, h.Select(availableSlot("s1")))

	view := h.Snapshot()
	assert.Equal(t, HoldHeld, view.State)
	assert.Equal(t, 10, view.RemainingSeconds)
	require.NotNil(t, view.Slot)
	assert.Equal(t, "s1", view.Slot.ID)
}

func TestSlotHold_SelectRejectsUnavailableSlot(t *testing.T) {
	h := testHold(10, nil)

	slot := availableSlot("s1")
	slot.Available = false

	err := h.Select(slot)
	require.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, HoldIdle, h.Snapshot().State)
}

func TestSlotHold_CountdownIsMonotonicAndNeverNegative(t *testing.T) {
	h := testHold(5, nil)
	require.NoError(t, h.Select(availableSlot("s1")))

	previous := h.Snapshot().RemainingSeconds
	for i := 0; i < 20; i++ {
		h.Tick()
		current := h.Snapshot().RemainingSeconds
		assert.LessOrEqual(t, current, previous)
		assert.GreaterOrEqual(t, current, 0)
		previous = current
	}
	assert.Equal(t, 0, h.Snapshot().RemainingSeconds)
	assert.Equal(t, HoldExpired, h.Snapshot().State)
}

func TestSlotHold_ReselectCancelsPreviousCountdown(t *testing.T) {
	h := testHold(10, nil)
	require.NoError(t, h.Select(availableSlot("s1")))

	h.Tick()
	h.Tick()
	h.Tick()
	assert.Equal(t, 7, h.Snapshot().RemainingSeconds)

	// Re-select resets to the full duration; a single tick must decrement
	// exactly once.
	require.NoError(t, h.Select(availableSlot("s2")))
	assert.Equal(t, 10, h.Snapshot().RemainingSeconds)

	h.Tick()
	view := h.Snapshot()
	assert.Equal(t, 9, view.RemainingSeconds)
	assert.Equal(t, "s2", view.Slot.ID)
}

func TestSlotHold_ExpiryRetainsSelectedSlot(t *testing.T) {
	h := testHold(900, nil)
	require.NoError(t, h.Select(availableSlot("1")))

	for i := 0; i < 900; i++ {
		h.Tick()
	}

	view := h.Snapshot()
	assert.Equal(t, HoldExpired, view.State)
	assert.Equal(t, 0, view.RemainingSeconds)
	require.NotNil(t, view.Slot)
	assert.Equal(t, "1", view.Slot.ID)
}

func TestSlotHold_OnExpireFiresOnce(t *testing.T) {
	var expired []string
	h := testHold(2, func(slot models.TimeSlot) {
		expired = append(expired, slot.ID)
	})
	require.NoError(t, h.Select(availableSlot("s1")))

	for i := 0; i < 5; i++ {
		h.Tick()
	}
	assert.Equal(t, []string{"s1"}, expired)
}

func TestSlotHold_ClearIsIdempotentFromAnyState(t *testing.T) {
	h := testHold(5, nil)

	// Idle.
	h.Clear()
	assert.Equal(t, HoldIdle, h.Snapshot().State)

	// Held.
	require.NoError(t, h.Select(availableSlot("s1")))
	h.Clear()
	view := h.Snapshot()
	assert.Equal(t, HoldIdle, view.State)
	assert.Equal(t, 0, view.RemainingSeconds)
	assert.Nil(t, view.Slot)

	// Expired.
	require.NoError(t, h.Select(availableSlot("s2")))
	for i := 0; i < 5; i++ {
		h.Tick()
	}
	h.Clear()
	h.Clear()
	view = h.Snapshot()
	assert.Equal(t, HoldIdle, view.State)
	assert.Equal(t, 0, view.RemainingSeconds)
	assert.Nil(t, view.Slot)

	// Ticks after clear stay no-ops.
	h.Tick()
	assert.Equal(t, 0, h.Snapshot().RemainingSeconds)
}

func TestSlotHold_RealTickerDrivesCountdown(t *testing.T) {
	h := NewSlotHold(HoldConfig{
		DurationSeconds: 3,
		TickEvery:       10 * time.Millisecond,
	})
	require.NoError(t, h.Select(availableSlot("s1")))

	assert.Eventually(t, func() bool {
		view := h.Snapshot()
		return view.State == HoldExpired && view.RemainingSeconds == 0
	}, time.Second, 5*time.Millisecond)
}
