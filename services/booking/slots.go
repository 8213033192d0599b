package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "servify/database/repository/booking"
	"servify/models"
)

// Daily slot template: hourly windows from open to close, minutes from
// midnight.
const (
	dayOpenMinute  = 9 * 60  // 09:00
	dayCloseMinute = 17 * 60 // 17:00
	slotLengthMins = 60
	slotDateLayout = "2006-01-02"
)

// SlotSource produces the candidate time slots for an offering on a date.
type SlotSource interface {
	SlotsFor(ctx context.Context, offering models.ProviderService, date string) ([]models.TimeSlot, error)
}

// DailyTemplateSlotSource instantiates the fixed daily template and flips
// windows unavailable when they are booked, under a live lease, or already
// past for today. Every call re-reads the store; slots are never persisted.
type DailyTemplateSlotSource struct {
	Bookings bookingRepo.BookingRepository
	Leaser   SlotLeaser
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// SlotID builds the deterministic identifier for one template window.
func SlotID(offeringID, date string, start int) string {
	return fmt.Sprintf("%s:%s:%d", offeringID, date, start)
}

func (s *DailyTemplateSlotSource) SlotsFor(ctx context.Context, offering models.ProviderService, date string) ([]models.TimeSlot, error) {
	if _, err := time.Parse(slotDateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	bookings, err := s.Bookings.GetByOfferingAndDate(offering.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for offering %s: %w", offering.ID, err)
	}
	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked[b.SlotID] = true
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	slots := BuildDaySlots(offering, date, now, booked)

	// Live leases from other sessions also make a slot unselectable.
	if s.Leaser != nil {
		for i := range slots {
			if !slots[i].Available {
				continue
			}
			holder, err := s.Leaser.Holder(ctx, slots[i].ID)
			if err != nil {
				return nil, err
			}
			if holder != "" {
				slots[i].Available = false
			}
		}
	}

	return slots, nil
}

// BuildDaySlots instantiates the daily template for one offering and date.
// A window is unavailable when its ID appears in booked, or when it has
// already started as of now on that date. Emission order is start-time
// ascending.
func BuildDaySlots(offering models.ProviderService, date string, now time.Time, booked map[string]bool) []models.TimeSlot {
	var slots []models.TimeSlot
	isToday := now.Format(slotDateLayout) == date
	minuteOfDay := now.Hour()*60 + now.Minute()

	for start := dayOpenMinute; start+slotLengthMins <= dayCloseMinute; start += slotLengthMins {
		slot := models.TimeSlot{
			ID:    SlotID(offering.ID, date, start),
			Start: start,
			End:   start + slotLengthMins,
			Time:  fmt.Sprintf("%02d:%02d", start/60, start%60),
			Date:  date,
			Price: offering.Price,
		}
		slot.Available = !booked[slot.ID]
		if isToday && start <= minuteOfDay {
			slot.Available = false
		}
		slots = append(slots, slot)
	}
	return slots
}
