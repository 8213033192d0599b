package bookingRepo

import "servify/models"

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	// GetByOfferingAndDate returns bookings for one offering on one date;
	// the slot source uses it to flip booked windows unavailable.
	GetByOfferingAndDate(offeringID, date string) ([]models.Booking, error)
	GetByUser(userID string) ([]models.Booking, error)
	Create(booking *models.Booking) error
	UpdatePaymentStatus(id, status string) error
	Cancel(id string) error
}
