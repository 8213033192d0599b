package booking

import (
	"fmt"
	"math"

	"servify/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// CheckoutHandoff is the boundary to the external payment session creator:
// given a booking, it returns a redirect URL and nothing more.
type CheckoutHandoff interface {
	CreateCheckoutSession(booking *models.Booking) (string, error)
}

// StripeCheckout creates Stripe Checkout sessions. stripe.Key is set once
// at startup from config.
type StripeCheckout struct {
	SuccessURL string
	CancelURL  string
	Currency   string
}

func (sc *StripeCheckout) CreateCheckoutSession(booking *models.Booking) (string, error) {
	currency := sc.Currency
	if currency == "" {
		currency = "usd"
	}
	name := fmt.Sprintf("Booking %s on %s at %02d:%02d", booking.OfferingID, booking.Date, booking.Start/60, booking.Start%60)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(sc.SuccessURL),
		CancelURL:         stripe.String(sc.CancelURL),
		ClientReferenceID: stripe.String(booking.ID),
		CustomerEmail:     stripe.String(booking.Customer.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(toMinorUnits(booking.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	checkoutSession, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return checkoutSession.URL, nil
}

// toMinorUnits converts a decimal amount to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
