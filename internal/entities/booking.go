package entities

import (
	"time"

	"homeaway/internal/calendar"
)

type CreateBookingRequest struct {
	PropertyID int       `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
}

type BookingResponse struct {
	Code          string    `json:"code"`
	PropertyID    int       `json:"property_id"`
	PropertyName  string    `json:"property_name,omitempty"`
	Country       string    `json:"country,omitempty"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	TotalNights   int       `json:"total_nights"`
	OrderTotal    float64   `json:"order_total"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CheckoutSessionResponse points the client at the Stripe-hosted payment
// page for a freshly created booking.
type CheckoutSessionResponse struct {
	Code      string `json:"code"`
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type QuoteRequest struct {
	PropertyID int        `json:"property_id"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
}

type QuoteResponse struct {
	PropertyID int             `json:"property_id"`
	Totals     calendar.Totals `json:"totals"`
}
