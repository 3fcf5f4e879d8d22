package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"homeaway/internal/db"
	"homeaway/internal/service"
)

// sessionResolver maps a PaymentIntent back to the checkout session that
// created it. Refund events only carry the intent.
type sessionResolver interface {
	SessionIDByPaymentIntentID(paymentIntentID string) (string, error)
}

type StripeWebhookHandler struct {
	StripeSecret   string
	bookingService *service.BookingService
	stripeService  sessionResolver
	senderService  *service.SenderService
	profiles       service.ProfileStore
	properties     service.PropertyStore
}

func NewStripeWebhookHandler(
	stripeSecret string,
	bookingService *service.BookingService,
	stripeService sessionResolver,
	senderService *service.SenderService,
	profiles service.ProfileStore,
	properties service.PropertyStore,
) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		StripeSecret:   stripeSecret,
		bookingService: bookingService,
		stripeService:  stripeService,
		senderService:  senderService,
		profiles:       profiles,
		properties:     properties,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.StripeSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("Error parsing checkout.session: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			log.Printf("No session ID in checkout.session.completed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		booking, err := h.bookingService.ConfirmBookingBySession(sess.ID)
		if err != nil {
			log.Printf("DB error: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		h.notifyGuest(booking)

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			log.Printf("Error parsing charge: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
			sessionID, err := h.stripeService.SessionIDByPaymentIntentID(charge.PaymentIntent.ID)
			if err != nil {
				log.Printf("No session found for PaymentIntent %s: %v", charge.PaymentIntent.ID, err)
				w.WriteHeader(http.StatusOK)
				return
			}
			// 500 so Stripe retries the event until the booking is updated.
			if err := h.bookingService.MarkBookingRefunded(sessionID); err != nil {
				log.Printf("DB error: %v", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
	default:
		log.Printf("Unhandled event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

// GetBookingBySessionID lets the post-checkout confirmation page look up the
// booking for the session it just completed.
func (h *StripeWebhookHandler) GetBookingBySessionID(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}
	booking, err := h.bookingService.ConfirmedBookingForSession(sessionID)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *StripeWebhookHandler) notifyGuest(booking *db.Booking) {
	profile, err := h.profiles.GetProfileByID(booking.ProfileID)
	if err != nil || profile == nil {
		log.Printf("Could not load profile %d for booking %s: %v", booking.ProfileID, booking.Code, err)
		return
	}
	property, err := h.properties.GetPropertyByID(booking.PropertyID)
	if err != nil {
		log.Printf("Could not load property %d for booking %s: %v", booking.PropertyID, booking.Code, err)
		return
	}
	h.senderService.SendBookingEmail(profile, booking, property, "confirmed")
	h.senderService.SendBookingSMS(profile, booking, "confirmed")
}
