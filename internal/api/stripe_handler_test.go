package api

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"homeaway/internal/db"
	"homeaway/internal/entities"
	"homeaway/internal/service"
)

const testWebhookSecret = "whsec_test"

func signedWebhookRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, []byte(payload), testWebhookSecret)
	req := httptest.NewRequest("POST", "/api/payment/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig)))
	return req
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	h := NewStripeWebhookHandler(testWebhookSecret, nil, nil, nil, nil, nil)

	req := httptest.NewRequest("POST", "/api/payment/webhook", bytes.NewBufferString(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rr := httptest.NewRecorder()
	h.HandleWebhook(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleWebhook_MalformedRefundPayload(t *testing.T) {
	h := NewStripeWebhookHandler(testWebhookSecret, nil, nil, nil, nil, nil)

	payload := fmt.Sprintf(
		`{"id":"evt_1","object":"event","api_version":"%s","type":"charge.refunded","data":{"object":{"amount":"not-a-number"}}}`,
		stripe.APIVersion,
	)
	rr := httptest.NewRecorder()
	h.HandleWebhook(rr, signedWebhookRequest(t, payload))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

type stubSessionResolver struct {
	sessionID string
}

func (r stubSessionResolver) SessionIDByPaymentIntentID(string) (string, error) {
	return r.sessionID, nil
}

// failingBookingStore errors on every lookup, simulating a database outage.
type failingBookingStore struct{}

func (failingBookingStore) FindOverlappingBookings(int, time.Time, time.Time) ([]db.Booking, error) {
	return nil, errors.New("db down")
}
func (failingBookingStore) CreateBooking(*db.Booking) error { return errors.New("db down") }
func (failingBookingStore) GetBookingByCode(string) (*db.Booking, error) {
	return nil, errors.New("db down")
}
func (failingBookingStore) GetBookingByStripeSessionID(string) (*db.Booking, error) {
	return nil, errors.New("db down")
}
func (failingBookingStore) ListBookingSpans(int) ([]entities.BookedSpan, error) {
	return nil, errors.New("db down")
}
func (failingBookingStore) ListBookingsByProfile(int) ([]entities.BookingResponse, error) {
	return nil, errors.New("db down")
}
func (failingBookingStore) ListAllBookings() ([]entities.BookingResponse, error) {
	return nil, errors.New("db down")
}
func (failingBookingStore) DeletePendingBookings(int, int) error { return errors.New("db down") }
func (failingBookingStore) DeleteBookingByCode(string) error     { return errors.New("db down") }
func (failingBookingStore) UpdateBookingStatus(int, string, string) error {
	return errors.New("db down")
}

// A refund event that cannot be recorded must surface a 500 so Stripe
// retries the delivery.
func TestHandleWebhook_RefundDBFailureReturns500(t *testing.T) {
	bookingService := service.NewBookingService(failingBookingStore{}, nil, nil)
	h := NewStripeWebhookHandler(
		testWebhookSecret, bookingService, stubSessionResolver{sessionID: "cs_1"}, nil, nil, nil,
	)

	payload := fmt.Sprintf(
		`{"id":"evt_1","object":"event","api_version":"%s","type":"charge.refunded","data":{"object":{"object":"charge","payment_intent":"pi_1"}}}`,
		stripe.APIVersion,
	)
	rr := httptest.NewRecorder()
	h.HandleWebhook(rr, signedWebhookRequest(t, payload))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleWebhook_IgnoresUnhandledEventType(t *testing.T) {
	h := NewStripeWebhookHandler(testWebhookSecret, nil, nil, nil, nil, nil)

	payload := fmt.Sprintf(
		`{"id":"evt_1","object":"event","api_version":"%s","type":"invoice.created","data":{"object":{}}}`,
		stripe.APIVersion,
	)
	rr := httptest.NewRecorder()
	h.HandleWebhook(rr, signedWebhookRequest(t, payload))

	assert.Equal(t, http.StatusOK, rr.Code)
}
