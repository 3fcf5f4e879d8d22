package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"homeaway/internal/calendar"
	"homeaway/internal/db"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
)

const (
	statusPending   = "pending"
	statusConfirmed = "confirmed"
	statusCanceled  = "canceled"
	statusCompleted = "completed"

	paymentPending = "pending"
	paymentPaid    = "paid"
	paymentRefund  = "refunded"
)

// BookingStore is the persistence surface the booking service needs.
type BookingStore interface {
	FindOverlappingBookings(propertyID int, checkIn, checkOut time.Time) ([]db.Booking, error)
	CreateBooking(b *db.Booking) error
	GetBookingByCode(code string) (*db.Booking, error)
	GetBookingByStripeSessionID(sessionID string) (*db.Booking, error)
	ListBookingSpans(propertyID int) ([]entities.BookedSpan, error)
	ListBookingsByProfile(profileID int) ([]entities.BookingResponse, error)
	ListAllBookings() ([]entities.BookingResponse, error)
	DeletePendingBookings(profileID, propertyID int) error
	DeleteBookingByCode(code string) error
	UpdateBookingStatus(id int, status, paymentStatus string) error
}

type PropertyStore interface {
	GetPropertyByID(id int) (*db.Property, error)
}

// CheckoutProvider creates and refunds hosted payment sessions.
type CheckoutProvider interface {
	CreateCheckoutSession(amount int64, currency, description, customerEmail string) (url, sessionID string, err error)
	RefundPaymentBySessionID(sessionID string) error
}

// propertyLookupError keeps "no such property" a 404 while letting real
// repository failures propagate as internal errors.
func propertyLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("Property not found")
	}
	return err
}

type BookingService struct {
	bookings   BookingStore
	properties PropertyStore
	checkout   CheckoutProvider
	now        func() time.Time
}

func NewBookingService(bookings BookingStore, properties PropertyStore, checkout CheckoutProvider) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		checkout:   checkout,
		now:        time.Now,
	}
}

// CreateBooking validates the candidate range against the property's
// existing bookings, computes the price breakdown, persists a pending
// booking and opens a checkout session for it. The guest's earlier unpaid
// bookings for the same property are dropped first.
func (s *BookingService) CreateBooking(profileID int, email string, req entities.CreateBookingRequest) (*entities.CheckoutSessionResponse, error) {
	if err := calendar.ValidateCandidate(req.CheckIn, req.CheckOut, nil); err != nil {
		return nil, err
	}

	// Clear the guest's earlier unpaid bookings before looking for
	// conflicts, or an abandoned checkout would block their own retry.
	if err := s.bookings.DeletePendingBookings(profileID, req.PropertyID); err != nil {
		log.Printf("Error deleting pending bookings for profile %d: %v", profileID, err)
	}

	property, err := s.properties.GetPropertyByID(req.PropertyID)
	if err != nil {
		return nil, propertyLookupError(err)
	}

	existing, err := s.bookings.FindOverlappingBookings(req.PropertyID, req.CheckIn, req.CheckOut)
	if err != nil {
		log.Printf("Error checking booking conflicts: %v", err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}
	spans := make([]calendar.Span, 0, len(existing))
	for _, b := range existing {
		spans = append(spans, calendar.Span{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}
	if err := calendar.ValidateCandidate(req.CheckIn, req.CheckOut, spans); err != nil {
		return nil, err
	}

	totals := calendar.CalculateTotals(&req.CheckIn, &req.CheckOut, property.Price)

	code := fmt.Sprintf("%08X", s.now().UnixNano()%100000000)

	// Cents only at the payment boundary; the stored breakdown stays unrounded.
	amount := int64(math.Round(totals.OrderTotal * 100))
	description := fmt.Sprintf("Booking %s: %s, %s", code, property.Name, property.Country)
	sessionURL, sessionID, err := s.checkout.CreateCheckoutSession(amount, "usd", description, email)
	if err != nil {
		return nil, err
	}

	booking := &db.Booking{
		Code:            code,
		ProfileID:       profileID,
		PropertyID:      req.PropertyID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		TotalNights:     totals.TotalNights,
		OrderTotal:      totals.OrderTotal,
		Status:          statusPending,
		PaymentStatus:   paymentPending,
		StripeSessionID: sessionID,
		CreatedAt:       s.now().UTC(),
		UpdatedAt:       s.now().UTC(),
	}
	if err := s.bookings.CreateBooking(booking); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	return &entities.CheckoutSessionResponse{Code: code, URL: sessionURL, SessionID: sessionID}, nil
}

// Quote computes the price breakdown for a possibly incomplete selection.
// Missing dates are not an error: the breakdown degenerates to fees only.
func (s *BookingService) Quote(req entities.QuoteRequest) (*entities.QuoteResponse, error) {
	property, err := s.properties.GetPropertyByID(req.PropertyID)
	if err != nil {
		return nil, propertyLookupError(err)
	}
	if req.CheckIn != nil && req.CheckOut != nil {
		if err := calendar.ValidateCandidate(*req.CheckIn, *req.CheckOut, nil); err != nil {
			return nil, err
		}
	}
	return &entities.QuoteResponse{
		PropertyID: property.ID,
		Totals:     calendar.CalculateTotals(req.CheckIn, req.CheckOut, property.Price),
	}, nil
}

// PropertyCalendar returns the blocked periods and disabled-date lookup for
// a property's booking calendar, computed from its live bookings as of now.
func (s *BookingService) PropertyCalendar(propertyID int) (*entities.PropertyCalendarResponse, error) {
	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return nil, propertyLookupError(err)
	}

	booked, err := s.bookings.ListBookingSpans(propertyID)
	if err != nil {
		log.Printf("Error listing booking spans for property %d: %v", propertyID, err)
		return nil, fmt.Errorf("internal error loading calendar: %w", err)
	}

	spans := make([]calendar.Span, 0, len(booked))
	for _, b := range booked {
		spans = append(spans, calendar.Span{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}

	today := s.now()
	periods := calendar.GenerateBlockedPeriods(spans, today)
	disabled := calendar.GenerateDisabledDates(periods, today)

	resp := &entities.PropertyCalendarResponse{
		PropertyID:     propertyID,
		BlockedPeriods: make([]entities.BlockedPeriodResponse, 0, len(periods)),
		DisabledDates:  disabled,
	}
	for _, p := range periods {
		resp.BlockedPeriods = append(resp.BlockedPeriods, entities.BlockedPeriodResponse{From: p.From, To: p.To})
	}
	return resp, nil
}

func (s *BookingService) ListBookings(profileID int) ([]entities.BookingResponse, error) {
	return s.bookings.ListBookingsByProfile(profileID)
}

func (s *BookingService) ListAllBookings() ([]entities.BookingResponse, error) {
	return s.bookings.ListAllBookings()
}

// CancelBooking removes a booking, refunding the payment first when it was
// already captured. Guests may only cancel their own bookings; admins may
// cancel any.
func (s *BookingService) CancelBooking(profileID int, isAdmin bool, code string) error {
	booking, err := s.bookings.GetBookingByCode(code)
	if err != nil {
		return apperrors.NewNotFound("Booking not found")
	}
	if !isAdmin && booking.ProfileID != profileID {
		return apperrors.NewAuthorization()
	}

	if booking.PaymentStatus == paymentPaid {
		if err := s.checkout.RefundPaymentBySessionID(booking.StripeSessionID); err != nil {
			return err
		}
	}

	return s.bookings.DeleteBookingByCode(code)
}

// ConfirmBookingBySession marks a booking paid and confirmed once its
// checkout session completes. Called from the payment webhook.
func (s *BookingService) ConfirmBookingBySession(sessionID string) (*db.Booking, error) {
	booking, err := s.bookings.GetBookingByStripeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateBookingStatus(booking.ID, statusConfirmed, paymentPaid); err != nil {
		return nil, err
	}
	booking.Status = statusConfirmed
	booking.PaymentStatus = paymentPaid
	return booking, nil
}

// ConfirmedBookingForSession looks up the booking tied to a checkout
// session, for the post-payment confirmation page.
func (s *BookingService) ConfirmedBookingForSession(sessionID string) (*entities.BookingResponse, error) {
	booking, err := s.bookings.GetBookingByStripeSessionID(sessionID)
	if err != nil {
		return nil, apperrors.NewNotFound("Booking not found")
	}
	return &entities.BookingResponse{
		Code:          booking.Code,
		PropertyID:    booking.PropertyID,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		TotalNights:   booking.TotalNights,
		OrderTotal:    booking.OrderTotal,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// MarkBookingRefunded flips a booking to canceled/refunded after the payment
// provider reports a refund.
func (s *BookingService) MarkBookingRefunded(sessionID string) error {
	booking, err := s.bookings.GetBookingByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	return s.bookings.UpdateBookingStatus(booking.ID, statusCanceled, paymentRefund)
}
