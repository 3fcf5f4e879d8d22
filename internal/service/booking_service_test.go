package service

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"homeaway/internal/db"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) FindOverlappingBookings(propertyID int, checkIn, checkOut time.Time) ([]db.Booking, error) {
	args := m.Called(propertyID, checkIn, checkOut)
	return args.Get(0).([]db.Booking), args.Error(1)
}

func (m *MockBookingStore) CreateBooking(b *db.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingStore) GetBookingByCode(code string) (*db.Booking, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Booking), args.Error(1)
}

func (m *MockBookingStore) GetBookingByStripeSessionID(sessionID string) (*db.Booking, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Booking), args.Error(1)
}

func (m *MockBookingStore) ListBookingSpans(propertyID int) ([]entities.BookedSpan, error) {
	args := m.Called(propertyID)
	return args.Get(0).([]entities.BookedSpan), args.Error(1)
}

func (m *MockBookingStore) ListBookingsByProfile(profileID int) ([]entities.BookingResponse, error) {
	args := m.Called(profileID)
	return args.Get(0).([]entities.BookingResponse), args.Error(1)
}

func (m *MockBookingStore) ListAllBookings() ([]entities.BookingResponse, error) {
	args := m.Called()
	return args.Get(0).([]entities.BookingResponse), args.Error(1)
}

func (m *MockBookingStore) DeletePendingBookings(profileID, propertyID int) error {
	args := m.Called(profileID, propertyID)
	return args.Error(0)
}

func (m *MockBookingStore) DeleteBookingByCode(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockBookingStore) UpdateBookingStatus(id int, status, paymentStatus string) error {
	args := m.Called(id, status, paymentStatus)
	return args.Error(0)
}

type MockPropertyStore struct {
	mock.Mock
}

func (m *MockPropertyStore) GetPropertyByID(id int) (*db.Property, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Property), args.Error(1)
}

type MockCheckoutProvider struct {
	mock.Mock
}

func (m *MockCheckoutProvider) CreateCheckoutSession(amount int64, currency, description, customerEmail string) (string, string, error) {
	args := m.Called(amount, currency, description, customerEmail)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockCheckoutProvider) RefundPaymentBySessionID(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func testDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(bookings *MockBookingStore, properties *MockPropertyStore, checkout *MockCheckoutProvider) *BookingService {
	svc := NewBookingService(bookings, properties, checkout)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateBooking_Success(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}
	checkout := &MockCheckoutProvider{}

	checkIn := testDay("2024-07-01")
	checkOut := testDay("2024-07-04")

	properties.On("GetPropertyByID", 7).Return(&db.Property{ID: 7, Name: "Cabin", Country: "Norway", Price: 100}, nil)
	bookings.On("FindOverlappingBookings", 7, checkIn, checkOut).Return([]db.Booking{}, nil)
	bookings.On("DeletePendingBookings", 42, 7).Return(nil)
	// 3 nights * 100 + 21 + 40 + 30 tax = 391.00 → 39100 cents
	checkout.On("CreateCheckoutSession", int64(39100), "usd", mock.Anything, "guest@example.com").
		Return("https://stripe.test/session", "cs_test_123", nil)
	bookings.On("CreateBooking", mock.MatchedBy(func(b *db.Booking) bool {
		return b.ProfileID == 42 &&
			b.PropertyID == 7 &&
			b.TotalNights == 3 &&
			b.OrderTotal == 391.0 &&
			b.Status == "pending" &&
			b.PaymentStatus == "pending" &&
			b.StripeSessionID == "cs_test_123"
	})).Return(nil)

	svc := newTestService(bookings, properties, checkout)

	resp, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 7,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://stripe.test/session", resp.URL)
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.NotEmpty(t, resp.Code)
	bookings.AssertExpectations(t)
	checkout.AssertExpectations(t)
}

func TestCreateBooking_RejectsInvertedDates(t *testing.T) {
	svc := newTestService(&MockBookingStore{}, &MockPropertyStore{}, &MockCheckoutProvider{})

	_, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 7,
		CheckIn:    testDay("2024-07-04"),
		CheckOut:   testDay("2024-07-01"),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.Validation, appErr.Kind)
}

func TestCreateBooking_RejectsOverlap(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}

	checkIn := testDay("2024-07-01")
	checkOut := testDay("2024-07-05")

	properties.On("GetPropertyByID", 7).Return(&db.Property{ID: 7, Price: 100}, nil)
	bookings.On("DeletePendingBookings", 42, 7).Return(nil)
	bookings.On("FindOverlappingBookings", 7, checkIn, checkOut).Return([]db.Booking{
		{CheckIn: testDay("2024-07-03"), CheckOut: testDay("2024-07-08")},
	}, nil)

	svc := newTestService(bookings, properties, &MockCheckoutProvider{})

	_, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 7,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.Validation, appErr.Kind)
}

func TestCreateBooking_AllowsAdjacentBooking(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}
	checkout := &MockCheckoutProvider{}

	checkIn := testDay("2024-07-05")
	checkOut := testDay("2024-07-08")

	properties.On("GetPropertyByID", 7).Return(&db.Property{ID: 7, Price: 50}, nil)
	// The repository overlap query would not return an adjacent booking, but
	// the engine-level check must also tolerate one.
	bookings.On("FindOverlappingBookings", 7, checkIn, checkOut).Return([]db.Booking{
		{CheckIn: testDay("2024-07-01"), CheckOut: testDay("2024-07-05")},
	}, nil)
	bookings.On("DeletePendingBookings", 42, 7).Return(nil)
	checkout.On("CreateCheckoutSession", mock.Anything, "usd", mock.Anything, mock.Anything).
		Return("https://stripe.test/session", "cs_test_456", nil)
	bookings.On("CreateBooking", mock.Anything).Return(nil)

	svc := newTestService(bookings, properties, checkout)

	_, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 7,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})

	assert.NoError(t, err)
}

func TestCreateBooking_PropertyNotFound(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}
	bookings.On("DeletePendingBookings", 42, 99).Return(nil)
	properties.On("GetPropertyByID", 99).Return(nil, fmt.Errorf("property 99 not found: %w", sql.ErrNoRows))

	svc := newTestService(bookings, properties, &MockCheckoutProvider{})

	_, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 99,
		CheckIn:    testDay("2024-07-01"),
		CheckOut:   testDay("2024-07-04"),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.NotFound, appErr.Kind)
}

func TestCreateBooking_PropertyLookupFailurePropagates(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}
	bookings.On("DeletePendingBookings", 42, 99).Return(nil)
	properties.On("GetPropertyByID", 99).Return(nil, assert.AnError)

	svc := newTestService(bookings, properties, &MockCheckoutProvider{})

	_, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 99,
		CheckIn:    testDay("2024-07-01"),
		CheckOut:   testDay("2024-07-04"),
	})

	require.ErrorIs(t, err, assert.AnError)
	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
}

// A guest who abandoned checkout must be able to rebook the same dates:
// their stale pending booking is deleted before the conflict check runs.
func TestCreateBooking_RetryAfterAbandonedCheckout(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}
	checkout := &MockCheckoutProvider{}

	checkIn := testDay("2024-07-01")
	checkOut := testDay("2024-07-04")

	cleared := false
	bookings.On("DeletePendingBookings", 42, 7).Run(func(args mock.Arguments) {
		cleared = true
	}).Return(nil)
	properties.On("GetPropertyByID", 7).Return(&db.Property{ID: 7, Price: 100}, nil)
	bookings.On("FindOverlappingBookings", 7, checkIn, checkOut).Run(func(args mock.Arguments) {
		assert.True(t, cleared, "pending bookings must be cleared before the conflict check")
	}).Return([]db.Booking{}, nil)
	checkout.On("CreateCheckoutSession", mock.Anything, "usd", mock.Anything, mock.Anything).
		Return("https://stripe.test/session", "cs_test_789", nil)
	bookings.On("CreateBooking", mock.Anything).Return(nil)

	svc := newTestService(bookings, properties, checkout)

	_, err := svc.CreateBooking(42, "guest@example.com", entities.CreateBookingRequest{
		PropertyID: 7,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})

	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestQuote_RepositoryFailurePropagates(t *testing.T) {
	properties := &MockPropertyStore{}
	properties.On("GetPropertyByID", 7).Return(nil, assert.AnError)

	svc := newTestService(&MockBookingStore{}, properties, &MockCheckoutProvider{})

	_, err := svc.Quote(entities.QuoteRequest{PropertyID: 7})

	require.ErrorIs(t, err, assert.AnError)
	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
}

func TestQuote_IncompleteSelectionIsFeesOnly(t *testing.T) {
	properties := &MockPropertyStore{}
	properties.On("GetPropertyByID", 7).Return(&db.Property{ID: 7, Price: 100}, nil)

	svc := newTestService(&MockBookingStore{}, properties, &MockCheckoutProvider{})

	quote, err := svc.Quote(entities.QuoteRequest{PropertyID: 7})

	require.NoError(t, err)
	assert.Equal(t, 0, quote.Totals.TotalNights)
	assert.Equal(t, 0.0, quote.Totals.SubTotal)
	assert.Equal(t, 61.0, quote.Totals.OrderTotal)
}

func TestPropertyCalendar(t *testing.T) {
	bookings := &MockBookingStore{}
	properties := &MockPropertyStore{}

	properties.On("GetPropertyByID", 7).Return(&db.Property{ID: 7}, nil)
	bookings.On("ListBookingSpans", 7).Return([]entities.BookedSpan{
		{CheckIn: testDay("2024-06-10"), CheckOut: testDay("2024-06-12")},
	}, nil)

	svc := newTestService(bookings, properties, &MockCheckoutProvider{})

	resp, err := svc.PropertyCalendar(7)

	require.NoError(t, err)
	// One past period plus one booking period.
	require.Len(t, resp.BlockedPeriods, 2)
	assert.True(t, resp.DisabledDates["2024-06-10"])
	assert.True(t, resp.DisabledDates["2024-06-12"])
	assert.False(t, resp.DisabledDates["2024-06-13"])
}

func TestCancelBooking_OwnershipEnforced(t *testing.T) {
	bookings := &MockBookingStore{}
	bookings.On("GetBookingByCode", "ABC123").Return(&db.Booking{ID: 1, Code: "ABC123", ProfileID: 42, PaymentStatus: "pending"}, nil)

	svc := newTestService(bookings, &MockPropertyStore{}, &MockCheckoutProvider{})

	err := svc.CancelBooking(7, false, "ABC123")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.Authorization, appErr.Kind)
}

func TestCancelBooking_RefundsPaidBooking(t *testing.T) {
	bookings := &MockBookingStore{}
	checkout := &MockCheckoutProvider{}

	bookings.On("GetBookingByCode", "ABC123").Return(&db.Booking{
		ID: 1, Code: "ABC123", ProfileID: 42, PaymentStatus: "paid", StripeSessionID: "cs_test_123",
	}, nil)
	checkout.On("RefundPaymentBySessionID", "cs_test_123").Return(nil)
	bookings.On("DeleteBookingByCode", "ABC123").Return(nil)

	svc := newTestService(bookings, &MockPropertyStore{}, checkout)

	err := svc.CancelBooking(42, false, "ABC123")

	require.NoError(t, err)
	checkout.AssertExpectations(t)
	bookings.AssertExpectations(t)
}

func TestConfirmBookingBySession(t *testing.T) {
	bookings := &MockBookingStore{}
	bookings.On("GetBookingByStripeSessionID", "cs_test_123").Return(&db.Booking{ID: 5, Code: "ABC123"}, nil)
	bookings.On("UpdateBookingStatus", 5, "confirmed", "paid").Return(nil)

	svc := newTestService(bookings, &MockPropertyStore{}, &MockCheckoutProvider{})

	booking, err := svc.ConfirmBookingBySession("cs_test_123")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", booking.Status)
	assert.Equal(t, "paid", booking.PaymentStatus)
	bookings.AssertExpectations(t)
}
