package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homeaway/internal/db"
	"homeaway/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// FindOverlappingBookings returns every non-canceled booking for the
// property whose [check_in, check_out) span overlaps the candidate span.
// Adjacent bookings (checkout day == next checkin day) do not match.
func (r *BookingRepository) FindOverlappingBookings(propertyID int, checkIn, checkOut time.Time) ([]db.Booking, error) {
	query := `
		SELECT id, code, profile_id, property_id, check_in, check_out, total_nights, order_total, status, payment_status, stripe_session_id, created_at, updated_at
		FROM bookings
		WHERE property_id = $1
		  AND status != 'canceled'
		  AND check_in < $3
		  AND check_out > $2`

	rows, err := r.DB.Query(query, propertyID, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating overlapping bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, profile_id, property_id, check_in, check_out, total_nights, order_total, status, payment_status, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Code,
		b.ProfileID,
		b.PropertyID,
		b.CheckIn,
		b.CheckOut,
		b.TotalNights,
		b.OrderTotal,
		b.Status,
		b.PaymentStatus,
		b.StripeSessionID,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetBookingByCode(code string) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, code, profile_id, property_id, check_in, check_out, total_nights, order_total, status, payment_status, stripe_session_id, created_at, updated_at
		FROM bookings WHERE code = $1`
	err := scanBooking(r.DB.QueryRow(query, code), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) GetBookingByStripeSessionID(sessionID string) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, code, profile_id, property_id, check_in, check_out, total_nights, order_total, status, payment_status, stripe_session_id, created_at, updated_at
		FROM bookings WHERE stripe_session_id = $1`
	err := scanBooking(r.DB.QueryRow(query, sessionID), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking for session '%s' not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

// ListBookingSpans returns only the date spans of live bookings for a
// property, oldest check-in first. This feeds the blocked-period computation.
func (r *BookingRepository) ListBookingSpans(propertyID int) ([]entities.BookedSpan, error) {
	query := `
		SELECT check_in, check_out FROM bookings
		WHERE property_id = $1 AND status != 'canceled'
		ORDER BY check_in`

	rows, err := r.DB.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("error querying booking spans: %w", err)
	}
	defer rows.Close()

	var spans []entities.BookedSpan
	for rows.Next() {
		var s entities.BookedSpan
		if err := rows.Scan(&s.CheckIn, &s.CheckOut); err != nil {
			return nil, fmt.Errorf("error scanning booking span: %w", err)
		}
		spans = append(spans, s)
	}
	return spans, rows.Err()
}

func (r *BookingRepository) ListBookingsByProfile(profileID int) ([]entities.BookingResponse, error) {
	query := `
		SELECT b.code, b.property_id, p.name, p.country, b.check_in, b.check_out, b.total_nights, b.order_total, b.status, b.payment_status, b.created_at
		FROM bookings b
		JOIN properties p ON b.property_id = p.id
		WHERE b.profile_id = $1
		ORDER BY b.created_at DESC`

	rows, err := r.DB.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for profile %d: %w", profileID, err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		err := rows.Scan(&b.Code, &b.PropertyID, &b.PropertyName, &b.Country, &b.CheckIn, &b.CheckOut,
			&b.TotalNights, &b.OrderTotal, &b.Status, &b.PaymentStatus, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) ListAllBookings() ([]entities.BookingResponse, error) {
	query := `
		SELECT b.code, b.property_id, p.name, p.country, b.check_in, b.check_out, b.total_nights, b.order_total, b.status, b.payment_status, b.created_at
		FROM bookings b
		JOIN properties p ON b.property_id = p.id
		ORDER BY b.created_at DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		err := rows.Scan(&b.Code, &b.PropertyID, &b.PropertyName, &b.Country, &b.CheckIn, &b.CheckOut,
			&b.TotalNights, &b.OrderTotal, &b.Status, &b.PaymentStatus, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// DeletePendingBookings drops the profile's unpaid bookings for a property
// before a new one is created, so abandoned checkouts never pile up.
func (r *BookingRepository) DeletePendingBookings(profileID, propertyID int) error {
	_, err := r.DB.Exec(
		`DELETE FROM bookings WHERE profile_id = $1 AND property_id = $2 AND status = 'pending'`,
		profileID, propertyID,
	)
	if err != nil {
		return fmt.Errorf("error deleting pending bookings: %w", err)
	}
	return nil
}

func (r *BookingRepository) DeleteBookingByCode(code string) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BookingRepository) UpdateBookingStatus(id int, status, paymentStatus string) error {
	_, err := r.DB.Exec(
		`UPDATE bookings SET status = $2, payment_status = $3, updated_at = NOW() WHERE id = $1`,
		id, status, paymentStatus,
	)
	if err != nil {
		return fmt.Errorf("error updating booking %d status: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner, b *db.Booking) error {
	return row.Scan(
		&b.ID, &b.Code, &b.ProfileID, &b.PropertyID, &b.CheckIn, &b.CheckOut,
		&b.TotalNights, &b.OrderTotal, &b.Status, &b.PaymentStatus, &b.StripeSessionID,
		&b.CreatedAt, &b.UpdatedAt,
	)
}
