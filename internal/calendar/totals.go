package calendar

import (
	"time"

	apperrors "homeaway/internal/errors"
)

const (
	CleaningFee = 21.0
	ServiceFee  = 40.0
	TaxRate     = 0.1
)

var (
	errInvalidDateRange = apperrors.NewValidation("Check-out date must be after check-in date")
	errDatesUnavailable = apperrors.NewValidation("Some of the selected dates are already booked")
)

// Totals is the price breakdown for a selection. Values are intentionally
// unrounded; currency formatting happens at the presentation boundary.
type Totals struct {
	TotalNights int     `json:"totalNights"`
	SubTotal    float64 `json:"subTotal"`
	Cleaning    float64 `json:"cleaning"`
	Service     float64 `json:"service"`
	Tax         float64 `json:"tax"`
	OrderTotal  float64 `json:"orderTotal"`
}

// CalculateTotals derives the price breakdown for a selection at the given
// nightly price. An incomplete selection still owes the fixed fees: zero
// nights, zero subtotal, zero tax, orderTotal = cleaning + service.
func CalculateTotals(checkIn, checkOut *time.Time, nightly float64) Totals {
	if checkIn == nil || checkOut == nil {
		return Totals{
			Cleaning:   CleaningFee,
			Service:    ServiceFee,
			OrderTotal: CleaningFee + ServiceFee,
		}
	}

	nights := CalculateDaysBetween(*checkIn, *checkOut)
	subTotal := float64(nights) * nightly
	tax := subTotal * TaxRate
	return Totals{
		TotalNights: nights,
		SubTotal:    subTotal,
		Cleaning:    CleaningFee,
		Service:     ServiceFee,
		Tax:         tax,
		OrderTotal:  subTotal + CleaningFee + ServiceFee + tax,
	}
}
