package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	totals := CalculateTotals(dayPtr("2024-01-01"), dayPtr("2024-01-04"), 100)

	assert.Equal(t, 3, totals.TotalNights)
	assert.Equal(t, 300.0, totals.SubTotal)
	assert.Equal(t, 21.0, totals.Cleaning)
	assert.Equal(t, 40.0, totals.Service)
	assert.Equal(t, 30.0, totals.Tax)
	assert.Equal(t, 391.0, totals.OrderTotal)
}

func TestCalculateTotals_IncompleteSelection(t *testing.T) {
	want := Totals{
		TotalNights: 0,
		SubTotal:    0,
		Cleaning:    21,
		Service:     40,
		Tax:         0,
		OrderTotal:  61,
	}

	assert.Equal(t, want, CalculateTotals(nil, nil, 100))
	assert.Equal(t, want, CalculateTotals(dayPtr("2024-01-01"), nil, 100))
	assert.Equal(t, want, CalculateTotals(nil, dayPtr("2024-01-04"), 100))
}

func TestCalculateTotals_ZeroPrice(t *testing.T) {
	totals := CalculateTotals(dayPtr("2024-01-01"), dayPtr("2024-01-02"), 0)

	assert.Equal(t, 1, totals.TotalNights)
	assert.Equal(t, 0.0, totals.SubTotal)
	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 61.0, totals.OrderTotal)
}

func TestCalculateTotals_FractionalPriceIsNotRounded(t *testing.T) {
	totals := CalculateTotals(dayPtr("2024-01-01"), dayPtr("2024-01-04"), 99.99)

	assert.InDelta(t, 299.97, totals.SubTotal, 1e-9)
	assert.InDelta(t, 29.997, totals.Tax, 1e-9)
	assert.InDelta(t, 299.97+21+40+29.997, totals.OrderTotal, 1e-9)
}
