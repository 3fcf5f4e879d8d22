package calendar

import (
	"math"
	"time"
)

const isoDay = "2006-01-02"

// Span is an existing booking's [CheckIn, CheckOut) interval. Stored bookings
// are trusted to satisfy CheckOut > CheckIn; only new candidates are checked.
type Span struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// BlockedPeriod is an inclusive date span that must not be selectable.
type BlockedPeriod struct {
	From time.Time
	To   time.Time
}

// DateRange is a user's in-progress selection. Either endpoint may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// CalculateDaysBetween returns the whole-day difference between the two
// dates, rounding any partial day up. Same-day inputs yield 0. Callers must
// reject checkOut < checkIn beforehand if that distinction matters; dates are
// expected at matching time-of-day (midnight UTC) to avoid off-by-one drift.
func CalculateDaysBetween(checkIn, checkOut time.Time) int {
	delta := checkOut.Sub(checkIn).Milliseconds()
	return int(math.Ceil(float64(delta) / float64(24*time.Hour/time.Millisecond)))
}

// GenerateBlockedPeriods returns one synthetic period covering everything
// before today, followed by one period per booking in input order. Overlaps
// are not merged: bookings are conflict-checked at creation time, so stored
// periods never overlap each other.
func GenerateBlockedPeriods(bookings []Span, today time.Time) []BlockedPeriod {
	periods := make([]BlockedPeriod, 0, len(bookings)+1)
	periods = append(periods, BlockedPeriod{
		From: time.Unix(0, 0).UTC(),
		To:   truncateToDay(today).AddDate(0, 0, -1),
	})
	for _, b := range bookings {
		periods = append(periods, BlockedPeriod{From: b.CheckIn, To: b.CheckOut})
	}
	return periods
}

// GenerateDisabledDates enumerates every calendar day inside the blocked
// periods, keyed by ISO date (YYYY-MM-DD). Days strictly before today are
// skipped; today itself is included when covered. Empty input yields an
// empty map.
func GenerateDisabledDates(periods []BlockedPeriod, today time.Time) map[string]bool {
	disabled := make(map[string]bool)
	floor := truncateToDay(today)
	for _, p := range periods {
		day := truncateToDay(p.From)
		if day.Before(floor) {
			day = floor
		}
		end := truncateToDay(p.To)
		for !day.After(end) {
			disabled[day.Format(isoDay)] = true
			day = day.AddDate(0, 0, 1)
		}
	}
	return disabled
}

// GenerateDateRange returns every day of the selection in ascending order as
// ISO date strings, inclusive of both endpoints. An incomplete selection
// yields an empty sequence.
func GenerateDateRange(r DateRange) []string {
	if r.From == nil || r.To == nil {
		return []string{}
	}
	var days []string
	day := truncateToDay(*r.From)
	end := truncateToDay(*r.To)
	for !day.After(end) {
		days = append(days, day.Format(isoDay))
		day = day.AddDate(0, 0, 1)
	}
	return days
}

// ValidateCandidate rejects a proposed booking whose checkout is not after
// its checkin, or whose span overlaps any existing booking. Spans are
// half-open, so back-to-back bookings (checkout day == next checkin day) do
// not conflict.
func ValidateCandidate(checkIn, checkOut time.Time, existing []Span) error {
	if !checkOut.After(checkIn) {
		return errInvalidDateRange
	}
	for _, b := range existing {
		if b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut) {
			return errDatesUnavailable
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
