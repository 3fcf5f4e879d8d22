package entities

import "time"

type BlockedPeriodResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// PropertyCalendarResponse carries everything the booking calendar needs:
// the raw blocked periods and an O(1) disabled-date lookup keyed by ISO day.
type PropertyCalendarResponse struct {
	PropertyID     int                     `json:"property_id"`
	BlockedPeriods []BlockedPeriodResponse `json:"blocked_periods"`
	DisabledDates  map[string]bool         `json:"disabled_dates"`
}
