package entities

import "time"

type CreatePropertyRequest struct {
	Name        string  `json:"name"`
	Tagline     string  `json:"tagline"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Country     string  `json:"country"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Guests      int     `json:"guests"`
	Bedrooms    int     `json:"bedrooms"`
	Beds        int     `json:"beds"`
	Baths       int     `json:"baths"`
}

type PropertyResponse struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Tagline string  `json:"tagline"`
	Image   string  `json:"image"`
	Country string  `json:"country"`
	Price   float64 `json:"price"`
}

type PropertyDetailResponse struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Tagline     string           `json:"tagline"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Country     string           `json:"country"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Guests      int              `json:"guests"`
	Bedrooms    int              `json:"bedrooms"`
	Beds        int              `json:"beds"`
	Baths       int              `json:"baths"`
	Rating      *PropertyRating  `json:"rating,omitempty"`
	Bookings    []BookedSpan     `json:"bookings"`
	CreatedAt   time.Time        `json:"created_at"`
}

// BookedSpan is the public view of an existing booking: just the dates the
// calendar needs, nothing identifying the guest.
type BookedSpan struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}
