package db

import "time"

type Profile struct {
	ID           int
	Email        string
	FirstName    string
	LastName     string
	Username     string
	Phone        string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Property struct {
	ID          int
	Name        string
	Tagline     string
	Category    string
	Image       string
	Country     string
	Description string
	Price       float64
	Guests      int
	Bedrooms    int
	Beds        int
	Baths       int
	ProfileID   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Booking struct {
	ID              int
	Code            string
	ProfileID       int
	PropertyID      int
	CheckIn         time.Time
	CheckOut        time.Time
	TotalNights     int
	OrderTotal      float64
	Status          string
	PaymentStatus   string
	StripeSessionID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Review struct {
	ID         int
	ProfileID  int
	PropertyID int
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
