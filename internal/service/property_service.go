package service

import (
	"strings"

	"homeaway/internal/db"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
)

type PropertyCatalog interface {
	ListProperties(search, category string) ([]entities.PropertyResponse, error)
	GetPropertyByID(id int) (*db.Property, error)
	CreateProperty(p *db.Property) error
	GetPropertyRating(propertyID int) (*entities.PropertyRating, error)
}

type PropertyService struct {
	properties PropertyCatalog
	bookings   BookingStore
}

func NewPropertyService(properties PropertyCatalog, bookings BookingStore) *PropertyService {
	return &PropertyService{properties: properties, bookings: bookings}
}

func (s *PropertyService) ListProperties(search, category string) ([]entities.PropertyResponse, error) {
	return s.properties.ListProperties(search, category)
}

// GetPropertyDetail returns the full property record plus the booked spans
// and rating the booking calendar and detail page need.
func (s *PropertyService) GetPropertyDetail(id int) (*entities.PropertyDetailResponse, error) {
	property, err := s.properties.GetPropertyByID(id)
	if err != nil {
		return nil, propertyLookupError(err)
	}

	spans, err := s.bookings.ListBookingSpans(id)
	if err != nil {
		return nil, err
	}
	if spans == nil {
		spans = []entities.BookedSpan{}
	}

	rating, err := s.properties.GetPropertyRating(id)
	if err != nil {
		return nil, err
	}

	return &entities.PropertyDetailResponse{
		ID:          property.ID,
		Name:        property.Name,
		Tagline:     property.Tagline,
		Category:    property.Category,
		Image:       property.Image,
		Country:     property.Country,
		Description: property.Description,
		Price:       property.Price,
		Guests:      property.Guests,
		Bedrooms:    property.Bedrooms,
		Beds:        property.Beds,
		Baths:       property.Baths,
		Rating:      rating,
		Bookings:    spans,
		CreatedAt:   property.CreatedAt,
	}, nil
}

func (s *PropertyService) CreateProperty(profileID int, req entities.CreatePropertyRequest) (*db.Property, error) {
	if err := validatePropertyRequest(req); err != nil {
		return nil, err
	}

	property := &db.Property{
		Name:        req.Name,
		Tagline:     req.Tagline,
		Category:    req.Category,
		Image:       req.Image,
		Country:     req.Country,
		Description: req.Description,
		Price:       req.Price,
		Guests:      req.Guests,
		Bedrooms:    req.Bedrooms,
		Beds:        req.Beds,
		Baths:       req.Baths,
		ProfileID:   profileID,
	}
	if err := s.properties.CreateProperty(property); err != nil {
		return nil, err
	}
	return property, nil
}

func validatePropertyRequest(req entities.CreatePropertyRequest) error {
	name := strings.TrimSpace(req.Name)
	if len(name) < 3 || len(name) > 100 {
		return apperrors.NewValidation("Property name must be between 3 and 100 characters")
	}
	if len(strings.TrimSpace(req.Description)) < 10 {
		return apperrors.NewValidation("Description must be at least 10 characters")
	}
	if req.Price <= 0 {
		return apperrors.NewValidation("Price must be greater than 0")
	}
	if req.Guests < 1 {
		return apperrors.NewValidation("A property must host at least one guest")
	}
	return nil
}
