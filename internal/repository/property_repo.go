package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"homeaway/internal/db"
	"homeaway/internal/entities"
)

type PropertyRepository struct {
	DB *sql.DB
}

func NewPropertyRepository(database *sql.DB) *PropertyRepository {
	return &PropertyRepository{DB: database}
}

// ListProperties returns card-level property data, optionally filtered by a
// search term matched against name and tagline and/or a category.
func (r *PropertyRepository) ListProperties(search, category string) ([]entities.PropertyResponse, error) {
	query := `
		SELECT id, name, tagline, image, country, price
		FROM properties
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR tagline ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, search, category)
	if err != nil {
		return nil, fmt.Errorf("error querying properties: %w", err)
	}
	defer rows.Close()

	var properties []entities.PropertyResponse
	for rows.Next() {
		var p entities.PropertyResponse
		if err := rows.Scan(&p.ID, &p.Name, &p.Tagline, &p.Image, &p.Country, &p.Price); err != nil {
			return nil, fmt.Errorf("error scanning property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) GetPropertyByID(id int) (*db.Property, error) {
	var p db.Property
	query := `
		SELECT id, name, tagline, category, image, country, description, price, guests, bedrooms, beds, baths, profile_id, created_at, updated_at
		FROM properties WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Tagline, &p.Category, &p.Image, &p.Country, &p.Description,
		&p.Price, &p.Guests, &p.Bedrooms, &p.Beds, &p.Baths, &p.ProfileID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying property: %w", err)
	}
	return &p, nil
}

func (r *PropertyRepository) CreateProperty(p *db.Property) error {
	query := `
		INSERT INTO properties
		(name, tagline, category, image, country, description, price, guests, bedrooms, beds, baths, profile_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		p.Name, p.Tagline, p.Category, p.Image, p.Country, p.Description,
		p.Price, p.Guests, p.Bedrooms, p.Beds, p.Baths, p.ProfileID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetPropertyRating aggregates review scores for one property. nil when the
// property has no reviews yet.
func (r *PropertyRepository) GetPropertyRating(propertyID int) (*entities.PropertyRating, error) {
	var rating entities.PropertyRating
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE property_id = $1`
	if err := r.DB.QueryRow(query, propertyID).Scan(&rating.Average, &rating.Count); err != nil {
		return nil, fmt.Errorf("error querying rating for property %d: %w", propertyID, err)
	}
	if rating.Count == 0 {
		return nil, nil
	}
	return &rating, nil
}
