package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"homeaway/internal/db"
	"homeaway/internal/entities"
)

type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(database *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: database}
}

func (r *ReviewRepository) CreateReview(review *db.Review) error {
	query := `
		INSERT INTO reviews (profile_id, property_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, review.ProfileID, review.PropertyID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *ReviewRepository) GetReviewByID(id int) (*db.Review, error) {
	var review db.Review
	query := `SELECT id, profile_id, property_id, rating, comment, created_at, updated_at FROM reviews WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&review.ID, &review.ProfileID, &review.PropertyID, &review.Rating, &review.Comment,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying review %d: %w", id, err)
	}
	return &review, nil
}

// HasReview reports whether the profile already reviewed the property; one
// review per guest per property.
func (r *ReviewRepository) HasReview(profileID, propertyID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE profile_id = $1 AND property_id = $2)`,
		profileID, propertyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking existing review: %w", err)
	}
	return exists, nil
}

func (r *ReviewRepository) ListReviewsByProperty(propertyID int) ([]entities.ReviewResponse, error) {
	query := `
		SELECT rv.id, rv.property_id, rv.rating, rv.comment, pr.username, pr.profile_image, rv.created_at
		FROM reviews rv
		JOIN profiles pr ON rv.profile_id = pr.id
		WHERE rv.property_id = $1
		ORDER BY rv.created_at DESC`

	rows, err := r.DB.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews for property %d: %w", propertyID, err)
	}
	defer rows.Close()

	var reviews []entities.ReviewResponse
	for rows.Next() {
		var rv entities.ReviewResponse
		err := rows.Scan(&rv.ID, &rv.PropertyID, &rv.Rating, &rv.Comment, &rv.Username, &rv.ProfileImage, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) DeleteReview(id int) error {
	result, err := r.DB.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting review %d: %w", id, err)
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
