package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"homeaway/internal/db"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(database *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: database}
}

func (r *ProfileRepository) GetProfileByID(id int) (*db.Profile, error) {
	var p db.Profile
	query := `
		SELECT id, email, first_name, last_name, username, phone, profile_image, created_at, updated_at
		FROM profiles WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Username, &p.Phone, &p.ProfileImage, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying profile %d: %w", id, err)
	}
	return &p, nil
}

func (r *ProfileRepository) GetProfileByUsername(username string) (*db.Profile, error) {
	var p db.Profile
	query := `
		SELECT id, email, first_name, last_name, username, phone, profile_image, created_at, updated_at
		FROM profiles WHERE username = $1`
	err := r.DB.QueryRow(query, username).Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Username, &p.Phone, &p.ProfileImage, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying profile '%s': %w", username, err)
	}
	return &p, nil
}

func (r *ProfileRepository) CreateProfile(p *db.Profile) error {
	query := `
		INSERT INTO profiles (id, email, first_name, last_name, username, phone, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`
	return r.DB.QueryRow(query, p.ID, p.Email, p.FirstName, p.LastName, p.Username, p.Phone, p.ProfileImage).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) UpdateProfile(p *db.Profile) error {
	_, err := r.DB.Exec(
		`UPDATE profiles SET first_name = $2, last_name = $3, username = $4, phone = $5, profile_image = $6, updated_at = NOW() WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.Username, p.Phone, p.ProfileImage,
	)
	if err != nil {
		return fmt.Errorf("error updating profile %d: %w", p.ID, err)
	}
	return nil
}
