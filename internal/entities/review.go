package entities

import "time"

type CreateReviewRequest struct {
	PropertyID int    `json:"property_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewResponse struct {
	ID           int       `json:"id"`
	PropertyID   int       `json:"property_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertyRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
