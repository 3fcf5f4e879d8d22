package service

import (
	"strings"

	"homeaway/internal/db"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
)

type ReviewStore interface {
	CreateReview(review *db.Review) error
	GetReviewByID(id int) (*db.Review, error)
	HasReview(profileID, propertyID int) (bool, error)
	ListReviewsByProperty(propertyID int) ([]entities.ReviewResponse, error)
	DeleteReview(id int) error
}

type ReviewService struct {
	reviews    ReviewStore
	properties PropertyStore
}

func NewReviewService(reviews ReviewStore, properties PropertyStore) *ReviewService {
	return &ReviewService{reviews: reviews, properties: properties}
}

func (s *ReviewService) CreateReview(profileID int, req entities.CreateReviewRequest) (*db.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidation("Rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(req.Comment)
	if len(comment) < 10 || len(comment) > 1000 {
		return nil, apperrors.NewValidation("Comment must be between 10 and 1000 characters")
	}

	if _, err := s.properties.GetPropertyByID(req.PropertyID); err != nil {
		return nil, propertyLookupError(err)
	}

	exists, err := s.reviews.HasReview(profileID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewValidation("You have already reviewed this property")
	}

	review := &db.Review{
		ProfileID:  profileID,
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    comment,
	}
	if err := s.reviews.CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListReviews(propertyID int) ([]entities.ReviewResponse, error) {
	return s.reviews.ListReviewsByProperty(propertyID)
}

// DeleteReview removes a review; guests may only delete their own.
func (s *ReviewService) DeleteReview(profileID, reviewID int, isAdmin bool) error {
	review, err := s.reviews.GetReviewByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return apperrors.NewNotFound("Review not found")
	}
	if !isAdmin && review.ProfileID != profileID {
		return apperrors.NewAuthorization()
	}
	return s.reviews.DeleteReview(reviewID)
}
