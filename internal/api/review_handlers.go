package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"homeaway/internal/auth"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
	"homeaway/internal/service"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	var req entities.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	review, err := h.Service.CreateReview(identity.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      review.ID,
		"message": "Review submitted successfully",
	})
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidation("Invalid property id"))
		return
	}

	reviews, err := h.Service.ListReviews(propertyID)
	if err != nil {
		writeError(w, err)
		return
	}
	if reviews == nil {
		reviews = []entities.ReviewResponse{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	reviewID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidation("Invalid review id"))
		return
	}

	if err := h.Service.DeleteReview(identity.ID, reviewID, identity.IsAdmin); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}
