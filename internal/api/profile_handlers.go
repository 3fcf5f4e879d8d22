package api

import (
	"encoding/json"
	"net/http"

	"homeaway/internal/auth"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
	"homeaway/internal/service"
)

type ProfileHandler struct {
	Service *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	profile, err := h.Service.GetProfile(identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	var req entities.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	profile, err := h.Service.CreateProfile(identity.ID, identity.Email, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	var req entities.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	profile, err := h.Service.UpdateProfile(identity.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
