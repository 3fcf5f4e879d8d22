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

type PropertyHandler struct {
	Service *service.PropertyService
}

func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{Service: svc}
}

func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	properties, err := h.Service.ListProperties(search, category)
	if err != nil {
		writeError(w, err)
		return
	}
	if properties == nil {
		properties = []entities.PropertyResponse{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidation("Invalid property id"))
		return
	}

	property, err := h.Service.GetPropertyDetail(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	var req entities.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	property, err := h.Service.CreateProperty(identity.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      property.ID,
		"message": "Property created successfully",
	})
}
