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

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	session, err := h.Service.CreateBooking(identity.ID, identity.Email, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Quote returns the price breakdown for a selection without touching any
// state. Missing dates yield the fees-only breakdown, not an error.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req entities.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	quote, err := h.Service.Quote(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	bookings, err := h.Service.ListBookings(identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []entities.BookingResponse{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	identity := auth.FromContext(r.Context())
	if identity == nil {
		writeError(w, apperrors.NewAuthentication())
		return
	}

	code := mux.Vars(r)["code"]
	if err := h.Service.CancelBooking(identity.ID, identity.IsAdmin, code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}

// PropertyCalendar serves the blocked periods and disabled-date lookup for a
// property's booking calendar.
func (h *BookingHandler) PropertyCalendar(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidation("Invalid property id"))
		return
	}

	calendarResp, err := h.Service.PropertyCalendar(propertyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendarResp)
}
