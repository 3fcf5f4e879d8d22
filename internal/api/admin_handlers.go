package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"homeaway/internal/entities"
	"homeaway/internal/service"
)

type AdminHandler struct {
	Service *service.BookingService
}

func NewAdminHandler(svc *service.BookingService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListAllBookings()
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []entities.BookingResponse{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	// Admin cancellation skips the ownership check.
	if err := h.Service.CancelBooking(0, true, code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
}
