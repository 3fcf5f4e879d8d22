package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "homeaway/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps application errors to their status code and a structured
// body. Unexpected errors are logged and reported generically so internals
// never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode(), map[string]interface{}{
			"error": map[string]string{"message": appErr.Message},
		})
		return
	}

	log.Printf("Unexpected error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]string{"message": "Server error. Please try again later."},
	})
}
