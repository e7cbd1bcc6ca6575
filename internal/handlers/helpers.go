package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"activity-registration-storefront/internal/models"
)

// apiResponse is the envelope for every JSON response
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

// writeModelError maps domain errors onto HTTP statuses and safe
// user-facing messages. Internal assertion failures surface as a
// generic message without exposing internals.
func writeModelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, models.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrActivityNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrUnitNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, models.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrIncompleteRegistrant),
		errors.Is(err, models.ErrTotalsMismatch):
		writeError(w, http.StatusInternalServerError, "Could not create order")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
