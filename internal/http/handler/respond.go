package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shravan-Padale771/QuickBackend/internal/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps the error taxonomy onto HTTP responses. Store
// detail has already been logged by the service; the client only ever sees
// a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid or expired code"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
