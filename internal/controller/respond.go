// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Unclassified errors
// are reported as a bare 500 so internals never leak to kiosk users.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	msg := "Server error"

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
