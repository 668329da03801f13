// internal/middleware/admin_pin.go
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminPin guards the admin surface behind a shared PIN sent in the
// X-Admin-Pin header.
func AdminPin(pin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Pin")
			if pin == "" || subtle.ConstantTimeCompare([]byte(got), []byte(pin)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Invalid admin pin"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
