package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminSecretHeader carries the shared secret for admin endpoints.
const AdminSecretHeader = "X-Admin-Secret"

// RequireAdmin rejects requests whose shared-secret header does not match
// the configured value. An empty configured secret locks the endpoints out
// entirely rather than letting an empty header through.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
