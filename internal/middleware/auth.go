package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const (
	// OrgKey holds the organization resolved from the API key
	OrgKey contextKey = "organization"
)

// APIKeyAuth validates the API key from the Authorization header. Keys are
// organization-scoped: each key resolves to exactly one organization, and the
// URL org segment must match it.
func APIKeyAuth(validKeys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for health check
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			// Support both "Bearer <key>" and "<key>" formats
			apiKey := strings.TrimPrefix(auth, "Bearer ")
			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			// Constant-time comparison to prevent timing attacks
			valid := false
			var org string
			for o, key := range validKeys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					valid = true
					org = o
					break
				}
			}
			if !valid {
				http.Error(w, "invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), OrgKey, org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOrgFromContext ambil organisasi hasil auth; kosong kalau tidak ada
func GetOrgFromContext(ctx context.Context) string {
	if org, ok := ctx.Value(OrgKey).(string); ok {
		return org
	}
	return ""
}
