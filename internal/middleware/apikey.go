package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/pvgig/anvi-admin-api/internal/handler"
)

const apiKeyHeader = "X-API-Key"

// APIKey gates every API route behind a shared key; the dashboard frontend
// sends it on each request.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				handler.RespondAppError(w, handler.ErrInvalidAPIKey, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
