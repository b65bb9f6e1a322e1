// File: internal/middleware/recovery.go
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iitigpt/go-campusgpt/internal/services"
)

// RecoverPanic turns a handler panic into a JSON 500 instead of tearing
// down the connection without a response.
func RecoverPanic(logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
					)
					w.Header().Set("Connection", "close")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Something went wrong on our end.",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
