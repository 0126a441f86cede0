package logging

import (
	"log/slog"
	"net/http"
)

// NewRequestLoggerMiddleware attaches a request-scoped logger with request
// metadata to the context of every request.
func NewRequestLoggerMiddleware(logger *slog.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			platform := r.PathValue("platform")
			if platform == "" {
				platform = "<missing>"
			}

			username := r.PathValue("username")
			if username == "" {
				username = "<missing>"
			}

			userAgent := r.UserAgent()
			if userAgent == "" {
				userAgent = "<missing>"
			}

			requestLogger := logger.With(
				slog.String("platform", platform),
				slog.String("username", username),
				slog.String("userAgent", userAgent),
			)

			next(w, r.WithContext(AddToContext(r.Context(), requestLogger)))
		}
	}
}
