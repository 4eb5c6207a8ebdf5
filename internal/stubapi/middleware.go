package stubapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// BearerAuth middleware validates the bearer token from the Authorization
// header against the configured token list.
func BearerAuth(tokens []string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeFailure(w, http.StatusUnauthorized, "Unauthorized: bearer token required", logger)
				return
			}

			valid := false
			for _, t := range tokens {
				if token == t {
					valid = true
					break
				}
			}

			if !valid {
				writeFailure(w, http.StatusUnauthorized, "Unauthorized: invalid token", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger middleware logs HTTP requests
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the response writer to capture the status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
