package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tcghub/tcghub-backend/pkg/logger"
)

// Logging emits one structured line per request with method, path, status,
// and duration.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := r.Context()
			if requestID, ok := RequestIDFromContext(ctx); ok {
				ctx = logg.WithRequestID(ctx, requestID)
			}

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			ctx = logg.WithFields(ctx, map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.Status(),
				"bytes":       wrapped.BytesWritten(),
				"duration_ms": time.Since(started).Milliseconds(),
			})
			logg.Info(ctx, "request completed")
		})
	}
}
