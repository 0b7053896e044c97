package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tcghub/tcghub-backend/pkg/metrics"
)

// Metrics records duration and status per route pattern, so /orders/{id}
// rolls up as one series instead of one per id.
func Metrics(requestMetrics *metrics.RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			requestMetrics.Observe(r.Method, route, wrapped.Status(), time.Since(started))
		})
	}
}
