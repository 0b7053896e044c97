package middleware

import (
	"fmt"
	"net/http"

	"github.com/tcghub/tcghub-backend/api/responses"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
	"github.com/tcghub/tcghub-backend/pkg/logger"
)

// Recoverer converts panics into 500 responses instead of dropped
// connections.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err := fmt.Errorf("panic: %v", recovered)
					logg.Error(r.Context(), "request panicked", err)
					responses.WriteError(w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
