package middleware

import (
	"net/http"
	"strings"

	"github.com/tcghub/tcghub-backend/api/responses"
	pkgauth "github.com/tcghub/tcghub-backend/pkg/auth"
	"github.com/tcghub/tcghub-backend/pkg/auth/session"
	"github.com/tcghub/tcghub-backend/pkg/config"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// Auth parses the bearer token, verifies the session is still live, and
// stores the identity on the request context.
func Auth(jwtCfg config.JWTConfig, sessions session.AccessSessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				responses.WriteError(w, err)
				return
			}

			claims, err := pkgauth.ParseAccessToken(jwtCfg, token)
			if err != nil {
				responses.WriteError(w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			live, err := sessions.HasSession(r.Context(), claims.ID)
			if err != nil {
				responses.WriteError(w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session check failed"))
				return
			}
			if !live {
				responses.WriteError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Username, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "malformed authorization header")
	}
	return parts[1], nil
}
