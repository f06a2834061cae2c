package middleware

import (
	"context"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/eduvox/backend/pkg/json"
	"github.com/eduvox/backend/pkg/jwt"
)

// Anonymous owns every report and debate when the gateway runs without a JWT secret.
const Anonymous = "anonymous"

type ownerKey struct{}

// Auth resolves the caller from a bearer token and stores it in the request
// context. With an empty secret every request is treated as Anonymous.
func Auth(secret string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), Anonymous)))
				return
			}

			token, err := jwt.ParseTokenFromHeader(r)
			if err != nil {
				json.WriteError(w, http.StatusUnauthorized, err)
				return
			}

			owner, err := jwt.ParseUserID(r.Context(), token, secret)
			if err != nil {
				log.Debug("rejected token",
					slog.String("request_id", RequestID(r.Context())),
					slog.String("error", err.Error()))
				json.WriteError(w, http.StatusUnauthorized, jwt.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// Owner returns the authenticated caller, or Anonymous when none was set.
func Owner(ctx context.Context) string {
	if owner, ok := ctx.Value(ownerKey{}).(string); ok && owner != "" {
		return owner
	}
	return Anonymous
}

func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
