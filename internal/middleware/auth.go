package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mpetrun5/hobbylog/internal/token"
)

type ctxKey string

const identityKey ctxKey = "identity"

// AuthCookieName is the cookie carrying the signed token for browser clients.
const AuthCookieName = "hobbylog_token"

// RequireAuth verifies the request's token and stores the resulting identity
// in the request context. It accepts an Authorization bearer token first
// (CLI and API clients) and falls back to the auth cookie (browser clients).
// Cookie presence is never enough on its own: an expired or tampered token
// that slipped past an outer routing gate is rejected here.
func RequireAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				if c, err := r.Cookie(AuthCookieName); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				unauthenticated(w)
				return
			}

			id, ok := tokens.Verify(raw)
			if !ok {
				unauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// IdentityFrom returns the authenticated identity stored by RequireAuth.
func IdentityFrom(ctx context.Context) (token.Identity, bool) {
	id, ok := ctx.Value(identityKey).(token.Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
}
