package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/almatbakh/staff-api/internal/httputil"
)

type ctxKey string

const ctxClaims ctxKey = "authClaims"

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// ClaimsFromContext returns the claims attached by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(*Claims)
	return c, ok
}

// Authenticate verifies the bearer access token on every request and attaches
// the decoded claims to the request context. Any verification failure
// short-circuits with 401; the wrapped handler is not invoked.
func Authenticate(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			token, err := BearerToken(r)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			claims, err := codec.Verify(token, KindAccess)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin runs after Authenticate and rejects non-admin claims.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
