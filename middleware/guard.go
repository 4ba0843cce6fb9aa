package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	newsdeck "github.com/MrEthical07/newsdeck"
	"github.com/MrEthical07/newsdeck/jwt"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the decoded access-token claims attached by a
// gate, when present.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return claims, ok
}

// RequireUser gates a route on a verifiable bearer access token. A missing
// Authorization header is a 400; a failed verification is a 401. On success
// the claims are attached to the request context.
func RequireUser(engine *newsdeck.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verify(engine, w, r)
			if !ok {
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route like [RequireUser] and additionally re-fetches
// the subject's account to resolve its role. A missing account or a role
// other than admin is a 401.
func RequireAdmin(engine *newsdeck.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verify(engine, w, r)
			if !ok {
				return
			}

			isAdmin, err := engine.IsAdmin(r.Context(), claims.UID)
			if err != nil || !isAdmin {
				reject(w, http.StatusUnauthorized, "unauthorised")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verify(engine *newsdeck.Engine, w http.ResponseWriter, r *http.Request) (*jwt.Claims, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		reject(w, http.StatusBadRequest, "no token found")
		return nil, false
	}

	token, ok := bearerToken(header)
	if !ok {
		reject(w, http.StatusUnauthorized, "unauthorised")
		return nil, false
	}

	claims, err := engine.VerifyAccess(token)
	if err != nil {
		reject(w, http.StatusUnauthorized, "unauthorised")
		return nil, false
	}
	return claims, true
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

func reject(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "msg": msg})
}
