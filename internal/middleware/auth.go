package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"server/internal/domain"
	"server/internal/infra/identity"
)

type principalKey struct{}

// TokenVerifier validates a raw bearer token and names its principal.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Principal, error)
}

// UserLookup fetches the stored user record for a principal email.
// The admin guard uses it for the role check.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticate extracts the Bearer credential, verifies it and stores
// the principal email in the request context. Missing or malformed
// headers and rejected tokens both terminate the request with 401.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing authorization header")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "authorization header must be of the form 'Bearer <token>'")
				return
			}
			principal, err := verifier.Verify(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_credential", "token verification failed")
				return
			}
			ctx := context.WithValue(r.Context(), principalKey{}, principal.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin permits the request only when the stored record for the
// verified principal carries the admin role. Authenticate must run first.
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := PrincipalEmail(r.Context())
			if email == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "no verified principal")
				return
			}
			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					writeError(w, http.StatusForbidden, "forbidden", "admin role required")
					return
				}
				writeError(w, http.StatusInternalServerError, "internal", "role lookup failed")
				return
			}
			if !user.IsAdmin() {
				writeError(w, http.StatusForbidden, "forbidden", "admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalEmail returns the verified email stored by Authenticate, or
// the empty string when the request carried no valid credential.
func PrincipalEmail(ctx context.Context) string {
	if v, ok := ctx.Value(principalKey{}).(string); ok {
		return v
	}
	return ""
}

// ContextWithPrincipal attaches a principal email directly. Intended for
// tests that exercise handlers behind the guard chain.
func ContextWithPrincipal(ctx context.Context, email string) context.Context {
	if strings.TrimSpace(email) == "" {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, email)
}

func writeError(w http.ResponseWriter, code int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": message})
}
