package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const identityKey contextKeyType = "identity"

// Identity is the authenticated caller attached to the request context by the
// Auth middleware. PasswordHash is never carried here.
type Identity struct {
	UserID   string
	Username string
}

// IdentityResolver verifies a bearer token and resolves it to the user it was
// issued for. It must return an error when the token is malformed, the
// signature does not match, the token has expired, or the subject no longer
// resolves to an existing user.
type IdentityResolver func(ctx context.Context, token string) (*Identity, error)

// Auth is the single enforcement point for write access: it extracts the
// bearer token, resolves it through the injected resolver, and attaches the
// resulting identity to the request context. Every error path denies with 401;
// a request never continues as anonymous.
func Auth(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "invalid authorization header format")
				return
			}

			identity, err := resolve(r.Context(), parts[1])
			if err != nil || identity == nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request
// context. Returns nil when the request did not pass through Auth.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
