package middleware

import (
	"context"
	"net/http"
	"strings"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by the identity middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the acting user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Identity sets the acting user on every request. Requests without an Authorization header act as
// sessionUserID. When verifier is non-nil a Bearer token is verified and its subject used instead;
// an invalid token is rejected with 401.
func Identity(verifier domain.TokenVerifier, sessionUserID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || verifier == nil {
			next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), sessionUserID)))
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
			return
		}
		token := strings.TrimSpace(auth[len(prefix):])
		if token == "" {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing token")
			return
		}
		userID, err := verifier.Verify(token)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
	})
}
