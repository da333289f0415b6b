package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "croppilot_session"

type contextKey struct{}

// UserID returns the authenticated user ID placed in the request context by
// Middleware, or "" when the request is unauthenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware rejects requests without a valid session. The token is read from
// the session cookie, with an Authorization bearer header accepted for
// non-browser clients.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			writeUnauthorized(w, "authentication required")
			return
		}
		userID, err := s.ValidateToken(token)
		if err != nil {
			writeUnauthorized(w, "session expired, please log in again")
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
