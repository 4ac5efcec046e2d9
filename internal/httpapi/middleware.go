package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "storefront_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionMiddleware assigns every visitor a session id cookie. The id
// keys the visitor's cart; a fresh cookie means a fresh, empty cart.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
