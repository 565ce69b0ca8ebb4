// Package session identifies anonymous visitors by a cookie so each visitor
// owns exactly one cart.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session id.
const CookieName = "session_id"

type ctxKey struct{}

// Middleware attaches a session id to every request, issuing a new cookie
// when the request has none or an unparsable one. The cookie lives for ttl
// and is refreshed on every request.
func Middleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if u, err := uuid.Parse(c.Value); err == nil {
					id = u.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().Add(ttl),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the session id stored in ctx.
func ID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
