package middleware

import (
	"net/http"

	"github.com/phrazzld/scry-flashcards/internal/api/shared"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/phrazzld/scry-flashcards/internal/session"
)

// DefaultSessionCookie is the cookie carrying the session ID.
const DefaultSessionCookie = "scry_session"

// SessionMiddleware attaches a viewer session to every request, creating one
// (and setting its cookie) when the request has none or an expired one.
type SessionMiddleware struct {
	store      *session.Store
	cookieName string
	secure     bool
}

// NewSessionMiddleware creates a SessionMiddleware. An empty cookieName
// selects DefaultSessionCookie.
func NewSessionMiddleware(store *session.Store, cookieName string, secure bool) *SessionMiddleware {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return &SessionMiddleware{store: store, cookieName: cookieName, secure: secure}
}

// Attach is the middleware handler.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw string
		if c, err := r.Cookie(m.cookieName); err == nil {
			raw = c.Value
		}

		sess, created := m.store.Resolve(raw)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sess.ID.String(),
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
			logger.FromContext(r.Context()).Debug("session created", "session_id", sess.ID.String())
		}

		next.ServeHTTP(w, r.WithContext(shared.WithSession(r.Context(), sess)))
	})
}
