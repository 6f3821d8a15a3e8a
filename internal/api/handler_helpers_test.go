package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/scry-flashcards/internal/api/shared"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/session"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	return session.NewStore(time.Hour, discardLogger()).Create()
}

// newSessionRequest builds a request carrying sess the way the session
// middleware would.
func newSessionRequest(method, target, body string, sess *session.Session) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if sess != nil {
		req = req.WithContext(shared.WithSession(req.Context(), sess))
	}
	return req
}

func mustCard(t *testing.T, q, a string) domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(q, a)
	require.NoError(t, err)
	return card
}
